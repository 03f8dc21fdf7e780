//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the journal project using Mage.
//
// Usage:
//
//	mage build          Compile the journal binary to bin/
//	mage test:all       Run all tests
//	mage test:race      Run all tests with the race detector
//	mage smoke          Build, then log and list entries in a scratch directory
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install journal to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "journal"
	binaryDir  = "bin"
	cmdDir     = "./cmd/journal"
)

// Build compiles the journal binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Smoke builds the binary and runs init, one log per category, and the
// merged view against a scratch data directory.
func Smoke() error {
	mg.Deps(Build)
	scratch, err := os.MkdirTemp("", "journal-smoke-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	bin := filepath.Join(binaryDir, binaryName)
	global := []string{
		"--config-dir", filepath.Join(scratch, "config"),
		"--data-dir", filepath.Join(scratch, "data"),
	}
	steps := [][]string{
		{"init"},
		{"log", "skill", "--skill", "REMEMBER", "--task", "smoke test"},
		{"log", "milestone", "--milestone", "smoke test", "--status", "completed"},
		{"log", "reflection", "--text", "smoke test"},
		{"all"},
	}
	for _, step := range steps {
		if err := sh.RunV(bin, append(global, step...)...); err != nil {
			return err
		}
	}
	return nil
}
