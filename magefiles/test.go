//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets.
type Test mg.Namespace

// All runs all tests.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs all tests with the race detector, which exercises the
// concurrent append tests in internal/jsonstore.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover runs all tests and writes a coverage profile to bin/.
func (Test) Cover() error {
	mg.Deps(ensureBinDir)
	return sh.RunV(binGo, "test", "-coverprofile", binaryDir+"/coverage.out", "./...")
}
