// Package types defines the journal categories, record shapes, record
// validation, and the standard error types shared by the journal store,
// the registry, and the CLI.
package types
