// Package filesystem provides filesystem implementations for
// update-alternatives.
//
// This package contains implementations of the types.FS interface,
// including the standard OS filesystem used by the CLI. Tests use the
// in-memory implementation from pkg/testutil instead.
package filesystem
