// Package testutil provides utilities for testing update-alternatives
// components.
//
// Key components:
//   - TestEnvironment: test orchestrator with isolation and cleanup
//   - MemoryFS: in-memory types.FS implementation for fast, isolated tests
//   - Assertion and filesystem helpers for real-FS tests
//
// Usage guidelines:
//   - Engine tests (alternatives, linker) should run on MemoryFS
//   - Command and CLI tests may use EnvIsolated with t.TempDir
//   - All test data should be defined inline, not in external files
package testutil
