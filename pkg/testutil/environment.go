// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate test environments with proper isolation

package testutil

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/fthomys/update-alternatives/pkg/filesystem"
	"github.com/fthomys/update-alternatives/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides an isolated storage dir, link dir and home
// directory together with a matching filesystem implementation.
type TestEnvironment struct {
	StorageDir string
	LinkDir    string
	HomeDir    string

	FS   types.FS
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment. For EnvIsolated the
// caller-visible environment variables are redirected into the temp
// directory so nothing leaks into the real user's XDG tree.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{
		t:    t,
		Type: envType,
	}

	switch envType {
	case EnvMemoryOnly:
		env.StorageDir = "/virtual/etc/alternatives"
		env.LinkDir = "/virtual/usr/local/bin"
		env.HomeDir = "/virtual/home"
		env.FS = NewMemoryFS()
	case EnvIsolated:
		tempDir := t.TempDir()
		env.StorageDir = filepath.Join(tempDir, "alternatives")
		env.LinkDir = filepath.Join(tempDir, "bin")
		env.HomeDir = filepath.Join(tempDir, "home")
		env.FS = filesystem.NewOS()

		t.Setenv("HOME", env.HomeDir)
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(env.HomeDir, ".config"))
		t.Setenv("XDG_DATA_HOME", filepath.Join(env.HomeDir, ".local", "share"))
		t.Setenv("XDG_STATE_HOME", filepath.Join(env.HomeDir, ".local", "state"))
	}

	for _, dir := range []string{env.StorageDir, env.LinkDir, env.HomeDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	return env
}

// WriteGroup writes a database file for name with one "<target> <priority>"
// line per record.
func (env *TestEnvironment) WriteGroup(name string, records map[string]int) {
	env.t.Helper()

	targets := make([]string, 0, len(records))
	for target := range records {
		targets = append(targets, target)
	}
	// Stable file contents regardless of map order
	sort.Strings(targets)

	var sb strings.Builder
	for _, target := range targets {
		sb.WriteString(target)
		sb.WriteString(" ")
		sb.WriteString(strconv.Itoa(records[target]))
		sb.WriteString("\n")
	}

	env.WriteGroupRaw(name, sb.String())
}

// WriteGroupRaw writes raw database file contents for name, for tests that
// need malformed or unusual lines.
func (env *TestEnvironment) WriteGroupRaw(name, contents string) {
	env.t.Helper()

	path := filepath.Join(env.StorageDir, name)
	if err := env.FS.WriteFile(path, []byte(contents), 0644); err != nil {
		env.t.Fatalf("Failed to write group file %s: %v", path, err)
	}
}

// CreateTarget creates a target file so links have something to point at.
func (env *TestEnvironment) CreateTarget(path string) {
	env.t.Helper()

	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create target dir for %s: %v", path, err)
	}
	if err := env.FS.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		env.t.Fatalf("Failed to create target %s: %v", path, err)
	}
}

// LinkPath returns the path of the symlink for name in the link dir.
func (env *TestEnvironment) LinkPath(name string) string {
	return filepath.Join(env.LinkDir, name)
}

// GroupPath returns the path of the database file for name.
func (env *TestEnvironment) GroupPath(name string) string {
	return filepath.Join(env.StorageDir, name)
}

// ReadLink returns the destination of the materialized link for name.
func (env *TestEnvironment) ReadLink(name string) string {
	env.t.Helper()

	dest, err := env.FS.Readlink(env.LinkPath(name))
	if err != nil {
		env.t.Fatalf("Failed to read link for %s: %v", name, err)
	}
	return dest
}
