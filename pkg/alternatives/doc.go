// Package alternatives implements the core engine: records, alternative
// groups and the database of groups persisted as one file per name.
//
// The engine is deliberately free of CLI and rendering concerns. All
// filesystem access goes through types.FS so tests can run against the
// in-memory implementation in pkg/testutil.
package alternatives
