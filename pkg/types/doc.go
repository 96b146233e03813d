// Package types defines the core types and interfaces used throughout
// update-alternatives. This includes the FS and Pather interfaces as well
// as the result structures commands hand to the renderers.
package types
