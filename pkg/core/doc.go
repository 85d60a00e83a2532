// Package core defines the shared language of the tabprep system.
//
// This package contains:
//   - The cell value model (Value, Kind, the missing sentinel)
//   - The Table abstraction (ordered, equal-length named columns)
//   - The error taxonomy (ConfigError, NotFittedError, SchemaError)
//
// The Golden Rule: pkg/core imports ONLY the standard library.
// All other packages depend on core, not the reverse.
package core
