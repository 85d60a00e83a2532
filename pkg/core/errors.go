package core

import "fmt"

// ConfigError reports invalid construction parameters for a
// transformer (empty column lists, quantile fractions out of order).
// It is returned at construction time, never during fit or transform.
type ConfigError struct {
	Unit   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: invalid configuration: %s", e.Unit, e.Reason)
}

// NotFittedError reports a transform invoked on a stateful transformer
// before fit.
type NotFittedError struct {
	Unit string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("%s: transform called before fit", e.Unit)
}

// SchemaError reports a configured column that is absent from the
// input table. All transformers fail fast on absent columns except the
// column dropper, whose tolerant contract skips them silently.
type SchemaError struct {
	Unit   string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: column %q not found in table", e.Unit, e.Column)
}
