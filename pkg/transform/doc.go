// Package transform implements the column-level preprocessing units.
//
// Every unit shares the same two-phase contract: Fit learns statistics
// from a reference table (a no-op for pure units), Transform applies a
// deterministic mapping to any later table. Units never mutate their
// input and never mutate fitted state after Fit returns, so Transform
// is safe to call concurrently once fitting has completed.
//
// Units register themselves by kind (see Register), letting pipelines
// be assembled from configuration.
package transform
