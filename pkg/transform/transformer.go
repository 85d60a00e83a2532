package transform

import "github.com/tabprep/tabprep/pkg/core"

// Transformer is the contract every preprocessing unit implements.
//
// Fit learns per-column statistics from a reference table. Stateless
// units implement it as a no-op. Transform applies the unit's mapping
// and returns a new table; the input is never mutated. A unit fit on
// one dataset and applied to another is the standard train/inference
// pattern: fitted parameters are not recomputed at transform time.
type Transformer interface {
	// Name returns the registered kind of the unit.
	Name() string

	Fit(tbl *core.Table) error
	Transform(tbl *core.Table) (*core.Table, error)
}

// Stateful is implemented by units that learn parameters during Fit.
// Fitted state marshals to YAML and restores exactly: a restored unit
// reproduces identical Transform output without re-deriving statistics.
type Stateful interface {
	Transformer

	// Fitted reports whether Fit has completed (or state was restored).
	Fitted() bool

	MarshalState() ([]byte, error)
	UnmarshalState(data []byte) error
}

// FitTransform fits the unit on tbl and immediately transforms it.
func FitTransform(tr Transformer, tbl *core.Table) (*core.Table, error) {
	if err := tr.Fit(tbl); err != nil {
		return nil, err
	}
	return tr.Transform(tbl)
}
