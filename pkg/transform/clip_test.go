package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabprep/tabprep/pkg/core"
)

func numberColumn(name string, values ...float64) core.Column {
	vals := make([]core.Value, len(values))
	for i, f := range values {
		vals[i] = core.Number(f)
	}
	return core.Column{Name: name, Values: vals}
}

func TestQuantile_LinearInterpolation(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		q      float64
		want   float64
	}{
		{"median of even count", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"median of odd count", []float64{1, 2, 3}, 0.5, 2},
		{"zeroth is min", []float64{3, 7, 9}, 0, 3},
		{"first is max", []float64{3, 7, 9}, 1, 9},
		{"interpolated quarter", []float64{1, 2, 3, 4}, 0.25, 1.75},
		{"single element", []float64{5}, 0.75, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, quantile(tt.sorted, tt.q), 1e-12)
		})
	}
}

func TestOutlierClipper_FitBounds(t *testing.T) {
	// 1..100: type-7 quantiles are 1.99 at 0.01 and 99.01 at 0.99.
	vals := make([]float64, 100)
	for i := range vals {
		vals[i] = float64(i + 1)
	}
	tbl := mustTable(t, numberColumn("Price", vals...))

	c, err := NewOutlierClipper([]string{"Price"}, 0.01, 0.99)
	require.NoError(t, err)
	require.NoError(t, c.Fit(tbl))

	b, ok := c.bounds["Price"]
	require.True(t, ok)
	assert.InDelta(t, 1.99, b.Lower, 1e-12)
	assert.InDelta(t, 99.01, b.Upper, 1e-12)
}

func TestOutlierClipper_TransformClipsIntoRange(t *testing.T) {
	train := mustTable(t, numberColumn("Price", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10))

	c, err := NewOutlierClipper([]string{"Price"}, 0.1, 0.9)
	require.NoError(t, err)
	require.NoError(t, c.Fit(train))

	// Bounds are fit-time statistics: applying to a second dataset
	// does not recompute them.
	infer := mustTable(t, core.Column{Name: "Price", Values: []core.Value{
		core.Number(-100), core.Number(5), core.Number(1000), core.Missing,
	}})

	out, err := c.Transform(infer)
	require.NoError(t, err)
	require.Equal(t, 4, out.NumRows())

	vals, _ := out.Column("Price")
	b := c.bounds["Price"]
	for i, v := range vals {
		if v.IsMissing() {
			continue
		}
		f, ok := v.Number()
		require.True(t, ok)
		assert.GreaterOrEqual(t, f, b.Lower, "row %d", i)
		assert.LessOrEqual(t, f, b.Upper, "row %d", i)
	}
	// In-range values are unchanged, missing stays missing.
	f, _ := vals[1].Number()
	assert.Equal(t, 5.0, f)
	assert.True(t, vals[3].IsMissing())
}

func TestOutlierClipper_TransformIsIdempotent(t *testing.T) {
	train := mustTable(t, numberColumn("Price", 1, 2, 3, 4, 5, 6, 7, 8, 9, 100))

	c, err := NewOutlierClipper([]string{"Price"}, 0.05, 0.95)
	require.NoError(t, err)
	require.NoError(t, c.Fit(train))

	once, err := c.Transform(train)
	require.NoError(t, err)
	twice, err := c.Transform(once)
	require.NoError(t, err)

	a, _ := once.Column("Price")
	b, _ := twice.Column("Price")
	for i := range a {
		assert.True(t, a[i].Equal(b[i]), "row %d", i)
	}
}

func TestOutlierClipper_ColumnWithoutNumbersIsUntouched(t *testing.T) {
	train := mustTable(t, core.Column{Name: "Price", Values: []core.Value{core.Missing, core.Missing}})

	c, err := NewOutlierClipper([]string{"Price"}, 0.01, 0.99)
	require.NoError(t, err)
	require.NoError(t, c.Fit(train))

	out, err := c.Transform(train)
	require.NoError(t, err)
	vals, _ := out.Column("Price")
	assert.True(t, vals[0].IsMissing())
	assert.True(t, vals[1].IsMissing())
}

func TestOutlierClipper_StateRoundTrip(t *testing.T) {
	train := mustTable(t, numberColumn("Price", 3, 1, 4, 1, 5, 9, 2, 6))

	c, err := NewOutlierClipper([]string{"Price"}, 0.1, 0.9)
	require.NoError(t, err)
	require.NoError(t, c.Fit(train))
	state, err := c.MarshalState()
	require.NoError(t, err)

	restored, err := NewOutlierClipper([]string{"Price"}, 0.1, 0.9)
	require.NoError(t, err)
	require.NoError(t, restored.UnmarshalState(state))

	infer := mustTable(t, numberColumn("Price", -50, 2.5, 80))
	want, err := c.Transform(infer)
	require.NoError(t, err)
	got, err := restored.Transform(infer)
	require.NoError(t, err)

	wantVals, _ := want.Column("Price")
	gotVals, _ := got.Column("Price")
	for i := range wantVals {
		assert.True(t, wantVals[i].Equal(gotVals[i]), "row %d", i)
	}
}

func TestOutlierClipper_Errors(t *testing.T) {
	t.Run("transform before fit", func(t *testing.T) {
		c, err := NewOutlierClipper([]string{"Price"}, 0.01, 0.99)
		require.NoError(t, err)
		_, err = c.Transform(mustTable(t, numberColumn("Price", 1)))
		var nf *core.NotFittedError
		require.ErrorAs(t, err, &nf)
	})

	t.Run("invalid quantile fractions", func(t *testing.T) {
		var cfgErr *core.ConfigError
		for _, pair := range [][2]float64{{-0.1, 0.9}, {0.1, 1.1}, {0.9, 0.1}, {0.5, 0.5}} {
			_, err := NewOutlierClipper([]string{"Price"}, pair[0], pair[1])
			require.ErrorAs(t, err, &cfgErr, "pair %v", pair)
		}
	})

	t.Run("absent column", func(t *testing.T) {
		c, err := NewOutlierClipper([]string{"Nope"}, 0.01, 0.99)
		require.NoError(t, err)
		err = c.Fit(mustTable(t, numberColumn("Price", 1)))
		var schemaErr *core.SchemaError
		require.ErrorAs(t, err, &schemaErr)
	})
}
