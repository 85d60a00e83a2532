package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabprep/tabprep/pkg/core"
)

func stringColumn(name string, values ...string) core.Column {
	vals := make([]core.Value, len(values))
	for i, s := range values {
		vals[i] = core.String(s)
	}
	return core.Column{Name: name, Values: vals}
}

func textAt(t *testing.T, tbl *core.Table, col string, row int) string {
	t.Helper()
	vals, ok := tbl.Column(col)
	require.True(t, ok)
	s, ok := vals[row].Text()
	require.True(t, ok)
	return s
}

func TestRareCategoryGrouper_CityExample(t *testing.T) {
	// 6 rows, min_frequency 0.2: A=0.5 and B=0.333 retained, C=0.167 rare.
	train := mustTable(t, stringColumn("City", "A", "A", "A", "B", "B", "C"))

	g, err := NewRareCategoryGrouper([]string{"City"}, 0.2)
	require.NoError(t, err)
	require.NoError(t, g.Fit(train))

	infer := mustTable(t, stringColumn("City", "A", "B", "C", "D"))
	out, err := g.Transform(infer)
	require.NoError(t, err)

	want := []string{"A", "B", "Other", "Other"}
	for i, w := range want {
		assert.Equal(t, w, textAt(t, out, "City", i), "row %d", i)
	}
}

func TestRareCategoryGrouper_ThresholdBoundaryRetains(t *testing.T) {
	// B appears in exactly 1 of 4 rows: frequency 0.25 == threshold,
	// so it is retained (>=, not >).
	train := mustTable(t, stringColumn("City", "A", "A", "A", "B"))

	g, err := NewRareCategoryGrouper([]string{"City"}, 0.25)
	require.NoError(t, err)
	require.NoError(t, g.Fit(train))

	out, err := g.Transform(train)
	require.NoError(t, err)
	assert.Equal(t, "B", textAt(t, out, "City", 3))
}

func TestRareCategoryGrouper_MissingInDenominatorAndPreserved(t *testing.T) {
	// Denominator is all rows including missing: A is 2/5 = 0.4,
	// so a 0.5 threshold groups it; missing stays missing, never "Other".
	train := mustTable(t, core.Column{Name: "City", Values: []core.Value{
		core.String("A"), core.String("A"), core.String("B"), core.Missing, core.Missing,
	}})

	g, err := NewRareCategoryGrouper([]string{"City"}, 0.5)
	require.NoError(t, err)
	require.NoError(t, g.Fit(train))

	out, err := g.Transform(train)
	require.NoError(t, err)

	vals, _ := out.Column("City")
	assert.Equal(t, "Other", textAt(t, out, "City", 0))
	assert.Equal(t, "Other", textAt(t, out, "City", 2))
	assert.True(t, vals[3].IsMissing())
	assert.True(t, vals[4].IsMissing())
}

func TestRareCategoryGrouper_RefitIsDeterministic(t *testing.T) {
	train := mustTable(t, stringColumn("City", "A", "A", "B", "C", "C", "C"))

	g1, err := NewRareCategoryGrouper([]string{"City"}, 0.3)
	require.NoError(t, err)
	require.NoError(t, g1.Fit(train))
	s1, err := g1.MarshalState()
	require.NoError(t, err)

	g2, err := NewRareCategoryGrouper([]string{"City"}, 0.3)
	require.NoError(t, err)
	require.NoError(t, g2.Fit(train))
	s2, err := g2.MarshalState()
	require.NoError(t, err)

	assert.Equal(t, string(s1), string(s2))
}

func TestRareCategoryGrouper_OutputIsNeverARareValue(t *testing.T) {
	train := mustTable(t, stringColumn("City", "A", "A", "A", "B", "C", "D"))

	g, err := NewRareCategoryGrouper([]string{"City"}, 0.3)
	require.NoError(t, err)
	require.NoError(t, g.Fit(train))

	out, err := g.Transform(train)
	require.NoError(t, err)

	vals, _ := out.Column("City")
	for i, v := range vals {
		s, ok := v.Text()
		require.True(t, ok)
		assert.Contains(t, []string{"A", "Other"}, s, "row %d", i)
	}
}

func TestRareCategoryGrouper_StateRoundTrip(t *testing.T) {
	train := mustTable(t, stringColumn("City", "A", "A", "B"))

	g, err := NewRareCategoryGrouper([]string{"City"}, 0.5)
	require.NoError(t, err)
	require.NoError(t, g.Fit(train))
	state, err := g.MarshalState()
	require.NoError(t, err)

	restored, err := NewRareCategoryGrouper([]string{"City"}, 0.5)
	require.NoError(t, err)
	require.NoError(t, restored.UnmarshalState(state))
	require.True(t, restored.Fitted())

	infer := mustTable(t, stringColumn("City", "A", "B", "Z"))
	want, err := g.Transform(infer)
	require.NoError(t, err)
	got, err := restored.Transform(infer)
	require.NoError(t, err)

	wantVals, _ := want.Column("City")
	gotVals, _ := got.Column("City")
	for i := range wantVals {
		assert.True(t, wantVals[i].Equal(gotVals[i]), "row %d", i)
	}
}

func TestRareCategoryGrouper_Errors(t *testing.T) {
	t.Run("transform before fit", func(t *testing.T) {
		g, err := NewRareCategoryGrouper([]string{"City"}, 0.1)
		require.NoError(t, err)
		_, err = g.Transform(mustTable(t, stringColumn("City", "A")))
		var nf *core.NotFittedError
		require.ErrorAs(t, err, &nf)
	})

	t.Run("threshold out of range", func(t *testing.T) {
		var cfgErr *core.ConfigError
		_, err := NewRareCategoryGrouper([]string{"City"}, 0)
		require.ErrorAs(t, err, &cfgErr)
		_, err = NewRareCategoryGrouper([]string{"City"}, 1)
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("absent column at fit", func(t *testing.T) {
		g, err := NewRareCategoryGrouper([]string{"Nope"}, 0.1)
		require.NoError(t, err)
		err = g.Fit(mustTable(t, stringColumn("City", "A")))
		var schemaErr *core.SchemaError
		require.ErrorAs(t, err, &schemaErr)
	})
}
