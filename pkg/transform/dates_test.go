package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabprep/tabprep/pkg/core"
)

func numberAt(t *testing.T, tbl *core.Table, col string, row int) float64 {
	t.Helper()
	vals, ok := tbl.Column(col)
	require.True(t, ok)
	f, ok := vals[row].Number()
	require.True(t, ok, "row %d of %s is %v", row, col, vals[row])
	return f
}

func TestDateFeatureExtractor_Transform(t *testing.T) {
	tbl := mustTable(t, core.Column{Name: "ListedAt", Values: []core.Value{
		core.String("2021-03-15"),
		core.String("15 Jul 2019"),
		core.String("not-a-date"),
		core.Missing,
		core.Time(time.Date(2020, time.December, 1, 0, 0, 0, 0, time.UTC)),
	}})

	x, err := NewDateFeatureExtractor("ListedAt", "Publish")
	require.NoError(t, err)

	out, err := FitTransform(x, tbl)
	require.NoError(t, err)

	// Source column gone, derived columns present, rows preserved.
	assert.False(t, out.HasColumn("ListedAt"))
	assert.True(t, out.HasColumn("PublishYear"))
	assert.True(t, out.HasColumn("PublishMonth"))
	assert.Equal(t, 5, out.NumRows())

	assert.Equal(t, 2021.0, numberAt(t, out, "PublishYear", 0))
	assert.Equal(t, 3.0, numberAt(t, out, "PublishMonth", 0))
	assert.Equal(t, 2019.0, numberAt(t, out, "PublishYear", 1))
	assert.Equal(t, 7.0, numberAt(t, out, "PublishMonth", 1))
	assert.Equal(t, 2020.0, numberAt(t, out, "PublishYear", 4))
	assert.Equal(t, 12.0, numberAt(t, out, "PublishMonth", 4))

	// Unparseable and missing sources yield missing for both derived
	// columns without an error.
	years, _ := out.Column("PublishYear")
	months, _ := out.Column("PublishMonth")
	for _, row := range []int{2, 3} {
		assert.True(t, years[row].IsMissing(), "year row %d", row)
		assert.True(t, months[row].IsMissing(), "month row %d", row)
	}
}

func TestDateFeatureExtractor_CustomPrefix(t *testing.T) {
	tbl := mustTable(t, stringColumn("Sold", "2022-01-02"))

	x, err := NewDateFeatureExtractor("Sold", "Sale")
	require.NoError(t, err)
	out, err := x.Transform(tbl)
	require.NoError(t, err)

	assert.Equal(t, []string{"SaleYear", "SaleMonth"}, out.Names())
}

func TestDateFeatureExtractor_Errors(t *testing.T) {
	_, err := NewDateFeatureExtractor("", "Publish")
	var cfgErr *core.ConfigError
	require.ErrorAs(t, err, &cfgErr)

	x, err := NewDateFeatureExtractor("Gone", "Publish")
	require.NoError(t, err)
	_, err = x.Transform(mustTable(t, stringColumn("Other", "2020-01-01")))
	var schemaErr *core.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}
