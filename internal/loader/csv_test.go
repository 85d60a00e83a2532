package loader

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabprep/tabprep/pkg/core"
)

func TestReadCSV_TypeInference(t *testing.T) {
	in := strings.Join([]string{
		"Price,City,Mixed,Empty",
		"100,Oslo,1,NA",
		"250.5,Bergen,two,",
		"NA,,3,null",
	}, "\n")

	tbl, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"Price", "City", "Mixed", "Empty"}, tbl.Names())
	assert.Equal(t, 3, tbl.NumRows())

	// Price is fully numeric apart from the NA token.
	price, _ := tbl.Column("Price")
	f, ok := price[0].Number()
	require.True(t, ok)
	assert.Equal(t, 100.0, f)
	assert.True(t, price[2].IsMissing())

	// City stays string; the empty token is missing.
	city, _ := tbl.Column("City")
	s, ok := city[1].Text()
	require.True(t, ok)
	assert.Equal(t, "Bergen", s)
	assert.True(t, city[2].IsMissing())

	// One non-numeric cell keeps the whole column as strings.
	mixed, _ := tbl.Column("Mixed")
	s, ok = mixed[0].Text()
	require.True(t, ok)
	assert.Equal(t, "1", s)

	// All-missing column.
	empty, _ := tbl.Column("Empty")
	for i, v := range empty {
		assert.True(t, v.IsMissing(), "row %d", i)
	}
}

func TestReadCSV_NoHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header")
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	tbl, err := core.NewTable(
		core.Column{Name: "Price", Values: []core.Value{core.Number(100), core.Missing, core.Number(2.5)}},
		core.Column{Name: "City", Values: []core.Value{core.String("Oslo"), core.String("Bergen"), core.Missing}},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)

	require.Equal(t, tbl.Names(), got.Names())
	require.Equal(t, tbl.NumRows(), got.NumRows())
	for _, name := range tbl.Names() {
		want, _ := tbl.Column(name)
		have, _ := got.Column(name)
		for i := range want {
			assert.True(t, want[i].Equal(have[i]), "column %s row %d: %v vs %v", name, i, want[i], have[i])
		}
	}
}
