package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cols    []Column
		wantErr string
	}{
		{
			name: "equal lengths, unique names",
			cols: []Column{
				{Name: "a", Values: []Value{Number(1), Number(2)}},
				{Name: "b", Values: []Value{String("x"), Missing}},
			},
		},
		{
			name: "mismatched lengths",
			cols: []Column{
				{Name: "a", Values: []Value{Number(1), Number(2)}},
				{Name: "b", Values: []Value{String("x")}},
			},
			wantErr: "has 1 rows",
		},
		{
			name: "duplicate name",
			cols: []Column{
				{Name: "a", Values: []Value{Number(1)}},
				{Name: "a", Values: []Value{Number(2)}},
			},
			wantErr: "duplicate column",
		},
		{
			name: "empty name",
			cols: []Column{
				{Name: "", Values: []Value{Number(1)}},
			},
			wantErr: "must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := NewTable(tt.cols...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.cols), tbl.NumColumns())
		})
	}
}

func TestTable_DropColumns(t *testing.T) {
	tbl, err := NewTable(
		Column{Name: "a", Values: []Value{Number(1)}},
		Column{Name: "b", Values: []Value{Number(2)}},
		Column{Name: "c", Values: []Value{Number(3)}},
	)
	require.NoError(t, err)

	tbl.DropColumns("b", "nope")

	assert.Equal(t, []string{"a", "c"}, tbl.Names())
	assert.False(t, tbl.HasColumn("b"))

	// Index stays consistent after the drop.
	vals, ok := tbl.Column("c")
	require.True(t, ok)
	n, _ := vals[0].Number()
	assert.Equal(t, 3.0, n)
}

func TestTable_CloneIsIndependent(t *testing.T) {
	tbl, err := NewTable(Column{Name: "a", Values: []Value{String("x"), Missing}})
	require.NoError(t, err)

	clone := tbl.Clone()
	vals, _ := clone.Column("a")
	vals[0] = String("changed")
	clone.DropColumns("a")

	orig, ok := tbl.Column("a")
	require.True(t, ok)
	s, _ := orig[0].Text()
	assert.Equal(t, "x", s)
	assert.True(t, orig[1].IsMissing())
}

func TestValue_KeyAndEquality(t *testing.T) {
	assert.Equal(t, "", Missing.Key())
	assert.NotEqual(t, Number(1).Key(), String("1").Key())
	assert.Equal(t, Number(1).Key(), Number(1.0).Key())
	assert.True(t, Missing.Equal(Value{}))
	assert.False(t, Number(0).Equal(Missing))
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "", Missing.String())
	assert.Equal(t, "3", Number(3).String())
	assert.Equal(t, "3.5", Number(3.5).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "hi", String("hi").String())
}
