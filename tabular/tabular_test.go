package tabular

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_HeaderNormalization(t *testing.T) {
	t.Parallel()

	table, err := Decode([]byte("Rated Power,Hub Height\n15,150\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"rated_power", "hub_height"}, table.Columns())
}

func TestDecode_DropsBlankRows(t *testing.T) {
	t.Parallel()

	table, err := Decode([]byte("Rated Power,Hub Height\n15,150\n,\n12,140\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, map[string]any{"rated_power": 15, "hub_height": 150}, table.Row(0))
	assert.Equal(t, map[string]any{"rated_power": 12, "hub_height": 140}, table.Row(1))
}

func TestDecode_DropsBlankColumns(t *testing.T) {
	t.Parallel()

	table, err := Decode([]byte("name,notes,day_rate\nwtiv_1,,180000\nwtiv_2,NA,200000\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "day_rate"}, table.Columns())

	_, ok := table.Column("notes")
	assert.False(t, ok)
}

func TestDecode_TypeInference(t *testing.T) {
	t.Parallel()

	data := []byte("count,rate,mixed,active,label\n" +
		"1,0.5,1,true,alpha\n" +
		"2,1.5,2.5,False,beta\n")

	table, err := Decode(data)
	require.NoError(t, err)

	count, ok := table.Column("count")
	require.True(t, ok)
	assert.Equal(t, []any{1, 2}, count)

	rate, ok := table.Column("rate")
	require.True(t, ok)
	assert.Equal(t, []any{0.5, 1.5}, rate)

	mixed, ok := table.Column("mixed")
	require.True(t, ok)
	assert.Equal(t, []any{1.0, 2.5}, mixed, "integers mixed with fractions widen to float")

	active, ok := table.Column("active")
	require.True(t, ok)
	assert.Equal(t, []any{true, false}, active)

	label, ok := table.Column("label")
	require.True(t, ok)
	assert.Equal(t, []any{"alpha", "beta"}, label)
}

func TestDecode_NASpellingsCountAsMissing(t *testing.T) {
	t.Parallel()

	table, err := Decode([]byte("depth\n22.5\n\n10\nNaN\n"))
	require.NoError(t, err)

	// The blank row and the all-NaN row are both dropped.
	require.Equal(t, 2, table.Len())

	depth, ok := table.Column("depth")
	require.True(t, ok)
	assert.Equal(t, 22.5, depth[0])
	assert.Equal(t, 10.0, depth[1])
}

func TestDecode_MissingCellsInNumericColumn(t *testing.T) {
	t.Parallel()

	table, err := Decode([]byte("depth,name\n22.5,site_a\nNA,site_b\n"))
	require.NoError(t, err)

	depth, ok := table.Column("depth")
	require.True(t, ok)
	assert.Equal(t, 22.5, depth[0])

	nan, isFloat := depth[1].(float64)
	require.True(t, isFloat)
	assert.True(t, math.IsNaN(nan))
}

func TestDecode_MissingCellsInStringColumn(t *testing.T) {
	t.Parallel()

	table, err := Decode([]byte("name,region\nsite_a,north\nsite_b,\n"))
	require.NoError(t, err)

	region, ok := table.Column("region")
	require.True(t, ok)
	assert.Equal(t, "north", region[0])
	assert.Nil(t, region[1])
}

func TestDecode_ShortRowsPadded(t *testing.T) {
	t.Parallel()

	table, err := Decode([]byte("name,depth\nsite_a,22.5\nsite_b\n"))
	require.NoError(t, err)

	require.Equal(t, 2, table.Len())

	depth, ok := table.Column("depth")
	require.True(t, ok)

	nan, isFloat := depth[1].(float64)
	require.True(t, isFloat)
	assert.True(t, math.IsNaN(nan))
}

func TestDecode_WideRow(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("name,depth\nsite_a,22.5,extra\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "header has 2")
}

func TestDecode_Empty(t *testing.T) {
	t.Parallel()

	_, err := Decode(nil)

	require.ErrorIs(t, err, ErrEmptyData)
}

func TestDecode_HeaderOnly(t *testing.T) {
	t.Parallel()

	table, err := Decode([]byte("name,depth\n"))
	require.NoError(t, err)

	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Columns(), "with no data rows every column is vacuously all-missing")
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("name,depth\n\"unterminated,1\n"))

	require.Error(t, err)
}

func TestTable_Row(t *testing.T) {
	t.Parallel()

	table, err := Decode([]byte("Wind Speed,Rated Power\n3,0.0\n12,15.0\n"))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"wind_speed": 3, "rated_power": 0.0}, table.Row(0))
	assert.Equal(t, map[string]any{"wind_speed": 12, "rated_power": 15.0}, table.Row(1))
}

func TestTable_ColumnCopies(t *testing.T) {
	t.Parallel()

	table, err := Decode([]byte("count\n1\n2\n"))
	require.NoError(t, err)

	first, ok := table.Column("count")
	require.True(t, ok)

	first[0] = 99

	second, ok := table.Column("count")
	require.True(t, ok)
	assert.Equal(t, 1, second[0], "accessors must not expose internal state")
}

func TestEncode(t *testing.T) {
	t.Parallel()

	b, err := Encode([][]string{
		{"Wind Speed", "Rated Power"},
		{"3", "0.0"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Wind Speed,Rated Power\n3,0.0\n", string(b))
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	b, err := Encode([][]string{
		{"Wind Speed", "Rated Power"},
		{"3", "0.0"},
		{"12", "15.0"},
	})
	require.NoError(t, err)

	table, err := Decode(b)
	require.NoError(t, err)

	assert.Equal(t, []string{"wind_speed", "rated_power"}, table.Columns())
	assert.Equal(t, 2, table.Len())
}
