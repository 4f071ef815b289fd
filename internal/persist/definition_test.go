package persist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	defs := []Definition{people, places}

	def, ok := Lookup(defs, "places")
	require.True(t, ok)
	assert.Equal(t, []string{"code", "lat", "lon", "rank"}, def.FieldNames())
	assert.Equal(t, []string{"code", "rank"}, def.IndexableFields())

	_, ok = Lookup(defs, "nowhere")
	assert.False(t, ok)
}

func TestSelectAny_ReturnsTypedPointers(t *testing.T) {
	cur := &recordingCursor{rows: [][]any{
		{int64(1), "Ada"},
		{int64(2), []byte("Grace")},
	}}

	var def Definition = people
	records, err := def.SelectAny(context.Background(), cur, Fields{F("name", "Ada")})
	require.NoError(t, err)
	require.Len(t, records, 2)

	first, ok := records[0].(*person)
	require.True(t, ok, "got %T", records[0])
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Grace", records[1].(*person).Name)

	require.Len(t, cur.calls, 1)
	assert.Equal(t, "SELECT * FROM people WHERE name=?", cur.calls[0].query)
	assert.Equal(t, 1, cur.closed, "collecting releases the cursor rows")
}

func TestSelectAny_Empty(t *testing.T) {
	records, err := places.SelectAny(context.Background(), &recordingCursor{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestValuesOf(t *testing.T) {
	var def Definition = places

	values, err := def.ValuesOf(&place{Code: "X1", Lat: 1.5, Lon: -2, Rank: 3})
	require.NoError(t, err)
	assert.Equal(t, []any{"X1", 1.5, -2.0, int64(3)}, values)

	_, err = def.ValuesOf(&person{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table places")

	_, err = def.ValuesOf(place{})
	assert.Error(t, err, "values are not accepted, only *T")
}
