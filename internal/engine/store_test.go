package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"By nationality", ByNationality},
		{"by-nationality", ByNationality},
		{"nationality", ByNationality},
		{"RESIDENCE", ByResidence},
		{"By residence", ByResidence},
	}
	for _, tc := range tests {
		got, err := ParseMode(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParseMode("by birthplace")
	assert.True(t, errors.Is(err, ErrUnknownMode))
}

func TestDatasetResolve(t *testing.T) {
	d, err := testDataset()
	require.NoError(t, err)

	t.Run("column oriented mode", func(t *testing.T) {
		res, err := d.Resolve(ByNationality, "Ruritania", 10)
		require.NoError(t, err)
		require.Len(t, res.Entries, 2)
		assert.Equal(t, "Gamma", res.Entries[0].Attributor)
		assert.Equal(t, "Alpha", res.Entries[1].Attributor)
	})

	t.Run("row oriented mode", func(t *testing.T) {
		res, err := d.Resolve(ByResidence, "Ruritania", 10)
		require.NoError(t, err)
		assert.Equal(t, RowMatch, res.Orientation)
		require.Len(t, res.Entries, 2)
	})

	t.Run("unknown country is empty, not an error", func(t *testing.T) {
		res, err := d.Resolve(ByNationality, "Nonexistentland", 10)
		require.NoError(t, err)
		assert.True(t, res.Empty())
	})

	t.Run("missing mode is a configuration error", func(t *testing.T) {
		_, err := d.Resolve(Mode("By birthplace"), "Ruritania", 10)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfiguration))

		var cerr *ConfigurationError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, Mode("By birthplace"), cerr.Mode)
	})

	t.Run("missing index is a configuration error", func(t *testing.T) {
		broken := &Dataset{Modes: map[Mode]*ModeData{ByResidence: {Matrix: accusedRowsMatrix()}}}
		_, err := broken.Resolve(ByResidence, "Ruritania", 10)
		assert.True(t, errors.Is(err, ErrConfiguration))
	})
}

func TestDatasetSuggest(t *testing.T) {
	d, err := testDataset()
	require.NoError(t, err)

	assert.Equal(t, []string{"Ruritania"}, d.Suggest("Ruritanya", 3))
	assert.Empty(t, d.Suggest("Qqqqqqqq", 3))
}
