package vatrates

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRateFinland(t *testing.T) {
	rate, ok, err := GetRate("FI")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "Finland", rate.Country)
	assert.Equal(t, "EUR", rate.Currency)
	assert.Equal(t, 25.5, rate.Standard)
	assert.Equal(t, []float64{14, 10}, rate.Reduced)
	assert.False(t, rate.SuperReduced.IsSet())
	assert.False(t, rate.Parking.IsSet())
}

func TestGetRateUnknown(t *testing.T) {
	_, ok, err := GetRate("XX")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetStandardRateGermany(t *testing.T) {
	std, ok, err := GetStandardRate("DE")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 19.0, std)
}

func TestIsEuMember(t *testing.T) {
	tests := map[string]bool{
		"GB": true,
		"fr": true,
		"US": false,
		"ZZ": false,
		"":   false,
	}

	for code, want := range tests {
		member, err := IsEuMember(code)
		require.NoError(t, err)
		assert.Equal(t, want, member, "IsEuMember(%q)", code)
	}
}

func TestGetAllRatesHasUppercaseKeys(t *testing.T) {
	all, err := GetAllRates()
	require.NoError(t, err)
	assert.Len(t, all, 28)

	for code, rate := range all {
		assert.Equal(t, strings.ToUpper(code), code)

		lower, ok, err := GetRate(strings.ToLower(code))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, rate, lower)
	}
}

func TestDataVersionIsStable(t *testing.T) {
	first, err := DataVersion()
	require.NoError(t, err)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, first)

	second, err := DataVersion()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDefaultStoreIsShared(t *testing.T) {
	assert.Same(t, Default(), Default())

	_, err := DataVersion()
	require.NoError(t, err)
	assert.True(t, Default().IsLoaded())
}

func TestNewStoreErrors(t *testing.T) {
	missing := NewStore(fstest.MapFS{}, "rates.json")
	_, _, err := missing.GetRate("FI")

	var fae *FileAccessError
	require.True(t, errors.As(err, &fae), "expected FileAccessError, got %v", err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	broken := NewStore(fstest.MapFS{"rates.json": {Data: []byte(`{"rates": {}}`)}}, "rates.json")
	_, err = broken.DataVersion()

	var pe *ParseError
	require.True(t, errors.As(err, &pe), "expected ParseError, got %v", err)
	assert.Equal(t, "version", pe.Field)
}

func TestNewStoreRejectsInvalidRates(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"negative standard", `{"country":"Finland","currency":"EUR","standard":-25.5,"reduced":[]}`, "rates.FI.standard"},
		{"null reduced entry", `{"country":"Finland","currency":"EUR","standard":25.5,"reduced":[null]}`, "rates.FI.reduced[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := `{"version":"2026-02-25","rates":{"FI":` + tt.body + `}}`
			store := NewStore(fstest.MapFS{"rates.json": {Data: []byte(content)}}, "rates.json")

			_, _, err := store.GetRate("FI")

			var pe *ParseError
			require.True(t, errors.As(err, &pe), "expected ParseError, got %v", err)
			assert.Equal(t, tt.field, pe.Field)
		})
	}
}
