package types

import (
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMapIsValuerByValue(t *testing.T) {
	// database/sql only sees the field value, never a pointer to it
	var v driver.Valuer = JSONMap{"color": "blue"}

	raw, err := v.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"color":"blue"}`, string(raw.([]byte)))
}

func TestJSONMapNilValue(t *testing.T) {
	var m JSONMap

	value, err := m.Value()
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestJSONMapScanRoundTrip(t *testing.T) {
	m := JSONMap{"size": "XL", "count": float64(3)}
	raw, err := m.Value()
	require.NoError(t, err)

	var decoded JSONMap
	require.NoError(t, decoded.Scan(raw))
	assert.Equal(t, m, decoded)
}

func TestJSONMapScanNil(t *testing.T) {
	decoded := JSONMap{"stale": true}
	require.NoError(t, decoded.Scan(nil))
	assert.Nil(t, decoded)
}

func TestJSONMapScanRejectsOddTypes(t *testing.T) {
	var decoded JSONMap
	assert.Error(t, decoded.Scan(42))
}
