package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-3))
	assert.Equal(t, 25, NormalizeLimit(25))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+1))
	assert.Equal(t, 26, LimitWithBuffer(25))
}

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{
		ImportedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
		ID:         uuid.New(),
	}

	encoded := EncodeCursor(original)
	decoded, err := ParseCursor(encoded)
	require.NoError(t, err)
	require.NotNil(t, decoded)

	assert.True(t, decoded.ImportedAt.Equal(original.ImportedAt))
	assert.Equal(t, original.ID, decoded.ID)
}

func TestParseCursorEmpty(t *testing.T) {
	cursor, err := ParseCursor("   ")
	require.NoError(t, err)
	assert.Nil(t, cursor)
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	cases := []string{
		"not-base64!",
		"bm8tc2VwYXJhdG9y",             // no separator
		"bm90LWEtdGltZXw1ZWI2M2JiYg==", // bad timestamp
	}
	for _, value := range cases {
		_, err := ParseCursor(value)
		assert.Error(t, err, value)
	}
}
