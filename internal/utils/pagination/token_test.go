package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)
	token := EncodeToken(createdAt, "mov-1")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(decodedAt), "Created at should match after decode")
	assert.Equal(t, "mov-1", decodedID)
}

func TestEncodeToken_NormalisesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC-6", -6*60*60)
	createdAt := time.Date(2024, 1, 1, 10, 0, 0, 0, loc)

	decodedAt, _, err := DecodeToken(EncodeToken(createdAt, "x"))
	require.NoError(t, err)
	assert.True(t, createdAt.Equal(decodedAt))
	assert.Equal(t, time.UTC, decodedAt.Location())
}

func TestDecodeToken_Invalid(t *testing.T) {
	cases := map[string]string{
		"not base64":   "%%%",
		"missing id":   EncodeToken(time.Now(), ""),
		"bad timestamp": "bm90LWEtdGltZXxpZA==", // "not-a-time|id"
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := DecodeToken(token)
			assert.Error(t, err)
		})
	}
}
