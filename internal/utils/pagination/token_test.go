package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrax/ledger-api/internal/utils/pagination"
)

func TestTokenRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 30, 45, 123456789, time.UTC)
	id := "9f2c1b3a"

	token := pagination.EncodeToken(createdAt, id)
	gotTime, gotID, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_NotBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-!!-base64")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	_, _, err := pagination.DecodeToken("bm8gc2VwYXJhdG9yIGhlcmU=")
	assert.Error(t, err)
}

func TestDecodeToken_BadTimestamp(t *testing.T) {
	_, _, err := pagination.DecodeToken("bm90LWEtdGltZXxpZDE=")
	assert.Error(t, err)
}
