package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	billDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 3, 1, 9, 15, 30, 123456789, time.UTC)

	token := EncodeToken(billDate, createdAt)
	assert.NotEmpty(t, token)

	decodedDate, decodedCreatedAt, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, billDate, decodedDate)
	assert.Equal(t, createdAt, decodedCreatedAt)

	// Zero values survive the round trip
	zero := time.Time{}
	d, c, err := DecodeToken(EncodeToken(zero, zero))
	assert.NoError(t, err)
	assert.Equal(t, zero, d)
	assert.Equal(t, zero, c)
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	noSeparator := base64.StdEncoding.EncodeToString([]byte("2024-03-01T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	badDate := base64.StdEncoding.EncodeToString([]byte("notadate|2024-03-01T09:15:30Z"))
	_, _, err = DecodeToken(badDate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sort date parse")
}

func TestMultiFieldToken(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 15, 30, 5, time.UTC).Format(time.RFC3339Nano)
	token := EncodeMultiFieldToken(ts, "movement-1")

	fields, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err)
	assert.Equal(t, []string{ts, "movement-1"}, fields)

	_, err = DecodeMultiFieldToken("%%%")
	assert.Error(t, err)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-5))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, MaxLimit, ClampLimit(1000))
}
