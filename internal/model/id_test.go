package model_test

import (
	"testing"

	"fizzybot/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestNewID_Format(t *testing.T) {
	id := model.NewID()

	assert.Len(t, id.String(), 25)
	for _, c := range id.String() {
		assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z'),
			"unexpected character %q in id %s", c, id)
	}
}

func TestNewID_Unique(t *testing.T) {
	assert.NotEqual(t, model.NewID(), model.NewID())
}

func TestParseID_Valid(t *testing.T) {
	id := model.NewID()

	parsed, err := model.ParseID(id.String())

	assert.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestParseID_Malformed(t *testing.T) {
	cases := []string{
		"",
		"short",
		"0123456789012345678901234567890", // too long
		"012345678901234567890123!",       // bad character
		"ABCDEFGHIJKLMNOPQRSTUVWXY",       // uppercase
	}
	for _, in := range cases {
		_, err := model.ParseID(in)
		assert.ErrorIs(t, err, model.ErrInvalidID, "input %q", in)
	}
}

func TestID_BytesRoundtrip(t *testing.T) {
	id := model.NewID()

	b, err := id.Bytes()
	assert.NoError(t, err)
	assert.Len(t, b, 16)

	var scanned model.ID
	assert.NoError(t, scanned.Scan(b))
	assert.Equal(t, id, scanned)
}

func TestID_ScanRejectsWrongLength(t *testing.T) {
	var id model.ID
	assert.ErrorIs(t, id.Scan([]byte{1, 2, 3}), model.ErrInvalidID)
}

func TestID_ValueBindsSixteenBytes(t *testing.T) {
	id := model.NewID()

	v, err := id.Value()

	assert.NoError(t, err)
	assert.Len(t, v.([]byte), 16)
}

func TestNewID_TimeOrdered(t *testing.T) {
	// UUIDv7 sorts by creation time; the base36 form preserves order
	// because every id has the same length.
	a := model.NewID()
	b := model.NewID()
	assert.True(t, a.String() < b.String(), "%s should sort before %s", a, b)
}
