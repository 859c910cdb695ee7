package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("secret")
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, in := range []string{"", "abc", "0", "-3", "7x"} {
		_, err := ParseID(in)
		assert.ErrorIs(t, err, ErrInvalidID, in)
	}
}
