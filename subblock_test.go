package angif

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkDechunkRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{1},
		bytes.Repeat([]byte{7}, 255),
		bytes.Repeat([]byte{9}, 256),
		bytes.Repeat([]byte{3}, 510),
		bytes.Repeat([]byte{5}, 511),
	}
	for _, payload := range cases {
		chunked := chunk(payload)
		got, next, err := dechunk(chunked, 0)
		require.NoError(t, err)
		assert.Equal(t, next, len(chunked))
		if len(payload) == 0 {
			assert.Empty(t, got)
		} else {
			assert.Equal(t, payload, got)
		}
	}
}

func TestChunkCapsSubBlocksAt255(t *testing.T) {
	payload := bytes.Repeat([]byte{1}, 600)
	chunked := chunk(payload)
	assert.Equal(t, byte(255), chunked[0])
	assert.Equal(t, byte(255), chunked[256])
	assert.Equal(t, byte(90), chunked[256+256])
	assert.Equal(t, byte(0), chunked[len(chunked)-1])
}

func TestDechunkErrorsOnTruncation(t *testing.T) {
	_, _, err := dechunk([]byte{5, 1, 2}, 0)
	assert.Error(t, err)
}
