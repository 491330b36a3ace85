package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAligned(t *testing.T) {
	assert.Equal(t, uint64(4), GetAligned(1, 4))
	assert.Equal(t, uint64(4), GetAligned(4, 4))
	assert.Equal(t, uint64(16), GetAligned(13, 16))
	assert.Equal(t, uint64(0), GetAligned(0, 256))
}

func TestParsePresentMode(t *testing.T) {
	mode, err := ParsePresentMode("mailbox")
	assert.NoError(t, err)
	assert.Equal(t, PRESENT_MODE_MAILBOX, mode)
	assert.Equal(t, "mailbox", mode.String())

	_, err = ParsePresentMode("vsync")
	assert.Error(t, err)
}
