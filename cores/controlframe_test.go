package cores

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlFrameRoundTrip(t *testing.T) {
	frame := NewControlFrame("relay-1.example:8080", "relay-2.example:8080", []byte("control payload"))

	data, err := frame.Serialize()
	require.NoError(t, err)

	decoded, err := DeserializeControlFrame(data)
	require.NoError(t, err)

	assert.Equal(t, frame.ID, decoded.ID)
	assert.Equal(t, frame.FromAddr, decoded.FromAddr)
	assert.Equal(t, frame.ToAddr, decoded.ToAddr)
	assert.Equal(t, frame.Payload, decoded.Payload)
}
