package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(b byte) [32]byte {
	var s [32]byte
	for i := range s {
		s[i] = b
	}
	return s
}

func TestRealCryptDESignVerifyRoundTrip(t *testing.T) {
	cryptde, err := NewRealCryptDEFromSeed(seed(1))
	require.NoError(t, err)

	digest := cryptde.Hash([]byte("hello world"))
	sig, err := cryptde.Sign(digest[:])
	require.NoError(t, err)

	ok, err := cryptde.Verify(sig, digest[:], cryptde.PublicKey())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRealCryptDEVerifyRejectsTamperedMessage(t *testing.T) {
	cryptde, err := NewRealCryptDEFromSeed(seed(2))
	require.NoError(t, err)

	digest := cryptde.Hash([]byte("hello world"))
	sig, err := cryptde.Sign(digest[:])
	require.NoError(t, err)

	otherDigest := cryptde.Hash([]byte("goodbye world"))
	ok, err := cryptde.Verify(sig, otherDigest[:], cryptde.PublicKey())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRealCryptDEEncodeDecodeRoundTrip(t *testing.T) {
	sender, err := NewRealCryptDEFromSeed(seed(3))
	require.NoError(t, err)
	recipient, err := NewRealCryptDEFromSeed(seed(4))
	require.NoError(t, err)

	cipher, err := sender.Encode(recipient.PublicKey(), []byte("onion payload"))
	require.NoError(t, err)

	plain, err := recipient.Decode(cipher)
	require.NoError(t, err)
	assert.Equal(t, []byte("onion payload"), plain)
}

func TestRealCryptDEDecodeFailsForWrongRecipient(t *testing.T) {
	sender, err := NewRealCryptDEFromSeed(seed(5))
	require.NoError(t, err)
	recipient, err := NewRealCryptDEFromSeed(seed(6))
	require.NoError(t, err)
	stranger, err := NewRealCryptDEFromSeed(seed(7))
	require.NoError(t, err)

	cipher, err := sender.Encode(recipient.PublicKey(), []byte("onion payload"))
	require.NoError(t, err)

	_, err = stranger.Decode(cipher)
	assert.Error(t, err)
}

func TestKeyStringMatchesUnpaddedBase64(t *testing.T) {
	key := Key([]byte{2, 3, 4, 5})
	assert.Equal(t, "AgMEBQ", key.String())
}

func TestNullCryptDESignVerifyRoundTrip(t *testing.T) {
	cryptde := NewNullCryptDE(Key([]byte{1, 2, 3, 4}))

	sig, err := cryptde.Sign([]byte("plaintext"))
	require.NoError(t, err)

	ok, err := cryptde.Verify(sig, []byte("plaintext"), cryptde.PublicKey())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNullCryptDEEncodeDecodeRoundTrip(t *testing.T) {
	cryptde := NewNullCryptDE(Key([]byte{9, 9, 9, 9}))
	recipient := Key([]byte{1, 2, 3, 4})

	cipher, err := cryptde.Encode(recipient, []byte("plaintext"))
	require.NoError(t, err)

	plain, err := cryptde.Decode(cipher)
	require.NoError(t, err)
	assert.Equal(t, []byte("plaintext"), plain)
}
