package crypto

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/nacl/box"
)

// Nonce is a 24-byte value used once per box-encrypted message.
type Nonce [24]byte

// GenerateNonce returns a cryptographically secure random nonce.
func GenerateNonce() (Nonce, error) {
	var nonce Nonce
	if _, err := rand.Read(nonce[:]); err != nil {
		return Nonce{}, err
	}
	return nonce, nil
}

// MaxPlaintextSize bounds a single encode() call to prevent excessive
// memory use on malformed input.
const MaxPlaintextSize = 1024 * 1024

// anonBoxEncode encrypts plain for recipientPublicKey using a one-shot
// ephemeral key pair rather than a long-lived sender identity: the
// originator of a CORES package need not share a static identity with
// the relay it is encrypting a hop for.
//
// Wire layout: [ephemeral_public(32)][nonce(24)][sealed_box].
func anonBoxEncode(plain []byte, recipientPublicKey [32]byte) ([]byte, error) {
	if len(plain) == 0 {
		return nil, errors.New("empty message")
	}
	if len(plain) > MaxPlaintextSize {
		return nil, errors.New("message too large")
	}

	ephPub, ephPriv, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	nonce, err := GenerateNonce()
	if err != nil {
		return nil, err
	}

	sealed := box.Seal(nil, plain, (*[24]byte)(&nonce), &recipientPublicKey, ephPriv)

	out := make([]byte, 32+24+len(sealed))
	copy(out, ephPub[:])
	copy(out[32:], nonce[:])
	copy(out[56:], sealed)
	return out, nil
}

// anonBoxDecode inverts anonBoxEncode using the holder's private key.
func anonBoxDecode(cipher []byte, recipientPrivateKey [32]byte) ([]byte, error) {
	if len(cipher) <= 56 {
		return nil, errors.New("ciphertext too short")
	}

	var ephPub [32]byte
	copy(ephPub[:], cipher[:32])
	var nonce [24]byte
	copy(nonce[:], cipher[32:56])

	plain, ok := box.Open(nil, cipher[56:], &nonce, &ephPub, &recipientPrivateKey)
	if !ok {
		return nil, errors.New("decryption failed")
	}
	return plain, nil
}
