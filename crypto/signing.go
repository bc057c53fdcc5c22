package crypto

import (
	"crypto/ed25519"
	"crypto/sha1" //nolint:gosec // protocol-mandated digest, kept for wire compatibility
	"errors"
)

// SignatureSize is the size of an Ed25519 signature in bytes.
const SignatureSize = ed25519.SignatureSize

// DigestSize is the size of the signing-input digest.
const DigestSize = sha1.Size

// Hash returns the 20-byte SHA-1 digest of data, the digest algorithm
// this protocol signs over. SHA-1 is known to be cryptographically
// weak; it is kept here as the wire-compatible choice rather than
// silently swapped for SHA-256.
func Hash(data []byte) [DigestSize]byte {
	return sha1.Sum(data) //nolint:gosec
}

// Sign produces an Ed25519 signature over plain using the 32-byte seed
// form of an Ed25519 private key.
func Sign(plain []byte, privateKey [32]byte) ([]byte, error) {
	if len(plain) == 0 {
		return nil, errors.New("empty message")
	}
	edPrivateKey := ed25519.NewKeyFromSeed(privateKey[:])
	return ed25519.Sign(edPrivateKey, plain), nil
}

// Verify checks an Ed25519 signature over plain against publicKey.
func Verify(plain, signature []byte, publicKey [32]byte) bool {
	if len(plain) == 0 || len(signature) != SignatureSize {
		return false
	}
	return ed25519.Verify(publicKey[:], plain, signature)
}
