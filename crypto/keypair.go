package crypto

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"

	"github.com/meshcores/corenet/internal/xlog"
)

// KeyPair is a NaCl crypto_box key pair (Curve25519) used for per-hop
// onion encryption.
type KeyPair struct {
	Public  [32]byte
	Private [32]byte
}

// GenerateKeyPair creates a new random NaCl key pair using crypto/rand
// as the entropy source.
func GenerateKeyPair() (*KeyPair, error) {
	log := xlog.New("crypto", "GenerateKeyPair")
	log.Entry()
	defer log.Exit()

	publicKey, privateKey, err := box.GenerateKey(rand.Reader)
	if err != nil {
		log.WithError(err, "box.GenerateKey").Error("failed to generate key pair")
		return nil, err
	}

	return &KeyPair{Public: *publicKey, Private: *privateKey}, nil
}

// FromSecretKey derives a key pair from an existing Curve25519 secret
// key, applying RFC 7748 clamping.
func FromSecretKey(secretKey [32]byte) (*KeyPair, error) {
	if isZeroKey(secretKey) {
		return nil, errors.New("invalid secret key: all zeros")
	}

	var privateKey [32]byte
	copy(privateKey[:], secretKey[:])
	privateKey[0] &= 248
	privateKey[31] &= 127
	privateKey[31] |= 64

	var publicKey [32]byte
	curve25519.ScalarBaseMult(&publicKey, &privateKey)

	return &KeyPair{Public: publicKey, Private: privateKey}, nil
}

func isZeroKey(key [32]byte) bool {
	for _, b := range key {
		if b != 0 {
			return false
		}
	}
	return true
}
