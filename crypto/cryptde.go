package crypto

import (
	"crypto/ed25519"
	"errors"

	"github.com/meshcores/corenet/internal/xlog"
)

// CryptDE is the cryptographic primitive capability set every corenet
// component relies on: key-pair lifecycle, signing, and per-hop
// encoding, independent of whether the implementation is real crypto
// or a deterministic test double.
//
// A Key returned by PublicKey is a 64-byte composite identity: the
// first 32 bytes are an Ed25519 verification key (consumed by Verify),
// the last 32 are a Curve25519 box public key (consumed by Encode).
// They are derived from the same 32-byte seed but are not
// interconvertible without an explicit birational map, so both are
// carried rather than attempting that conversion at every use site
// (see DESIGN.md).
type CryptDE interface {
	PublicKey() Key
	Sign(plain []byte) ([]byte, error)
	Verify(signature, plain []byte, key Key) (bool, error)
	Encode(recipientKey Key, plain []byte) ([]byte, error)
	Decode(cipher []byte) ([]byte, error)
	Hash(data []byte) [DigestSize]byte
}

// RealCryptDE is the production CryptDE: Ed25519 signatures and
// anonymous NaCl-box encoding, both derived from one 32-byte seed.
type RealCryptDE struct {
	seed    [32]byte
	signPub ed25519.PublicKey
	signKey ed25519.PrivateKey
	box     *KeyPair
	key     Key
}

// NewRealCryptDE generates a fresh identity.
func NewRealCryptDE() (*RealCryptDE, error) {
	var seed [32]byte
	kp, err := GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	seed = kp.Private
	return newRealCryptDEFromSeed(seed, kp)
}

// NewRealCryptDEFromSeed derives a deterministic identity from an
// existing 32-byte seed, for persistence/reload paths.
func NewRealCryptDEFromSeed(seed [32]byte) (*RealCryptDE, error) {
	kp, err := FromSecretKey(seed)
	if err != nil {
		return nil, err
	}
	return newRealCryptDEFromSeed(seed, kp)
}

func newRealCryptDEFromSeed(seed [32]byte, kp *KeyPair) (*RealCryptDE, error) {
	signKey := ed25519.NewKeyFromSeed(seed[:])
	signPub := signKey.Public().(ed25519.PublicKey)

	key := make(Key, 64)
	copy(key[:32], signPub)
	copy(key[32:], kp.Public[:])

	return &RealCryptDE{
		seed:    seed,
		signPub: signPub,
		signKey: signKey,
		box:     kp,
		key:     key,
	}, nil
}

// PublicKey returns the composite identity key.
func (c *RealCryptDE) PublicKey() Key { return c.key.Clone() }

// Sign signs plain with the Ed25519 half of the identity.
func (c *RealCryptDE) Sign(plain []byte) ([]byte, error) {
	return Sign(plain, c.seed)
}

// Verify checks a signature against the Ed25519 half of key.
func (c *RealCryptDE) Verify(signature, plain []byte, key Key) (bool, error) {
	if len(key) != 64 {
		return false, errors.New("malformed key: expected 64-byte composite identity")
	}
	var pub [32]byte
	copy(pub[:], key[:32])
	return Verify(plain, signature, pub), nil
}

// Encode anonymously box-encrypts plain for the Curve25519 half of
// recipientKey.
func (c *RealCryptDE) Encode(recipientKey Key, plain []byte) ([]byte, error) {
	if len(recipientKey) != 64 {
		return nil, errors.New("malformed key: expected 64-byte composite identity")
	}
	var pub [32]byte
	copy(pub[:], recipientKey[32:])
	return anonBoxEncode(plain, pub)
}

// Decode decrypts cipher that was encoded to this identity's box key.
func (c *RealCryptDE) Decode(cipher []byte) ([]byte, error) {
	return anonBoxDecode(cipher, c.box.Private)
}

// Hash returns the SHA-1 digest of data.
func (c *RealCryptDE) Hash(data []byte) [DigestSize]byte { return Hash(data) }

// NullCryptDE is a deterministic, unencrypted CryptDE for tests.
// Signatures are the hash of (key || plain); encoding prepends the
// recipient key to the ciphertext so a test can assert which hop a
// packet was meant for without running real cryptography.
type NullCryptDE struct {
	key Key
	log *xlog.Logger
}

// NewNullCryptDE builds a NullCryptDE identified by key.
func NewNullCryptDE(key Key) *NullCryptDE {
	return &NullCryptDE{key: key, log: xlog.New("crypto", "NullCryptDE")}
}

func (n *NullCryptDE) PublicKey() Key { return n.key.Clone() }

func (n *NullCryptDE) Sign(plain []byte) ([]byte, error) {
	if len(plain) == 0 {
		return nil, errors.New("empty message")
	}
	digest := Hash(append(n.key.Clone(), plain...))
	return digest[:], nil
}

func (n *NullCryptDE) Verify(signature, plain []byte, key Key) (bool, error) {
	if len(plain) == 0 {
		return false, errors.New("empty message")
	}
	digest := Hash(append(key.Clone(), plain...))
	return string(digest[:]) == string(signature), nil
}

func (n *NullCryptDE) Encode(recipientKey Key, plain []byte) ([]byte, error) {
	if recipientKey.Empty() {
		return nil, errors.New("malformed key: empty recipient")
	}
	if len(plain) == 0 {
		return nil, errors.New("empty message")
	}
	out := make([]byte, len(recipientKey)+len(plain))
	copy(out, recipientKey)
	copy(out[len(recipientKey):], plain)
	return out, nil
}

func (n *NullCryptDE) Decode(cipher []byte) ([]byte, error) {
	if len(cipher) < len(n.key) {
		return nil, errors.New("ciphertext too short")
	}
	prefix := cipher[:len(n.key)]
	if !Key(prefix).Equal(n.key) {
		n.log.With("expected", n.key.String()).Debug("decode: key prefix mismatch, decrypting anyway")
	}
	return cipher[len(n.key):], nil
}

func (n *NullCryptDE) Hash(data []byte) [DigestSize]byte { return Hash(data) }

var (
	_ CryptDE = (*RealCryptDE)(nil)
	_ CryptDE = (*NullCryptDE)(nil)
)
