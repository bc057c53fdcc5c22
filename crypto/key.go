package crypto

import "encoding/base64"

// Key is an opaque public-key identifier. Equality and hashing are over
// bytes; a Key is never empty in a valid node record.
type Key []byte

// Empty reports whether k carries no key material.
func (k Key) Empty() bool {
	return len(k) == 0
}

// Equal reports whether k and other identify the same key.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders k as unpadded base64, the form used in log lines
// throughout this package (e.g. "AgMEBQ" for the bytes [2,3,4,5]).
func (k Key) String() string {
	return base64.RawStdEncoding.EncodeToString(k)
}

// Clone returns an independent copy of k.
func (k Key) Clone() Key {
	out := make(Key, len(k))
	copy(out, k)
	return out
}
