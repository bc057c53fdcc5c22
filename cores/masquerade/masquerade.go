package masquerade

// Masquerader wraps and unwraps CORES ciphertext for a transport
// stream. Mask never fails: any byte slice can be disguised.
// TryUnmask's failure is never fatal — callers treat "not enough data
// yet" as ordinary backpressure, append the next chunk read from the
// stream, and try again.
type Masquerader interface {
	// Mask disguises data as one self-delimiting frame.
	Mask(data []byte) ([]byte, error)

	// TryUnmask attempts to pull one complete frame off the front of
	// buf. ok is false when buf does not yet hold a whole frame; buf is
	// returned unchanged as leftover in that case. err is reserved for
	// frames that are present but unrecoverably malformed.
	TryUnmask(buf []byte) (chunk []byte, leftover []byte, ok bool, err error)
}
