// Package masquerade implements a stream-framing layer: it disguises
// onion-routed bytes as an innocuous, self-delimiting wire format so a
// transport observer sees plausible traffic rather than an opaque
// binary blob, and lets a relay incrementally reassemble frames out of
// a byte stream that may deliver less than one whole frame at a time.
package masquerade
