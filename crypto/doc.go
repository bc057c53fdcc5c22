// Package crypto implements the cryptographic primitive contract shared by
// every corenet component: key-pair lifecycle, Ed25519 signing, NaCl
// box encoding for per-hop onion encryption, and the SHA-1 digest used
// as the signing input for node records.
//
// The contract is expressed as the CryptDE interface so that tests can
// substitute NullCryptDE — a deterministic, unencrypted stand-in — for
// the real implementation without changing any calling code.
//
// Example:
//
//	cde, err := crypto.NewRealCryptDE()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sig, err := cde.Sign(digest[:])
package crypto
