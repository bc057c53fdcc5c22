package masquerade

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
)

// envelope is the disguise: a CORES frame looks like an ordinary
// base64-in-JSON message, a shape common to the chat/control protocols
// onion-routed traffic rides alongside.
type envelope struct {
	Data string `json:"data"`
}

// JSONMasquerader implements Masquerader by wrapping each frame in a
// single JSON object. Concatenated objects in a stream are parsed one
// at a time with json.Decoder's sequential-token support, which also
// gives TryUnmask the exact byte offset of each frame's end.
type JSONMasquerader struct{}

// NewJSONMasquerader returns the default Masquerader.
func NewJSONMasquerader() *JSONMasquerader { return &JSONMasquerader{} }

func (JSONMasquerader) Mask(data []byte) ([]byte, error) {
	env := envelope{Data: base64.StdEncoding.EncodeToString(data)}
	return json.Marshal(env)
}

func (JSONMasquerader) TryUnmask(buf []byte) ([]byte, []byte, bool, error) {
	dec := json.NewDecoder(bytes.NewReader(buf))
	var env envelope
	if err := dec.Decode(&env); err != nil {
		// Either buf holds less than one object, or it holds garbage.
		// Neither is fatal here: the caller keeps appending bytes from
		// the stream and retrying.
		return nil, buf, false, nil
	}

	chunk, err := base64.StdEncoding.DecodeString(env.Data)
	if err != nil {
		return nil, buf, false, nil
	}

	offset := dec.InputOffset()
	return chunk, buf[offset:], true, nil
}

var _ Masquerader = JSONMasquerader{}
