package neighborhood

import "fmt"

// ErrNodeKeyNotFound is returned when an operation names a key absent
// from the database.
type ErrNodeKeyNotFound struct {
	Key string
}

func (e *ErrNodeKeyNotFound) Error() string {
	return fmt.Sprintf("node key not found: %s", e.Key)
}

// ErrNodeKeyCollision is returned by AddNode when the record's key is
// already present.
type ErrNodeKeyCollision struct {
	Key string
}

func (e *ErrNodeKeyCollision) Error() string {
	return fmt.Sprintf("node key collision: %s", e.Key)
}

// ErrNodeAddrAlreadySet is returned by SetNodeAddr when the record
// already carries an address; Old preserves the address that was
// already there so the caller can decide what to do.
type ErrNodeAddrAlreadySet struct {
	Old *NodeAddr
}

func (e *ErrNodeAddrAlreadySet) Error() string {
	return fmt.Sprintf("node address already set: %s", e.Old)
}

// ErrNodeSignaturesAlreadySet is returned by SetSignaturesOnce when the
// record already carries signatures, whatever their value.
type ErrNodeSignaturesAlreadySet struct{}

func (e *ErrNodeSignaturesAlreadySet) Error() string {
	return "node signatures already set"
}
