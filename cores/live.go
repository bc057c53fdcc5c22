package cores

import (
	"errors"

	"github.com/meshcores/corenet/crypto"
	"github.com/meshcores/corenet/route"
)

// LiveCoresPackage is a package in transit: a remaining route and the
// payload still travelling with it. Each hop a relay processes
// consumes exactly one Hop off Route via Shift/Advance.
type LiveCoresPackage struct {
	Route   *route.Route
	Payload []byte
}

// FromIncipient shifts the first hop off incipient's route, decrypting
// it under cryptde's own private key. Route construction always lists
// the originator itself as hop zero; the shift succeeding is therefore
// proof the originator built the route correctly, before a single byte
// reaches the network.
func FromIncipient(incipient *IncipientCoresPackage, cryptde crypto.CryptDE) (*LiveCoresPackage, error) {
	_, _, remaining, err := incipient.Route.Shift(cryptde)
	if err != nil {
		return nil, err
	}
	return &LiveCoresPackage{Route: remaining, Payload: incipient.Payload}, nil
}

// Advance shifts the next hop off l's route. nextKey is empty when the
// route has reached its end; callers must check that before treating
// the result as forwardable (use ToExpired for the terminal case).
func (l *LiveCoresPackage) Advance(cryptde crypto.CryptDE) (nextKey crypto.Key, component route.Component, advanced *LiveCoresPackage, err error) {
	nextKey, component, remaining, err := l.Route.Shift(cryptde)
	if err != nil {
		return nil, 0, nil, err
	}
	return nextKey, component, &LiveCoresPackage{Route: remaining, Payload: l.Payload}, nil
}

// ToExpired shifts the route's final hop and returns the expired
// package. It errors if the shifted hop still names a next relay: the
// caller forwarded a live package that has not actually reached its
// route's end.
func (l *LiveCoresPackage) ToExpired(cryptde crypto.CryptDE) (*ExpiredCoresPackage, error) {
	nextKey, _, remaining, err := l.Advance(cryptde)
	if err != nil {
		return nil, err
	}
	if !nextKey.Empty() {
		return nil, errors.New("cores: live package has not reached route end")
	}
	return &ExpiredCoresPackage{RemainingRoute: remaining.Route, Payload: remaining.Payload}, nil
}
