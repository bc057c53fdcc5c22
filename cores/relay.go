package cores

import (
	"context"

	"github.com/meshcores/corenet/cores/masquerade"
	"github.com/meshcores/corenet/crypto"
	"github.com/meshcores/corenet/internal/actor"
	"github.com/meshcores/corenet/internal/xlog"
	"github.com/meshcores/corenet/route"
)

// Relay is a mailbox actor wrapping the CORES pipeline: it owns the
// byte buffer for one inbound stream, unmasking and decrypting frames
// as they complete, and for each one either hands its owner a
// re-masked frame to forward to the next hop or delivers the expired
// package to its destination component.
type Relay struct {
	mailbox *actor.Mailbox
	cryptde crypto.CryptDE
	masq    masquerade.Masquerader
	buf     []byte
	log     *xlog.Logger

	onForward func(nextKey crypto.Key, wireBytes []byte)
	onDeliver func(component route.Component, expired *ExpiredCoresPackage)
}

// NewRelay starts a Relay. onForward is called once per frame that
// still has a next hop; onDeliver once per frame whose route has
// ended. Both run synchronously on the relay's own goroutine and must
// not block.
func NewRelay(cryptde crypto.CryptDE, masq masquerade.Masquerader, onForward func(crypto.Key, []byte), onDeliver func(route.Component, *ExpiredCoresPackage)) *Relay {
	return NewRelayWithConfig(NewConfig(), cryptde, masq, onForward, onDeliver)
}

// NewRelayWithConfig is NewRelay with explicit tunables.
func NewRelayWithConfig(cfg *Config, cryptde crypto.CryptDE, masq masquerade.Masquerader, onForward func(crypto.Key, []byte), onDeliver func(route.Component, *ExpiredCoresPackage)) *Relay {
	return &Relay{
		mailbox:   actor.NewMailbox(cfg.MailboxCapacity),
		cryptde:   cryptde,
		masq:      masq,
		log:       xlog.New("cores", "Relay"),
		onForward: onForward,
		onDeliver: onDeliver,
	}
}

// Feed appends data, read off the transport, to the relay's buffer and
// processes every complete frame it now contains. It blocks until that
// processing has finished.
func (r *Relay) Feed(ctx context.Context, data []byte) error {
	return r.mailbox.SendWait(ctx, func() {
		r.buf = append(r.buf, data...)
		for {
			chunk, leftover, ok, err := TryUnmaskWire(r.buf, r.masq)
			if err != nil {
				r.log.WithError(err, "TryUnmaskWire").Error("dropping unrecoverable frame")
				r.buf = nil
				return
			}
			if !ok {
				r.buf = leftover
				return
			}
			r.buf = leftover
			r.processFrame(chunk)
		}
	})
}

func (r *Relay) processFrame(chunk []byte) {
	live, err := DecodeWire(chunk, r.cryptde)
	if err != nil {
		r.log.WithError(err, "DecodeWire").Error("dropping undecodable frame")
		return
	}

	nextKey, component, advanced, err := live.Advance(r.cryptde)
	if err != nil {
		r.log.WithError(err, "Advance").Error("dropping frame with unshiftable route")
		return
	}

	if nextKey.Empty() {
		r.onDeliver(component, &ExpiredCoresPackage{RemainingRoute: advanced.Route, Payload: advanced.Payload})
		return
	}

	wireBytes, err := ToWire(advanced, nextKey, r.cryptde, r.masq)
	if err != nil {
		r.log.WithError(err, "ToWire").Error("dropping frame that failed to re-encode for forwarding")
		return
	}
	r.onForward(nextKey, wireBytes)
}

// Stop ends the relay's mailbox loop.
func (r *Relay) Stop() { r.mailbox.Stop() }
