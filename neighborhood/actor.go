package neighborhood

import (
	"context"

	"github.com/meshcores/corenet/internal/actor"
	"github.com/meshcores/corenet/internal/xlog"
)

// Actor owns one Database exclusively and processes gossip messages
// from its mailbox in send order: the neighborhood database is owned
// by exactly one actor, and no other component holds a reference to
// it.
type Actor struct {
	mailbox  *actor.Mailbox
	db       *Database
	acceptor Acceptor
	log      *xlog.Logger

	onChanged func(*Gossip)
}

// NewActor starts an Actor owning db. onChanged, if non-nil, is invoked
// synchronously on the actor's goroutine whenever a Handle call reports
// a change, so the caller can decide whether to propagate gossip
// downstream — a change report of false suppresses gossip-forwarding
// when no information actually moved.
func NewActor(db *Database, acceptor Acceptor, onChanged func(*Gossip)) *Actor {
	return NewActorWithConfig(NewConfig(), db, acceptor, onChanged)
}

// NewActorWithConfig is NewActor with explicit tunables.
func NewActorWithConfig(cfg *Config, db *Database, acceptor Acceptor, onChanged func(*Gossip)) *Actor {
	return &Actor{
		mailbox:   actor.NewMailbox(cfg.MailboxCapacity),
		db:        db,
		acceptor:  acceptor,
		log:       xlog.New("neighborhood", "Actor"),
		onChanged: onChanged,
	}
}

// AcceptGossip enqueues gossip for processing and blocks until it has
// been applied, returning whether the database changed.
func (a *Actor) AcceptGossip(ctx context.Context, gossip *Gossip) (bool, error) {
	var changed bool
	err := a.mailbox.SendWait(ctx, func() {
		changed = a.acceptor.Handle(a.db, gossip)
		if changed && a.onChanged != nil {
			a.onChanged(gossip)
		}
	})
	return changed, err
}

// Snapshot returns a deep copy of the record for key, safe to read
// outside the actor's goroutine: cloning value records at actor
// boundaries avoids sharing mutable references.
func (a *Actor) Snapshot(ctx context.Context, key []byte) (*NodeRecord, bool, error) {
	var rec *NodeRecord
	var ok bool
	err := a.mailbox.SendWait(ctx, func() {
		found, present := a.db.NodeByKey(key)
		ok = present
		if present {
			rec = found.Clone()
		}
	})
	return rec, ok, err
}

// Stop ends the actor's mailbox loop.
func (a *Actor) Stop() { a.mailbox.Stop() }
