package neighborhood

// Config holds the tunables for a neighborhood.Actor, following the
// teacher's plain-struct-with-defaults pattern (opd-ai/toxcore's
// Options/NewOptions).
type Config struct {
	// MailboxCapacity bounds how many pending AcceptGossip/Snapshot
	// calls may queue before Send blocks.
	MailboxCapacity int
}

// NewConfig returns the default Config.
func NewConfig() *Config {
	return &Config{MailboxCapacity: 32}
}
