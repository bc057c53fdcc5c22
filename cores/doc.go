// Package cores implements the CORES packaging pipeline: the
// incipient -> live -> expired lifecycle a payload travels through as
// it is wrapped for onion routing, forwarded hop by hop, and finally
// unwrapped at its destination.
package cores
