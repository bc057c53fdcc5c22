// Package route implements the onion-routed Route and Hop data model:
// an ordered, per-hop encrypted sequence of relay instructions that
// only lets relay n learn the key of relay n+1.
package route
