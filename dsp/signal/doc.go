// Package signal synthesizes deterministic test and impulse signals.
package signal
