// Package state persists the bootstrap state record.
//
// The record answers one question: has this working directory been
// bootstrapped before, and with which values. Its presence alone separates a
// first run from a re-run. It is written whole on every run (never merged)
// and removed by reset.
package state
