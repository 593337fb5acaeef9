// Package rubric scores call transcripts against an ordered set of
// pass/fail criteria. Scoring is pure and deterministic: no I/O, no hidden
// state, and the breakdown always follows configuration order.
package rubric
