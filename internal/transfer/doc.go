// Package transfer implements the two-pane selection-transfer control: a
// searchable pool of candidate items on one side, an ordered chosen set on
// the other, and an independent checkbox selection for each pane.
//
// The package is a pure state machine. It performs no I/O; hosts supply
// the pool, render from the query methods, and receive the final ordered
// ids through the commit callback registered with OnCommit.
package transfer
