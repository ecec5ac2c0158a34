// Package reconcile compares a source tree index against a destination tree
// index and decides, per episode identity, whether the source file moves in,
// overwrites a lower-scored incumbent, or stays put. Physical moves are
// delegated to an Executor collaborator; operator approval is delegated to a
// Confirmer driven by an explicit per-run ConfirmationPolicy.
package reconcile
