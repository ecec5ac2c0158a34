// Package services holds the cross-cutting error taxonomy and context plumbing
// shared by the reconcile pipeline and the CLI.
package services
