// Package leasebookitem implements the Lease Book Item use case: creating a lease of one copy
// to a member, or updating an existing lease.
//
// It follows the Load-Decide-Write pattern. The CommandHandler loads the policy and the stored lease,
// the pure Decide function fills in the defaults (leased today, condition "Good", due date from the
// lending policy) and the handler writes the lease through the store's transactional lease write,
// which also re-derives the availability of the copy.
//
// A due date is computed only once. Updating a lease never moves a due date that is already set.
package leasebookitem
