// Package lendingstore provides the core data model and storage abstractions
// for the library lending engine.
//
// This package defines the entities that the storage engines persist (catalog,
// inventory, members, leases, bookings, restock actions), the calendar Date type
// used for due and expiry dates, the availability derivation rule, the static
// per-entity filter registry, and the common error definitions.
//
// Storage implementations live in sub-packages (see sqlengine). They translate
// Filter values into queries for the specific SQL dialect.
//
// Key types:
//   - Date: a calendar date without time-of-day, NULL when zero
//   - Filter: validated predicates for listing one entity type
//   - BookItem, Lease, Booking, RestockAction: the lending state
//
// Common usage pattern:
//
//	filter, err := BuildFilter(EntityLease).
//		Where(FilterKeyBook, bookID.String()).
//		Where(FilterKeyOpen, "true").
//		Finalize()
//	if err != nil {
//		// handle error
//	}
//
//	leases, err := store.ListLeases(ctx, filter)
package lendingstore
