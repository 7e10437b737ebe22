// Package listbookings implements the List Bookings query use case.
//
// The query carries raw request parameters. They are validated against the filter registry
// of the entity, so an unknown key or a malformed value fails the query instead of being ignored.
// Filterable keys: book, member, status, expire_date, expire_date_lte, expire_date_gte.
package listbookings
