// Package listleases implements the List Leases query use case.
//
// The query carries raw request parameters. They are validated against the filter registry
// of the entity, so an unknown key or a malformed value fails the query instead of being ignored.
// Filterable keys: book, book_item, member, condition, leased_on, due_date, returned, open.
package listleases
