// Package listbookitems implements the List Book Items query use case.
//
// The query carries raw request parameters. They are validated against the filter registry
// of the entity, so an unknown key or a malformed value fails the query instead of being ignored.
// Filterable keys: book, code, condition, retired_on, available.
package listbookitems
