// Package returnbookitem implements the Return Book Item use case.
//
// Returning sets the return date of an open lease. The copy becomes available again
// once no other open lease references it. Returning a lease twice changes nothing.
package returnbookitem
