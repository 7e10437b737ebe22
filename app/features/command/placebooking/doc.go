// Package placebooking implements the Place Booking use case: reserving a book for a member,
// or changing an existing booking.
//
// The hold expires after the policy's booking days unless an expiry date is given.
// Status changes are driven from outside and are not restricted here.
package placebooking
