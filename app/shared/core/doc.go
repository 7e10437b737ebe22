// Package core contains the pure lending rules of the library:
// policy defaults for due and expiry dates, restock validation and planning,
// the member name fallback and the genre statistics.
//
// Nothing in this package touches storage. Command handlers load the current state,
// pass it into the functions here and persist what they return.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
