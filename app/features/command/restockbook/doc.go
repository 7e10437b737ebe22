// Package restockbook implements the Restock Book use case: a bulk intake of copies of one book.
//
// The codes of the new copies are either listed explicitly or generated as a numeric sequence,
// and every code is prefixed. The action and its copies are stored in one transaction, so a
// colliding code rejects the whole restock.
package restockbook
