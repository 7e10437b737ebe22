// Package retirebookitem implements the Retire Book Item use case.
//
// Retiring records the day a copy left the collection and why. The reason is free text
// and is stripped of markup. A copy is retired once; later commands change nothing.
package retirebookitem
