// Package listrestockactions lists the recorded restock actions, filterable by book, prefix and condition.
package listrestockactions
