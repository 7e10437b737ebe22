// Package listmembers implements the List Members query use case, filterable by active and role.
package listmembers
