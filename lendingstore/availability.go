package lendingstore

// ComputeAvailability derives BookItem.Available from the number of open leases
// (leases without a return date) that reference the copy.
func ComputeAvailability(openLeases int) bool {
	return openLeases == 0
}
