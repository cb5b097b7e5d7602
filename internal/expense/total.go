package expense

// Total sums the cost of all given expenses in cents. An empty or nil list
// totals to zero.
func Total(items []*Expense) int64 {
	var sum int64
	for _, e := range items {
		sum += e.Cost
	}

	return sum
}
