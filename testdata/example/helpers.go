package calc

// Sum adds values on a fresh Calculator.
func Sum(values ...int) int {
	if len(values) == 0 {
		return 0
	}
	c := NewCalculator()
	for _, v := range values {
		c.Add(v)
	}
	return c.total
}
