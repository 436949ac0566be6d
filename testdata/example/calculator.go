package calc

// Calculator accumulates a running total.
type Calculator struct {
	total int
}

// NewCalculator returns a zeroed Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Add adds n to the running total.
func (c *Calculator) Add(n int) int {
	c.total += n
	return c.total
}

// Reset clears the running total.
func (c *Calculator) Reset() {
	c.total = 0
}
