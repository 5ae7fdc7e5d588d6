package handoff

// Waits reports the number of times a caller has suspended on c.
func (c *Cell[T]) Waits() int {
	c.μ.Lock()
	defer c.μ.Unlock()
	return c.waits
}
