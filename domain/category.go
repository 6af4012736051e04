package domain

// Category is shared reference data a task points at.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Equal reports whether two categories are the same entity. Identity is the
// id alone; two categories with equal names are still distinct.
func (c *Category) Equal(other *Category) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.ID == other.ID
}
