package models

// Category represents a transaction category
type Category struct {
	Base
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"not null;default:''" json:"description"`
}

// SearchFields returns the text fields matched by client-side search.
func (c Category) SearchFields() []string {
	return []string{c.Name, c.Description}
}
