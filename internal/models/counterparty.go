package models

// Counterparty represents the other side of a transaction: a merchant,
// employer, landlord, person, and so on.
type Counterparty struct {
	Base
	Name        string `gorm:"not null" json:"name"`
	Reference   string `gorm:"not null;default:''" json:"reference"`
	Description string `gorm:"not null;default:''" json:"description"`
}

// SearchFields returns the text fields matched by client-side search.
func (c Counterparty) SearchFields() []string {
	return []string{c.Name, c.Reference, c.Description}
}
