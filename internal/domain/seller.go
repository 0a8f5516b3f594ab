package domain

import "strings"

// Seller is reference data for one salesperson.
type Seller struct {
	ID        string `json:"id" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
}

// DisplayName joins first and last name for report output.
func (s Seller) DisplayName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}
