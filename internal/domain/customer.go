package domain

// Customer is carried through the input contract for completeness; the
// report pipeline never reads it.
type Customer struct {
	ID        string `json:"id" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}
