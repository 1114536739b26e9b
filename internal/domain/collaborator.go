package domain

// Collaborator represents a person being rated through feedback.
// Collaborators are not login principals; they are distinct from User.
// Deleting a collaborator is a physical delete.
type Collaborator struct {
	// ID is the unique identifier for the collaborator (auto-generated).
	ID int64 `json:"id"`

	// IdentificationNumber is the unique company identification number.
	// Constraints: 1-50 characters.
	IdentificationNumber string `json:"numeroidentificacao"`

	// FullName is the collaborator's full name. Constraints: 1-255 characters.
	FullName string `json:"nomecompleto"`

	// Email is the unique email address. Constraints: 1-100 characters.
	Email string `json:"email"`
}
