package models

// ErrorResponse is the fixed error envelope; handlers never expose raw
// datastore error text through it.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AuthenticatedUser is the identity resolved from a bearer token or session
// cookie issued by the external identity provider.
type AuthenticatedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
