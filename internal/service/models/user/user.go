package user

// User is the read-only collaborator view of a customer. Registration and
// authentication live outside this service.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}
