package core

// Identity identifies the author of captured snapshots.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
