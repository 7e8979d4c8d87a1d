package user

// User represents a registered user record.
type User struct {
	ID           string `json:"id"`                     // ID is assigned once at signup and never changes
	Name         string `json:"name"`                   // Name is the display name of the user
	Email        string `json:"email"`                  // Email is the unique, case-sensitive login key
	PasswordHash string `json:"passwordHash,omitempty"` // PasswordHash is set only when password verification is enabled
}

// Public returns a copy of u without credential material.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
