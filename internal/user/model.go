package user

// User represents a registered user. The password hash never leaves the
// server.
type User struct {
	ID           int    `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	ProfileImage string `json:"profile_image" db:"profile_image"`
	Appearance   string `json:"appearance" db:"appearance"`
}
