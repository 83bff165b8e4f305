package models

// User is an admin-area account.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // JANGAN dikirim ke frontend
	Role         string `json:"role"`
}
