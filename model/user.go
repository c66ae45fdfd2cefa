package model

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Role     string `json:"role"` // "user" or "admin"
}

// Staff reports whether the user sees every order, not just their own.
func (u User) Staff() bool {
	return u.Role == "admin"
}
