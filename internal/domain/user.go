package domain

type User struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email"`
	Hash    string `db:"password_hash" json:"-"`
	IsAdmin bool   `db:"is_admin" json:"isAdmin"`
}

// UserSummary is the owner block attached to orders in admin listings.
type UserSummary struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
}
