package repos

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"shopline/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a new user. A unique-constraint violation on the email
// column surfaces as ErrEmailTaken.
func (r *UserRepo) Create(u *domain.User) error {
	_, err := r.DB.Exec(`
		INSERT INTO users(id,name,email,password_hash,is_admin)
		VALUES(?,?,?,?,?)
	`, u.ID, u.Name, u.Email, u.Hash, u.IsAdmin)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return ErrEmailTaken
	}
	return err
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT id,name,email,password_hash,is_admin
		FROM users WHERE LOWER(email)=LOWER(?)
	`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
		SELECT id,name,email,password_hash,is_admin
		FROM users WHERE id=?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update persists profile fields; the caller decides which ones changed.
func (r *UserRepo) Update(u *domain.User) error {
	res, err := r.DB.Exec(`
		UPDATE users SET name=?, email=?, password_hash=?, updated_at=CURRENT_TIMESTAMP
		WHERE id=?
	`, u.Name, u.Email, u.Hash, u.ID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return ErrEmailTaken
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
