package repos

import (
	"github.com/jmoiron/sqlx"

	"ecofinds/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) Create(u domain.User) error {
	_, err := r.DB.Exec(`
	  INSERT INTO users(id, email, name, password_hash, created_at)
	  VALUES (?,?,?,?,?)
	`, u.ID, u.Email, u.Name, u.Hash, u.CreatedAt)
	return err
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT id, email, name, password_hash, created_at
	  FROM users WHERE LOWER(email) = LOWER(?)
	`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT id, email, name, password_hash, created_at
	  FROM users WHERE id = ?
	`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
