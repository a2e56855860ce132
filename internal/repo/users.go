package repo

import (
	"context"
	"database/sql"
	"errors"
)

var ErrNotFound = errors.New("not found")

type UserRepository interface {
	CreateUser(ctx context.Context, login, email, passwordHash string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, passwordHash string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, passwordHash).Scan(&id)
	return id, err
}

// GetByLogin returns the user's id and password hash, or ErrNotFound.
func (r *PostgresUserRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"
	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", ErrNotFound
	}
	if err != nil {
		return 0, "", err
	}
	return id, hash, nil
}
