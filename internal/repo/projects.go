package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"Retrofit/internal/calc/options"
)

// Project is a saved building with the catalog it selects from.
type Project struct {
	ID        int               `json:"id"`
	UserID    int               `json:"user_id"`
	Name      string            `json:"name"`
	Variables options.Variables `json:"variables"`
	Options   options.Catalog   `json:"options"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type ProjectRepository interface {
	CreateProject(ctx context.Context, p Project) (Project, error)
	GetProject(ctx context.Context, userID, id int) (Project, error)
	ListProjects(ctx context.Context, userID int) ([]Project, error)
	UpdateProject(ctx context.Context, p Project) (Project, error)
	DeleteProject(ctx context.Context, userID, id int) error
}

type PostgresProjectRepository struct {
	db *sql.DB
}

func NewPostgresProjectDB(db *sql.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

func encode(p Project) ([]byte, []byte, error) {
	vars, err := json.Marshal(p.Variables)
	if err != nil {
		return nil, nil, fmt.Errorf("encode variables: %w", err)
	}
	catalog, err := json.Marshal(p.Options)
	if err != nil {
		return nil, nil, fmt.Errorf("encode options: %w", err)
	}
	return vars, catalog, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (Project, error) {
	var (
		p       Project
		vars    []byte
		catalog []byte
	)
	if err := s.Scan(&p.ID, &p.UserID, &p.Name, &vars, &catalog, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	if err := json.Unmarshal(vars, &p.Variables); err != nil {
		return Project{}, fmt.Errorf("project %d variables: %w", p.ID, err)
	}
	if err := json.Unmarshal(catalog, &p.Options); err != nil {
		return Project{}, fmt.Errorf("project %d options: %w", p.ID, err)
	}
	return p, nil
}

const projectColumns = "id, user_id, name, variables, options, created_at, updated_at"

func (r *PostgresProjectRepository) CreateProject(ctx context.Context, p Project) (Project, error) {
	vars, catalog, err := encode(p)
	if err != nil {
		return Project{}, err
	}
	query := "INSERT INTO projects (user_id, name, variables, options) VALUES ($1, $2, $3, $4) RETURNING " + projectColumns
	return scanProject(r.db.QueryRowContext(ctx, query, p.UserID, p.Name, vars, catalog))
}

func (r *PostgresProjectRepository) GetProject(ctx context.Context, userID, id int) (Project, error) {
	query := "SELECT " + projectColumns + " FROM projects WHERE id=$1 AND user_id=$2"
	return scanProject(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *PostgresProjectRepository) ListProjects(ctx context.Context, userID int) ([]Project, error) {
	query := "SELECT " + projectColumns + " FROM projects WHERE user_id=$1 ORDER BY updated_at DESC, id DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresProjectRepository) UpdateProject(ctx context.Context, p Project) (Project, error) {
	vars, catalog, err := encode(p)
	if err != nil {
		return Project{}, err
	}
	query := "UPDATE projects SET name=$1, variables=$2, options=$3, updated_at=now() WHERE id=$4 AND user_id=$5 RETURNING " + projectColumns
	return scanProject(r.db.QueryRowContext(ctx, query, p.Name, vars, catalog, p.ID, p.UserID))
}

func (r *PostgresProjectRepository) DeleteProject(ctx context.Context, userID, id int) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id=$1 AND user_id=$2", id, userID)
	if err != nil {
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
