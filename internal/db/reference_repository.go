package db

import (
	"context"
	"database/sql"
	"strings"

	"candidate-management-db/internal/model"
	apperrors "candidate-management-db/pkg/errors"
)

// ReferenceRepository manages the auxiliary reference data: companies
// (unique uppercase names) and cities (unique per state).
type ReferenceRepository interface {
	CreateCompany(ctx context.Context, c *model.Company) error
	ListCompanies(ctx context.Context) ([]model.Company, error)
	GetCompany(ctx context.Context, id int64) (*model.Company, error)
	UpdateCompany(ctx context.Context, c *model.Company) error
	DeleteCompany(ctx context.Context, id int64) error

	CreateCity(ctx context.Context, c *model.City) error
	ListCities(ctx context.Context) ([]model.City, error)
	ListCitiesByState(ctx context.Context, state string) ([]model.City, error)
	GetCity(ctx context.Context, id int64) (*model.City, error)
	UpdateCity(ctx context.Context, c *model.City) error
	DeleteCity(ctx context.Context, id int64) error
}

type referenceRepository struct {
	db *sql.DB
}

func NewReferenceRepository(db *sql.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) CreateCompany(ctx context.Context, c *model.Company) error {
	c.Name = strings.ToUpper(c.Name)
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO companies (name, description) VALUES (?, ?)`, c.Name, c.Description)
	if err != nil {
		return translateDuplicate(err, apperrors.ErrDuplicateCompany)
	}
	c.ID, err = result.LastInsertId()
	return err
}

func (r *referenceRepository) ListCompanies(ctx context.Context) ([]model.Company, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM companies ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []model.Company
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *referenceRepository) GetCompany(ctx context.Context, id int64) (*model.Company, error) {
	var c model.Company
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, created_at, updated_at FROM companies WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *referenceRepository) UpdateCompany(ctx context.Context, c *model.Company) error {
	c.Name = strings.ToUpper(c.Name)
	result, err := r.db.ExecContext(ctx,
		`UPDATE companies SET name = ?, description = ?, updated_at = NOW() WHERE id = ?`,
		c.Name, c.Description, c.ID)
	if err != nil {
		return translateDuplicate(err, apperrors.ErrDuplicateCompany)
	}
	return requireRow(result)
}

func (r *referenceRepository) DeleteCompany(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *referenceRepository) CreateCity(ctx context.Context, c *model.City) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO cities (name, state) VALUES (?, ?)`, c.Name, c.State)
	if err != nil {
		return translateDuplicate(err, apperrors.ErrDuplicateCity)
	}
	c.ID, err = result.LastInsertId()
	return err
}

func (r *referenceRepository) ListCities(ctx context.Context) ([]model.City, error) {
	return r.listCities(ctx, `SELECT id, name, state, created_at, updated_at FROM cities ORDER BY name`)
}

func (r *referenceRepository) ListCitiesByState(ctx context.Context, state string) ([]model.City, error) {
	return r.listCities(ctx,
		`SELECT id, name, state, created_at, updated_at FROM cities WHERE state = ? ORDER BY name`, state)
}

func (r *referenceRepository) GetCity(ctx context.Context, id int64) (*model.City, error) {
	var c model.City
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, state, created_at, updated_at FROM cities WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.State, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *referenceRepository) UpdateCity(ctx context.Context, c *model.City) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE cities SET name = ?, state = ?, updated_at = NOW() WHERE id = ?`,
		c.Name, c.State, c.ID)
	if err != nil {
		return translateDuplicate(err, apperrors.ErrDuplicateCity)
	}
	return requireRow(result)
}

func (r *referenceRepository) DeleteCity(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cities WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *referenceRepository) listCities(ctx context.Context, query string, args ...interface{}) ([]model.City, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []model.City
	for rows.Next() {
		var c model.City
		if err := rows.Scan(&c.ID, &c.Name, &c.State, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}
