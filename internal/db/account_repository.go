package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"

	"candidate-management-db/internal/model"
	apperrors "candidate-management-db/pkg/errors"
)

type AccountRepository interface {
	Create(ctx context.Context, a *model.Account) error
	GetByID(ctx context.Context, id int64) (*model.Account, error)
	GetByIDAndRole(ctx context.Context, id int64, role model.Role) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	ListByRole(ctx context.Context, role model.Role) ([]model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
	CountByRole(ctx context.Context, role model.Role) (int, error)
	Update(ctx context.Context, a *model.Account) error
	Delete(ctx context.Context, id int64) error
	SetResetToken(ctx context.Context, id int64, tokenHash string, expires time.Time) error
	GetByResetTokenHash(ctx context.Context, tokenHash string) (*model.Account, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `id, name, email, password_hash, role, password_reset_token,
	password_reset_expires, password_changed_at, created_at, updated_at`

func (r *accountRepository) Create(ctx context.Context, a *model.Account) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (name, email, password_hash, role) VALUES (?, ?, ?, ?)`,
		a.Name, a.Email, a.PasswordHash, a.Role)
	if err != nil {
		return translateDuplicate(err, apperrors.ErrDuplicateEmail)
	}
	a.ID, err = result.LastInsertId()
	return err
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
}

func (r *accountRepository) GetByIDAndRole(ctx context.Context, id int64, role model.Role) (*model.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ? AND role = ?`, id, role)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
}

func (r *accountRepository) ListByRole(ctx context.Context, role model.Role) ([]model.Account, error) {
	return r.list(ctx, `SELECT `+accountColumns+` FROM accounts WHERE role = ? ORDER BY created_at DESC`, role)
}

func (r *accountRepository) List(ctx context.Context) ([]model.Account, error) {
	return r.list(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC`)
}

func (r *accountRepository) CountByRole(ctx context.Context, role model.Role) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE role = ?`, role).Scan(&count)
	return count, err
}

func (r *accountRepository) Update(ctx context.Context, a *model.Account) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET name = ?, email = ?, password_hash = ?, role = ?, updated_at = NOW() WHERE id = ?`,
		a.Name, a.Email, a.PasswordHash, a.Role, a.ID)
	if err != nil {
		return translateDuplicate(err, apperrors.ErrDuplicateEmail)
	}
	return requireRow(result)
}

func (r *accountRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *accountRepository) SetResetToken(ctx context.Context, id int64, tokenHash string, expires time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET password_reset_token = ?, password_reset_expires = ?, updated_at = NOW() WHERE id = ?`,
		tokenHash, expires, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *accountRepository) GetByResetTokenHash(ctx context.Context, tokenHash string) (*model.Account, error) {
	return r.getOne(ctx,
		`SELECT `+accountColumns+` FROM accounts
		 WHERE password_reset_token = ? AND password_reset_expires > NOW()`, tokenHash)
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = ?, password_reset_token = NULL,
		 password_reset_expires = NULL, password_changed_at = NOW(), updated_at = NOW() WHERE id = ?`,
		passwordHash, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *accountRepository) getOne(ctx context.Context, query string, args ...interface{}) (*model.Account, error) {
	a, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *accountRepository) list(ctx context.Context, query string, args ...interface{}) ([]model.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

func scanAccount(row rowScanner) (*model.Account, error) {
	var (
		a       model.Account
		token   sql.NullString
		expires sql.NullTime
	)
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role,
		&token, &expires, &a.PasswordChangedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if token.Valid {
		a.PasswordResetToken = &token.String
	}
	if expires.Valid {
		t := expires.Time
		a.PasswordResetExpires = &t
	}
	return &a, nil
}

// translateDuplicate maps MySQL duplicate-key failures (error 1062)
// onto the domain sentinel so handlers can answer 409.
func translateDuplicate(err error, sentinel error) error {
	if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == 1062 {
		return sentinel
	}
	return err
}
