package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"candidate-management-db/internal/filter"
	"candidate-management-db/internal/model"
	apperrors "candidate-management-db/pkg/errors"
)

// CandidateRepository is the Record Store for candidate submissions.
// DistinctValues/DistinctExperience/DistinctCTC satisfy
// filter.DistinctSource and always aggregate the whole collection.
type CandidateRepository interface {
	Create(ctx context.Context, c *model.Candidate) error
	Get(ctx context.Context, id int64) (*model.Candidate, error)
	Update(ctx context.Context, c *model.Candidate) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, clauses []filter.Clause, page filter.PageParams) ([]model.Candidate, int, error)
	Find(ctx context.Context, clauses []filter.Clause, limit int) ([]model.Candidate, error)
	CountBefore(ctx context.Context, uploaded time.Time) (int, error)
	AddComment(ctx context.Context, candidateID int64, text, addedBy string) (*model.Comment, error)
	GetComments(ctx context.Context, candidateID int64) ([]model.Comment, error)

	DistinctValues(ctx context.Context, field filter.Field) ([]string, error)
	DistinctExperience(ctx context.Context) ([]int, error)
	DistinctCTC(ctx context.Context) ([]float64, error)
}

type candidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

const candidateColumns = `id, date_of_upload, uploaded_by, first_name, middle_name, last_name,
	contact_no, alternate_contact_no, mail_id, alternate_mail_id, father_name, pan_no,
	date_of_birth, gender, current_state, current_city, preferred_state, preferred_city,
	current_employer, designation, department, ctc_min, ctc_max, experience_min, experience_max,
	file_key, file_name, file_original_name, file_mime_type, file_size, created_at, updated_at`

func (r *candidateRepository) Create(ctx context.Context, c *model.Candidate) error {
	if c.DateOfUpload.IsZero() {
		c.DateOfUpload = time.Now()
	}

	query := `INSERT INTO candidates (date_of_upload, uploaded_by, first_name, middle_name, last_name,
		contact_no, alternate_contact_no, mail_id, alternate_mail_id, father_name, pan_no,
		date_of_birth, gender, current_state, current_city, preferred_state, preferred_city,
		current_employer, designation, department, ctc_min, ctc_max, experience_min, experience_max,
		file_key, file_name, file_original_name, file_mime_type, file_size)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	att := c.Attachment
	result, err := r.db.ExecContext(ctx, query,
		c.DateOfUpload, c.UploadedBy, c.FirstName, c.MiddleName, c.LastName,
		c.ContactNo, c.AlternateContactNo, c.MailID, c.AlternateMailID, c.FatherName, c.PANNo,
		c.DateOfBirth, nullGender(c.Gender), c.CurrentState, c.CurrentCity, c.PreferredState, c.PreferredCity,
		c.CurrentEmployer, c.Designation, c.Department, c.MinCTC, c.MaxCTC, c.MinExperience, c.MaxExperience,
		attKey(att), attStr(att, func(a *model.Attachment) string { return a.FileName }),
		attStr(att, func(a *model.Attachment) string { return a.OriginalName }),
		attStr(att, func(a *model.Attachment) string { return a.MimeType }),
		attSize(att),
	)
	if err != nil {
		return err
	}

	c.ID, err = result.LastInsertId()
	return err
}

func (r *candidateRepository) Get(ctx context.Context, id int64) (*model.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE id = ?`, candidateColumns)

	c, err := scanCandidate(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *candidateRepository) Update(ctx context.Context, c *model.Candidate) error {
	query := `UPDATE candidates SET uploaded_by = ?, first_name = ?, middle_name = ?, last_name = ?,
		contact_no = ?, alternate_contact_no = ?, mail_id = ?, alternate_mail_id = ?, father_name = ?, pan_no = ?,
		date_of_birth = ?, gender = ?, current_state = ?, current_city = ?, preferred_state = ?, preferred_city = ?,
		current_employer = ?, designation = ?, department = ?, ctc_min = ?, ctc_max = ?, experience_min = ?, experience_max = ?,
		file_key = ?, file_name = ?, file_original_name = ?, file_mime_type = ?, file_size = ?, updated_at = NOW()
		WHERE id = ?`

	att := c.Attachment
	result, err := r.db.ExecContext(ctx, query,
		c.UploadedBy, c.FirstName, c.MiddleName, c.LastName,
		c.ContactNo, c.AlternateContactNo, c.MailID, c.AlternateMailID, c.FatherName, c.PANNo,
		c.DateOfBirth, nullGender(c.Gender), c.CurrentState, c.CurrentCity, c.PreferredState, c.PreferredCity,
		c.CurrentEmployer, c.Designation, c.Department, c.MinCTC, c.MaxCTC, c.MinExperience, c.MaxExperience,
		attKey(att), attStr(att, func(a *model.Attachment) string { return a.FileName }),
		attStr(att, func(a *model.Attachment) string { return a.OriginalName }),
		attStr(att, func(a *model.Attachment) string { return a.MimeType }),
		attSize(att),
		c.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *candidateRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *candidateRepository) List(ctx context.Context, clauses []filter.Clause, page filter.PageParams) ([]model.Candidate, int, error) {
	where, args := filter.Where(clauses)

	var total int
	countQuery := `SELECT COUNT(*) FROM candidates` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM candidates%s ORDER BY date_of_upload DESC, id DESC LIMIT ? OFFSET ?`,
		candidateColumns, where)
	listArgs := append(append([]interface{}{}, args...), page.Limit, page.Offset())

	candidates, err := r.queryCandidates(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	return candidates, total, nil
}

func (r *candidateRepository) Find(ctx context.Context, clauses []filter.Clause, limit int) ([]model.Candidate, error) {
	where, args := filter.Where(clauses)
	query := fmt.Sprintf(`SELECT %s FROM candidates%s ORDER BY date_of_upload DESC, id DESC`,
		candidateColumns, where)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return r.queryCandidates(ctx, query, args...)
}

func (r *candidateRepository) CountBefore(ctx context.Context, uploaded time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM candidates WHERE date_of_upload < ?`, uploaded).Scan(&count)
	return count, err
}

func (r *candidateRepository) AddComment(ctx context.Context, candidateID int64, text, addedBy string) (*model.Comment, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO candidate_comments (candidate_id, text, added_by) VALUES (?, ?, ?)`,
		candidateID, text, addedBy)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{ID: id, CandidateID: candidateID, Text: text, AddedBy: addedBy}
	err = r.db.QueryRowContext(ctx,
		`SELECT created_at FROM candidate_comments WHERE id = ?`, id).Scan(&comment.CreatedAt)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *candidateRepository) GetComments(ctx context.Context, candidateID int64) ([]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, candidate_id, text, added_by, created_at FROM candidate_comments
		 WHERE candidate_id = ? ORDER BY created_at, id`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.CandidateID, &c.Text, &c.AddedBy, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// distinctColumns whitelists the fields a distinct query may name; the
// field value is interpolated into SQL.
var distinctColumns = map[filter.Field]bool{
	filter.FieldGender:          true,
	filter.FieldCurrentState:    true,
	filter.FieldPreferredState:  true,
	filter.FieldDesignation:     true,
	filter.FieldDepartment:      true,
	filter.FieldCurrentEmployer: true,
}

func (r *candidateRepository) DistinctValues(ctx context.Context, field filter.Field) ([]string, error) {
	if !distinctColumns[field] {
		return nil, fmt.Errorf("field %q is not a distinct-value column", field)
	}

	query := fmt.Sprintf(`SELECT DISTINCT %s FROM candidates WHERE %s IS NOT NULL AND %s <> ''`,
		field, field, field)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (r *candidateRepository) DistinctExperience(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT experience_min FROM candidates WHERE experience_min IS NOT NULL
		 UNION SELECT DISTINCT experience_max FROM candidates WHERE experience_max IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (r *candidateRepository) DistinctCTC(ctx context.Context) ([]float64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT ctc_min FROM candidates WHERE ctc_min IS NOT NULL
		 UNION SELECT DISTINCT ctc_max FROM candidates WHERE ctc_max IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (r *candidateRepository) queryCandidates(ctx context.Context, query string, args ...interface{}) ([]model.Candidate, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []model.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *c)
	}
	return candidates, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCandidate(row rowScanner) (*model.Candidate, error) {
	var (
		c           model.Candidate
		gender      sql.NullString
		dateOfBirth sql.NullTime
		ctcMin      sql.NullFloat64
		ctcMax      sql.NullFloat64
		expMin      sql.NullInt64
		expMax      sql.NullInt64
		fileKey     sql.NullString
		fileName    sql.NullString
		origName    sql.NullString
		mimeType    sql.NullString
		fileSize    sql.NullInt64
	)

	err := row.Scan(
		&c.ID, &c.DateOfUpload, &c.UploadedBy, &c.FirstName, &c.MiddleName, &c.LastName,
		&c.ContactNo, &c.AlternateContactNo, &c.MailID, &c.AlternateMailID, &c.FatherName, &c.PANNo,
		&dateOfBirth, &gender, &c.CurrentState, &c.CurrentCity, &c.PreferredState, &c.PreferredCity,
		&c.CurrentEmployer, &c.Designation, &c.Department, &ctcMin, &ctcMax, &expMin, &expMax,
		&fileKey, &fileName, &origName, &mimeType, &fileSize, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if gender.Valid {
		c.Gender = model.Gender(gender.String)
	}
	if dateOfBirth.Valid {
		t := dateOfBirth.Time
		c.DateOfBirth = &t
	}
	if ctcMin.Valid {
		c.MinCTC = &ctcMin.Float64
	}
	if ctcMax.Valid {
		c.MaxCTC = &ctcMax.Float64
	}
	if expMin.Valid {
		v := int(expMin.Int64)
		c.MinExperience = &v
	}
	if expMax.Valid {
		v := int(expMax.Int64)
		c.MaxExperience = &v
	}
	if fileKey.Valid && fileKey.String != "" {
		c.Attachment = &model.Attachment{
			Key:          fileKey.String,
			FileName:     fileName.String,
			OriginalName: origName.String,
			MimeType:     mimeType.String,
			Size:         fileSize.Int64,
		}
	}
	return &c, nil
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func nullGender(g model.Gender) interface{} {
	if g == "" {
		return nil
	}
	return string(g)
}

func attKey(a *model.Attachment) interface{} {
	if a == nil {
		return nil
	}
	return a.Key
}

func attStr(a *model.Attachment, get func(*model.Attachment) string) interface{} {
	if a == nil {
		return nil
	}
	return get(a)
}

func attSize(a *model.Attachment) interface{} {
	if a == nil {
		return nil
	}
	return a.Size
}
