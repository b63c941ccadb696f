package filter

import (
	"fmt"
	"strings"
	"time"

	"candidate-management-db/internal/model"
)

// Field names a filterable column of the candidate collection.
type Field string

const (
	FieldGender          Field = "gender"
	FieldCurrentState    Field = "current_state"
	FieldPreferredState  Field = "preferred_state"
	FieldDesignation     Field = "designation"
	FieldDepartment      Field = "department"
	FieldCurrentEmployer Field = "current_employer"
	FieldUploadedBy      Field = "uploaded_by"
	FieldDateOfUpload    Field = "date_of_upload"
	FieldMinExperience   Field = "experience_min"
	FieldMaxExperience   Field = "experience_max"
	FieldMinCTC          Field = "ctc_min"
	FieldMaxCTC          Field = "ctc_max"
)

type Op int

const (
	// OpEquals matches the field exactly.
	OpEquals Op = iota
	// OpContains matches a case-insensitive substring of the field.
	OpContains
	// OpNumGTE / OpNumLTE bound a numeric field.
	OpNumGTE
	OpNumLTE
	// OpTimeGTE / OpTimeLTE bound the upload date inclusively.
	OpTimeGTE
	OpTimeLTE
	// OpAgeGTE / OpAgeLTE bound the age derived from date of birth.
	OpAgeGTE
	OpAgeLTE
	// OpSearch matches a case-insensitive substring across the name,
	// email, phone, father name and PAN fields.
	OpSearch
)

// Clause is one field condition. A predicate is a conjunction of
// clauses; an empty clause list matches everything.
type Clause struct {
	Op    Op
	Field Field
	Str   string
	Num   float64
	Time  time.Time
}

// searchColumns are OR'd together by OpSearch, in the order the
// original UI presents them.
var searchColumns = []Field{
	"first_name", "middle_name", "last_name",
	"mail_id", "alternate_mail_id",
	"contact_no", "alternate_contact_no",
	"father_name", "pan_no",
}

// ageExpr derives age in years inside MySQL, matching Candidate.Age.
const ageExpr = "(DATEDIFF(CURDATE(), date_of_birth) / 365.25)"

// SQL renders the clause as a WHERE fragment with its arguments.
func (c Clause) SQL() (string, []interface{}) {
	switch c.Op {
	case OpEquals:
		return fmt.Sprintf("%s = ?", c.Field), []interface{}{c.Str}
	case OpContains:
		return fmt.Sprintf("LOWER(%s) LIKE ?", c.Field), []interface{}{contains(c.Str)}
	case OpNumGTE:
		return fmt.Sprintf("%s >= ?", c.Field), []interface{}{c.Num}
	case OpNumLTE:
		return fmt.Sprintf("%s <= ?", c.Field), []interface{}{c.Num}
	case OpTimeGTE:
		return "date_of_upload >= ?", []interface{}{c.Time}
	case OpTimeLTE:
		return "date_of_upload <= ?", []interface{}{c.Time}
	case OpAgeGTE:
		return ageExpr + " >= ?", []interface{}{c.Num}
	case OpAgeLTE:
		return ageExpr + " <= ?", []interface{}{c.Num}
	case OpSearch:
		parts := make([]string, 0, len(searchColumns))
		args := make([]interface{}, 0, len(searchColumns))
		for _, col := range searchColumns {
			parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE ?", col))
			args = append(args, contains(c.Str))
		}
		return "(" + strings.Join(parts, " OR ") + ")", args
	}
	return "1 = 1", nil
}

// Where joins the clauses into a single WHERE fragment. An empty list
// yields the empty string.
func Where(clauses []Clause) (string, []interface{}) {
	if len(clauses) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(clauses))
	var args []interface{}
	for _, c := range clauses {
		frag, a := c.SQL()
		parts = append(parts, frag)
		args = append(args, a...)
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

// Match evaluates the clause against a record in memory, with the same
// semantics the SQL rendering has: records missing the referenced
// value never match a bound.
func (c Clause) Match(rec model.Candidate, now time.Time) bool {
	switch c.Op {
	case OpEquals:
		return stringField(rec, c.Field) == c.Str
	case OpContains:
		return strings.Contains(strings.ToLower(stringField(rec, c.Field)), strings.ToLower(c.Str))
	case OpNumGTE:
		v, ok := numField(rec, c.Field)
		return ok && v >= c.Num
	case OpNumLTE:
		v, ok := numField(rec, c.Field)
		return ok && v <= c.Num
	case OpTimeGTE:
		return !rec.DateOfUpload.Before(c.Time)
	case OpTimeLTE:
		return !rec.DateOfUpload.After(c.Time)
	case OpAgeGTE:
		age, ok := rec.Age(now)
		return ok && age >= c.Num
	case OpAgeLTE:
		age, ok := rec.Age(now)
		return ok && age <= c.Num
	case OpSearch:
		needle := strings.ToLower(c.Str)
		for _, col := range searchColumns {
			if strings.Contains(strings.ToLower(stringField(rec, col)), needle) {
				return true
			}
		}
		return false
	}
	return true
}

// MatchAll applies the conjunction. An empty clause list matches
// every record.
func MatchAll(clauses []Clause, rec model.Candidate, now time.Time) bool {
	for _, c := range clauses {
		if !c.Match(rec, now) {
			return false
		}
	}
	return true
}

func contains(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

func stringField(rec model.Candidate, f Field) string {
	switch f {
	case "first_name":
		return rec.FirstName
	case "middle_name":
		return rec.MiddleName
	case "last_name":
		return rec.LastName
	case "mail_id":
		return rec.MailID
	case "alternate_mail_id":
		return rec.AlternateMailID
	case "contact_no":
		return rec.ContactNo
	case "alternate_contact_no":
		return rec.AlternateContactNo
	case "father_name":
		return rec.FatherName
	case "pan_no":
		return rec.PANNo
	case FieldGender:
		return string(rec.Gender)
	case FieldCurrentState:
		return rec.CurrentState
	case FieldPreferredState:
		return rec.PreferredState
	case FieldDesignation:
		return rec.Designation
	case FieldDepartment:
		return rec.Department
	case FieldCurrentEmployer:
		return rec.CurrentEmployer
	case FieldUploadedBy:
		return rec.UploadedBy
	}
	return ""
}

func numField(rec model.Candidate, f Field) (float64, bool) {
	switch f {
	case FieldMinExperience:
		if rec.MinExperience != nil {
			return float64(*rec.MinExperience), true
		}
	case FieldMaxExperience:
		if rec.MaxExperience != nil {
			return float64(*rec.MaxExperience), true
		}
	case FieldMinCTC:
		if rec.MinCTC != nil {
			return *rec.MinCTC, true
		}
	case FieldMaxCTC:
		if rec.MaxCTC != nil {
			return *rec.MaxCTC, true
		}
	}
	return 0, false
}
