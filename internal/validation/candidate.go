package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"candidate-management-db/internal/model"
	apperrors "candidate-management-db/pkg/errors"
)

// CandidateValidator checks a raw form submission and converts it to
// the canonical record shape. Query-parameter handling stays
// permissive elsewhere; payload validation is strict.
type CandidateValidator struct {
	nameRegex  *regexp.Regexp
	phoneRegex *regexp.Regexp
	panRegex   *regexp.Regexp
	emailRegex *regexp.Regexp

	// isKnownState is optional; when set, state fields must name a
	// known state. Cities stay free text.
	isKnownState func(string) bool
}

func NewCandidateValidator(isKnownState func(string) bool) *CandidateValidator {
	return &CandidateValidator{
		nameRegex:    regexp.MustCompile(`^[A-Za-z\s]+$`),
		phoneRegex:   regexp.MustCompile(`^[6-9]\d{9}$`),
		panRegex:     regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`),
		emailRegex:   regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`),
		isKnownState: isKnownState,
	}
}

// Validate reports every failing field at once. All fields are
// optional; present values must be well-formed.
func (v *CandidateValidator) Validate(in model.CandidateInput) (*model.Candidate, apperrors.ValidationErrors) {
	var errs apperrors.ValidationErrors
	fail := func(field string, value interface{}, message string) {
		errs = append(errs, apperrors.ValidationError{Field: field, Value: value, Message: message})
	}

	c := &model.Candidate{
		UploadedBy:         strings.TrimSpace(in.UploadedBy),
		FirstName:          strings.TrimSpace(in.FirstName),
		MiddleName:         strings.TrimSpace(in.MiddleName),
		LastName:           strings.TrimSpace(in.LastName),
		ContactNo:          strings.TrimSpace(in.ContactNo),
		AlternateContactNo: strings.TrimSpace(in.AlternateContactNo),
		MailID:             strings.ToLower(strings.TrimSpace(in.MailID)),
		AlternateMailID:    strings.ToLower(strings.TrimSpace(in.AlternateMailID)),
		FatherName:         strings.TrimSpace(in.FatherName),
		PANNo:              strings.ToUpper(strings.TrimSpace(in.PANNo)),
		CurrentState:       strings.TrimSpace(in.CurrentState),
		CurrentCity:        strings.TrimSpace(in.CurrentCity),
		PreferredState:     strings.TrimSpace(in.PreferredState),
		PreferredCity:      strings.TrimSpace(in.PreferredCity),
		CurrentEmployer:    strings.TrimSpace(in.CurrentEmployer),
		Designation:        strings.TrimSpace(in.Designation),
		Department:         strings.TrimSpace(in.Department),
	}

	v.checkLength("uploadedBy", c.UploadedBy, 2, 100, fail)
	v.checkName("firstName", c.FirstName, 50, fail)
	v.checkName("middleName", c.MiddleName, 50, fail)
	v.checkName("lastName", c.LastName, 50, fail)
	v.checkName("fatherName", c.FatherName, 100, fail)

	if c.ContactNo != "" && !v.phoneRegex.MatchString(c.ContactNo) {
		fail("contactNo", c.ContactNo, "must be a valid 10-digit mobile number")
	}
	if c.AlternateContactNo != "" && !v.phoneRegex.MatchString(c.AlternateContactNo) {
		fail("alternateContactNo", c.AlternateContactNo, "must be a valid 10-digit mobile number")
	}
	if c.MailID != "" && !v.emailRegex.MatchString(c.MailID) {
		fail("mailId", c.MailID, "must be a valid email address")
	}
	if c.AlternateMailID != "" && !v.emailRegex.MatchString(c.AlternateMailID) {
		fail("alternateMailId", c.AlternateMailID, "must be a valid email address")
	}
	if c.PANNo != "" && !v.panRegex.MatchString(c.PANNo) {
		fail("panNo", c.PANNo, "must be in valid format (e.g., ABCDE1234F)")
	}

	if dob := strings.TrimSpace(in.DateOfBirth); dob != "" {
		t, ok := parseDate(dob)
		switch {
		case !ok:
			fail("dateOfBirth", dob, "must be a valid date")
		case t.After(time.Now()):
			fail("dateOfBirth", dob, "cannot be in the future")
		default:
			c.DateOfBirth = &t
		}
	}

	if g := strings.TrimSpace(in.Gender); g != "" {
		gender := model.Gender(g)
		if gender != model.GenderMale && gender != model.GenderFemale && gender != model.GenderOther {
			fail("gender", g, "must be one of Male, Female, Other")
		} else {
			c.Gender = gender
		}
	}

	v.checkState("currentState", c.CurrentState, fail)
	v.checkState("preferredState", c.PreferredState, fail)
	v.checkLength("currentCity", c.CurrentCity, 2, 100, fail)
	v.checkLength("preferredCity", c.PreferredCity, 2, 100, fail)
	v.checkLength("currentEmployer", c.CurrentEmployer, 2, 200, fail)
	v.checkLength("designation", c.Designation, 2, 100, fail)
	v.checkLength("department", c.Department, 2, 100, fail)

	minCTC := v.parseCTC("minCTC", in.MinCTC, fail)
	maxCTC := v.parseCTC("maxCTC", in.MaxCTC, fail)
	minExp := v.parseExperience("minExperience", in.MinExperience, fail)
	maxExp := v.parseExperience("maxExperience", in.MaxExperience, fail)
	c.MinCTC, c.MaxCTC = minCTC, maxCTC
	c.MinExperience, c.MaxExperience = minExp, maxExp

	// Legacy single-value shape widens into equal bounds unless the
	// range fields were supplied.
	if c.MinCTC == nil && c.MaxCTC == nil {
		if legacy := v.parseCTC("ctcInLakhs", in.CTCInLakhs, fail); legacy != nil {
			c.FromLegacy(legacy, nil)
		}
	}
	if c.MinExperience == nil && c.MaxExperience == nil {
		if legacy := v.parseExperience("totalExperience", in.TotalExperience, fail); legacy != nil {
			c.FromLegacy(nil, legacy)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return c, nil
}

func (v *CandidateValidator) checkName(field, value string, max int, fail func(string, interface{}, string)) {
	if value == "" {
		return
	}
	if len(value) < 2 || len(value) > max {
		fail(field, value, "must be between 2 and "+strconv.Itoa(max)+" characters")
		return
	}
	if !v.nameRegex.MatchString(value) {
		fail(field, value, "must contain only letters and spaces")
	}
}

func (v *CandidateValidator) checkLength(field, value string, min, max int, fail func(string, interface{}, string)) {
	if value == "" {
		return
	}
	if len(value) < min || len(value) > max {
		fail(field, value, "must be between "+strconv.Itoa(min)+" and "+strconv.Itoa(max)+" characters")
	}
}

func (v *CandidateValidator) checkState(field, value string, fail func(string, interface{}, string)) {
	if value == "" {
		return
	}
	v.checkLength(field, value, 2, 100, fail)
	if v.isKnownState != nil && !v.isKnownState(value) {
		fail(field, value, "is not a known state")
	}
}

func (v *CandidateValidator) parseCTC(field, value string, fail func(string, interface{}, string)) *float64 {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		fail(field, value, "must be a number")
		return nil
	}
	if n < 0 || n > 50 {
		fail(field, value, "must be between 0 and 50 lakhs")
		return nil
	}
	rounded := math.Round(n*100) / 100
	return &rounded
}

func (v *CandidateValidator) parseExperience(field, value string, fail func(string, interface{}, string)) *int {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		fail(field, value, "must be a whole number")
		return nil
	}
	if n < 0 || n > 50 {
		fail(field, value, "must be between 0 and 50 years")
		return nil
	}
	return &n
}

// ValidateComment enforces the comment payload rules.
func ValidateComment(in model.CommentInput) (text, addedBy string, errs apperrors.ValidationErrors) {
	text = strings.TrimSpace(in.Text)
	if text == "" {
		text = strings.TrimSpace(in.Comment)
	}
	if text == "" {
		errs = append(errs, apperrors.ValidationError{
			Field: "text", Value: in.Text, Message: "comment text is required",
		})
		return "", "", errs
	}
	if len(text) > 500 {
		errs = append(errs, apperrors.ValidationError{
			Field: "text", Value: text, Message: "comment cannot exceed 500 characters",
		})
		return "", "", errs
	}

	addedBy = strings.TrimSpace(in.AddedBy)
	if addedBy == "" {
		addedBy = "unknown"
	}
	return text, addedBy, nil
}

func parseDate(v string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	return time.Time{}, false
}
