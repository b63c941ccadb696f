package model

import "time"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Candidate is one application/profile submission. Compensation and
// experience are stored as ranges; legacy single-value submissions are
// widened into equal bounds (see FromLegacy).
type Candidate struct {
	ID                 int64       `json:"id" db:"id"`
	DateOfUpload       time.Time   `json:"dateOfUpload" db:"date_of_upload"`
	UploadedBy         string      `json:"uploadedBy" db:"uploaded_by"`
	FirstName          string      `json:"firstName" db:"first_name"`
	MiddleName         string      `json:"middleName" db:"middle_name"`
	LastName           string      `json:"lastName" db:"last_name"`
	ContactNo          string      `json:"contactNo" db:"contact_no"`
	AlternateContactNo string      `json:"alternateContactNo" db:"alternate_contact_no"`
	MailID             string      `json:"mailId" db:"mail_id"`
	AlternateMailID    string      `json:"alternateMailId" db:"alternate_mail_id"`
	FatherName         string      `json:"fatherName" db:"father_name"`
	PANNo              string      `json:"panNo" db:"pan_no"`
	DateOfBirth        *time.Time  `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Gender             Gender      `json:"gender" db:"gender"`
	CurrentState       string      `json:"currentState" db:"current_state"`
	CurrentCity        string      `json:"currentCity" db:"current_city"`
	PreferredState     string      `json:"preferredState" db:"preferred_state"`
	PreferredCity      string      `json:"preferredCity" db:"preferred_city"`
	CurrentEmployer    string      `json:"currentEmployer" db:"current_employer"`
	Designation        string      `json:"designation" db:"designation"`
	Department         string      `json:"department" db:"department"`
	MinCTC             *float64    `json:"minCTC,omitempty" db:"ctc_min"`
	MaxCTC             *float64    `json:"maxCTC,omitempty" db:"ctc_max"`
	MinExperience      *int        `json:"minExperience,omitempty" db:"experience_min"`
	MaxExperience      *int        `json:"maxExperience,omitempty" db:"experience_max"`
	Attachment         *Attachment `json:"resume,omitempty"`
	CreatedAt          time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time   `json:"updatedAt" db:"updated_at"`
}

// Attachment is the stored résumé reference. Key is the object key in
// the attachment store; the record exclusively owns the object.
type Attachment struct {
	Key          string `json:"-" db:"file_key"`
	FileName     string `json:"filename" db:"file_name"`
	OriginalName string `json:"originalName" db:"file_original_name"`
	MimeType     string `json:"mimetype" db:"file_mime_type"`
	Size         int64  `json:"size" db:"file_size"`
}

type Comment struct {
	ID          int64     `json:"id" db:"id"`
	CandidateID int64     `json:"-" db:"candidate_id"`
	Text        string    `json:"text" db:"text"`
	AddedBy     string    `json:"addedBy" db:"added_by"`
	CreatedAt   time.Time `json:"date" db:"created_at"`
}

// FromLegacy widens the single-value compensation/experience shape of
// older submissions into the canonical range form.
func (c *Candidate) FromLegacy(ctcInLakhs *float64, totalExperience *int) {
	if ctcInLakhs != nil {
		v := *ctcInLakhs
		c.MinCTC = &v
		w := *ctcInLakhs
		c.MaxCTC = &w
	}
	if totalExperience != nil {
		v := *totalExperience
		c.MinExperience = &v
		w := *totalExperience
		c.MaxExperience = &w
	}
}

// Age in whole years derived from the date of birth, using the
// 365.25-day year the filters use. Returns false when no DOB is set.
func (c *Candidate) Age(now time.Time) (float64, bool) {
	if c.DateOfBirth == nil {
		return 0, false
	}
	return now.Sub(*c.DateOfBirth).Hours() / (365.25 * 24), true
}
