package model

// CandidateInput carries the raw form fields of a create/update
// request. Everything arrives as text and is parsed during validation.
type CandidateInput struct {
	UploadedBy         string `form:"uploadedBy" json:"uploadedBy"`
	FirstName          string `form:"firstName" json:"firstName"`
	MiddleName         string `form:"middleName" json:"middleName"`
	LastName           string `form:"lastName" json:"lastName"`
	ContactNo          string `form:"contactNo" json:"contactNo"`
	AlternateContactNo string `form:"alternateContactNo" json:"alternateContactNo"`
	MailID             string `form:"mailId" json:"mailId"`
	AlternateMailID    string `form:"alternateMailId" json:"alternateMailId"`
	FatherName         string `form:"fatherName" json:"fatherName"`
	PANNo              string `form:"panNo" json:"panNo"`
	DateOfBirth        string `form:"dateOfBirth" json:"dateOfBirth"`
	Gender             string `form:"gender" json:"gender"`
	CurrentState       string `form:"currentState" json:"currentState"`
	CurrentCity        string `form:"currentCity" json:"currentCity"`
	PreferredState     string `form:"preferredState" json:"preferredState"`
	PreferredCity      string `form:"preferredCity" json:"preferredCity"`
	CurrentEmployer    string `form:"currentEmployer" json:"currentEmployer"`
	Designation        string `form:"designation" json:"designation"`
	Department         string `form:"department" json:"department"`
	MinCTC             string `form:"minCTC" json:"minCTC"`
	MaxCTC             string `form:"maxCTC" json:"maxCTC"`
	MinExperience      string `form:"minExperience" json:"minExperience"`
	MaxExperience      string `form:"maxExperience" json:"maxExperience"`

	// Legacy single-value shape, still accepted on input.
	CTCInLakhs      string `form:"ctcInLakhs" json:"ctcInLakhs"`
	TotalExperience string `form:"totalExperience" json:"totalExperience"`
}

type CommentInput struct {
	Text    string `json:"text"`
	Comment string `json:"comment"` // accepted as an alias of Text
	AddedBy string `json:"addedBy"`
}

type AccountInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type CompanyInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type CityInput struct {
	Name  string `json:"name"`
	State string `json:"stateId"` // the client sends the state name in stateId
}

// CleanupJob asks the cleanup worker to release a stored attachment.
type CleanupJob struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}
