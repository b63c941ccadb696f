package validation

import (
	"strings"
	"testing"

	"candidate-management-db/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func knownStates(name string) bool {
	return name == "Karnataka" || name == "Maharashtra"
}

func TestValidateEmptyInputPasses(t *testing.T) {
	v := NewCandidateValidator(knownStates)
	c, errs := v.Validate(model.CandidateInput{})
	require.Empty(t, errs)
	require.NotNil(t, c)
	assert.Nil(t, c.MinCTC)
	assert.Nil(t, c.DateOfBirth)
}

func TestValidateNormalizesFields(t *testing.T) {
	v := NewCandidateValidator(knownStates)
	c, errs := v.Validate(model.CandidateInput{
		FirstName: "  Asha  ",
		MailID:    " Asha.Verma@Example.COM ",
		PANNo:     "abcde1234f",
	})
	require.Empty(t, errs)
	assert.Equal(t, "Asha", c.FirstName)
	assert.Equal(t, "asha.verma@example.com", c.MailID)
	assert.Equal(t, "ABCDE1234F", c.PANNo)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	v := NewCandidateValidator(knownStates)
	_, errs := v.Validate(model.CandidateInput{
		FirstName:    "A1",
		ContactNo:    "12345",
		MailID:       "not-an-email",
		PANNo:        "WRONG",
		Gender:       "Unknown",
		CurrentState: "Atlantis",
		MinCTC:       "99",
	})
	require.NotEmpty(t, errs)

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	for _, want := range []string{"firstName", "contactNo", "mailId", "panNo", "gender", "currentState", "minCTC"} {
		assert.True(t, fields[want], "expected error for %s", want)
	}
}

func TestValidatePhoneRules(t *testing.T) {
	v := NewCandidateValidator(nil)

	_, errs := v.Validate(model.CandidateInput{ContactNo: "9876543210"})
	assert.Empty(t, errs)

	_, errs = v.Validate(model.CandidateInput{ContactNo: "1876543210"})
	assert.NotEmpty(t, errs)

	_, errs = v.Validate(model.CandidateInput{ContactNo: "98765"})
	assert.NotEmpty(t, errs)
}

func TestValidateFutureDOBRejected(t *testing.T) {
	v := NewCandidateValidator(nil)
	_, errs := v.Validate(model.CandidateInput{DateOfBirth: "2090-01-01"})
	require.Len(t, errs, 1)
	assert.Equal(t, "dateOfBirth", errs[0].Field)
}

func TestValidateCTCRange(t *testing.T) {
	v := NewCandidateValidator(nil)

	c, errs := v.Validate(model.CandidateInput{MinCTC: "4.567", MaxCTC: "12"})
	require.Empty(t, errs)
	require.NotNil(t, c.MinCTC)
	assert.Equal(t, 4.57, *c.MinCTC) // rounded to 2 decimals
	assert.Equal(t, 12.0, *c.MaxCTC)

	_, errs = v.Validate(model.CandidateInput{MinCTC: "-1"})
	assert.NotEmpty(t, errs)

	_, errs = v.Validate(model.CandidateInput{MaxCTC: "51"})
	assert.NotEmpty(t, errs)
}

func TestValidateLegacyWidening(t *testing.T) {
	v := NewCandidateValidator(nil)

	c, errs := v.Validate(model.CandidateInput{CTCInLakhs: "6", TotalExperience: "4"})
	require.Empty(t, errs)
	require.NotNil(t, c.MinCTC)
	assert.Equal(t, 6.0, *c.MinCTC)
	assert.Equal(t, 6.0, *c.MaxCTC)
	assert.Equal(t, 4, *c.MinExperience)
	assert.Equal(t, 4, *c.MaxExperience)
}

func TestValidateRangeFieldsWinOverLegacy(t *testing.T) {
	v := NewCandidateValidator(nil)

	c, errs := v.Validate(model.CandidateInput{MinCTC: "3", MaxCTC: "8", CTCInLakhs: "6"})
	require.Empty(t, errs)
	assert.Equal(t, 3.0, *c.MinCTC)
	assert.Equal(t, 8.0, *c.MaxCTC)
}

func TestValidateCommentRequiresText(t *testing.T) {
	_, _, errs := ValidateComment(model.CommentInput{})
	assert.NotEmpty(t, errs)

	_, _, errs = ValidateComment(model.CommentInput{Text: "   "})
	assert.NotEmpty(t, errs)
}

func TestValidateCommentAliasAndDefaults(t *testing.T) {
	text, addedBy, errs := ValidateComment(model.CommentInput{Comment: "looks good"})
	require.Empty(t, errs)
	assert.Equal(t, "looks good", text)
	assert.Equal(t, "unknown", addedBy)

	text, addedBy, errs = ValidateComment(model.CommentInput{Text: "primary", Comment: "alias", AddedBy: "hr"})
	require.Empty(t, errs)
	assert.Equal(t, "primary", text)
	assert.Equal(t, "hr", addedBy)
}

func TestValidateCommentLengthCap(t *testing.T) {
	_, _, errs := ValidateComment(model.CommentInput{Text: strings.Repeat("x", 501)})
	assert.NotEmpty(t, errs)

	_, _, errs = ValidateComment(model.CommentInput{Text: strings.Repeat("x", 500)})
	assert.Empty(t, errs)
}
