package filter

import (
	"testing"
	"time"

	"candidate-management-db/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }

func candidate(mod func(*model.Candidate)) model.Candidate {
	c := model.Candidate{
		ID:           1,
		DateOfUpload: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		FirstName:    "Asha",
		LastName:     "Verma",
		MailID:       "asha.verma@example.com",
		ContactNo:    "9876543210",
		Gender:       model.GenderFemale,
		CurrentState: "Karnataka",
		Designation:  "Engineer",
	}
	if mod != nil {
		mod(&c)
	}
	return c
}

func TestBuildSkipsSentinels(t *testing.T) {
	params := map[string]string{
		"gender":         SentinelAllGenders,
		"experience":     SentinelAllExperience,
		"currentState":   SentinelCurrentState,
		"preferredState": SentinelPreferredState,
		"designation":    SentinelDesignation,
		"department":     SentinelDepartment,
		"minCTC":         SentinelNoMin,
		"maxCTC":         SentinelNoMax,
	}
	assert.Empty(t, Build(params))
}

func TestBuildNeverFails(t *testing.T) {
	params := map[string]string{
		"minAge":     "not-a-number",
		"ctcInLakhs": "abc-def",
		"startDate":  "yesterday",
		"gender":     "Female",
	}
	clauses := Build(params)
	require.Len(t, clauses, 1)
	assert.Equal(t, OpEquals, clauses[0].Op)
	assert.Equal(t, FieldGender, clauses[0].Field)
}

func TestBuildEmptyMatchesEverything(t *testing.T) {
	clauses := Build(nil)
	assert.Empty(t, clauses)
	assert.True(t, MatchAll(clauses, candidate(nil), time.Now()))
}

func TestExperienceRangeForms(t *testing.T) {
	now := time.Now()
	rec5 := candidate(func(c *model.Candidate) {
		c.MinExperience = ptrI(5)
		c.MaxExperience = ptrI(5)
	})
	rec8 := candidate(func(c *model.Candidate) {
		c.MinExperience = ptrI(8)
		c.MaxExperience = ptrI(8)
	})
	rec12 := candidate(func(c *model.Candidate) {
		c.MinExperience = ptrI(12)
		c.MaxExperience = ptrI(12)
	})
	noExp := candidate(nil)

	tests := []struct {
		name  string
		value string
		want  map[*model.Candidate]bool
	}{
		{"between", "5-10", map[*model.Candidate]bool{&rec5: true, &rec8: true, &rec12: false, &noExp: false}},
		{"at least", "10+", map[*model.Candidate]bool{&rec5: false, &rec8: false, &rec12: true, &noExp: false}},
		{"exact", "8", map[*model.Candidate]bool{&rec5: false, &rec8: true, &rec12: false, &noExp: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clauses := Build(map[string]string{"experience": tt.value})
			require.NotEmpty(t, clauses)
			for rec, want := range tt.want {
				assert.Equal(t, want, MatchAll(clauses, *rec, now), "value %q", tt.value)
			}
		})
	}
}

func TestExactValueMatchesContainingRange(t *testing.T) {
	// A stored range of 4-12 lakhs contains the exact filter value 8.
	rec := candidate(func(c *model.Candidate) {
		c.MinCTC = ptrF(4)
		c.MaxCTC = ptrF(12)
	})
	clauses := Build(map[string]string{"ctcInLakhs": "8"})
	assert.True(t, MatchAll(clauses, rec, time.Now()))

	outside := candidate(func(c *model.Candidate) {
		c.MinCTC = ptrF(10)
		c.MaxCTC = ptrF(12)
	})
	assert.False(t, MatchAll(clauses, outside, time.Now()))
}

func TestInvertedRangeMatchesNothing(t *testing.T) {
	clauses := Build(map[string]string{"experience": "10-5"})
	rec := candidate(func(c *model.Candidate) {
		c.MinExperience = ptrI(7)
		c.MaxExperience = ptrI(7)
	})
	assert.False(t, MatchAll(clauses, rec, time.Now()))
}

func TestStateFilterScenario(t *testing.T) {
	now := time.Now()
	karnataka := candidate(nil)
	maharashtra := candidate(func(c *model.Candidate) {
		c.ID = 2
		c.CurrentState = "Maharashtra"
	})

	clauses := Build(map[string]string{"currentState": "Karnataka"})
	assert.True(t, MatchAll(clauses, karnataka, now))
	assert.False(t, MatchAll(clauses, maharashtra, now))
}

func TestSearchSpansIdentityFields(t *testing.T) {
	now := time.Now()
	rec := candidate(nil)

	tests := []struct {
		needle string
		want   bool
	}{
		{"asha", true},
		{"VERMA", true},
		{"example.com", true},
		{"98765", true},
		{"nobody", false},
	}
	for _, tt := range tests {
		clauses := Build(map[string]string{"search": tt.needle})
		assert.Equal(t, tt.want, MatchAll(clauses, rec, now), "search %q", tt.needle)
	}
}

func TestSearchDoesNotSpanEmployer(t *testing.T) {
	rec := candidate(func(c *model.Candidate) { c.CurrentEmployer = "Acme Corp" })
	clauses := Build(map[string]string{"search": "Acme"})
	assert.False(t, MatchAll(clauses, rec, time.Now()))
}

func TestUploadDateBounds(t *testing.T) {
	now := time.Now()
	rec := candidate(nil) // uploaded 2025-06-01

	in := Build(map[string]string{"startDate": "2025-05-01", "endDate": "2025-07-01"})
	assert.True(t, MatchAll(in, rec, now))

	before := Build(map[string]string{"endDate": "2025-05-01"})
	assert.False(t, MatchAll(before, rec, now))

	after := Build(map[string]string{"startDate": "2025-07-01"})
	assert.False(t, MatchAll(after, rec, now))
}

func TestAgeBounds(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	dob := time.Date(1995, 6, 1, 0, 0, 0, 0, time.UTC) // 30 years old
	rec := candidate(func(c *model.Candidate) { c.DateOfBirth = &dob })
	noDOB := candidate(nil)

	clauses := Build(map[string]string{"minAge": "25", "maxAge": "35"})
	assert.True(t, MatchAll(clauses, rec, now))
	assert.False(t, MatchAll(clauses, noDOB, now))

	tooYoung := Build(map[string]string{"minAge": "35"})
	assert.False(t, MatchAll(tooYoung, rec, now))
}

func TestMissingNumericNeverMatchesBounds(t *testing.T) {
	rec := candidate(nil) // no CTC stored
	clauses := Build(map[string]string{"minCTC": "5"})
	assert.False(t, MatchAll(clauses, rec, time.Now()))
}

func TestWhereRendering(t *testing.T) {
	frag, args := Where(nil)
	assert.Empty(t, frag)
	assert.Empty(t, args)

	clauses := Build(map[string]string{"gender": "Male", "minCTC": "5"})
	frag, args = Where(clauses)
	assert.Contains(t, frag, " WHERE ")
	assert.Contains(t, frag, " AND ")
	assert.Len(t, args, 2)
}

func TestSearchSQLUsesAllColumns(t *testing.T) {
	frag, args := Clause{Op: OpSearch, Str: "Verma"}.SQL()
	assert.Equal(t, len(searchColumns), len(args))
	for _, arg := range args {
		assert.Equal(t, "%verma%", arg)
	}
	assert.Contains(t, frag, " OR ")
}
