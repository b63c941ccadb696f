package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	values     map[Field][]string
	experience []int
	ctc        []float64
	err        error
}

func (f *fakeSource) DistinctValues(_ context.Context, field Field) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.values[field], nil
}

func (f *fakeSource) DistinctExperience(context.Context) ([]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.experience, nil
}

func (f *fakeSource) DistinctCTC(context.Context) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.ctc, nil
}

func TestDeriveOptionsSentinelsFirst(t *testing.T) {
	src := &fakeSource{
		values: map[Field][]string{
			FieldGender:          {"Male", "Female", "Male", ""},
			FieldCurrentState:    {"Karnataka", "Maharashtra"},
			FieldPreferredState:  {"Karnataka"},
			FieldDesignation:     {"Engineer", "Manager"},
			FieldDepartment:      {"IT"},
			FieldCurrentEmployer: {"Acme", "Initech"},
		},
		experience: []int{2, 7},
		ctc:        []float64{3.5, 8.2},
	}

	opts, err := DeriveOptions(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, []string{SentinelAllGenders, "Female", "Male"}, opts.Genders)
	assert.Equal(t, []string{SentinelCurrentState, "Karnataka", "Maharashtra"}, opts.CurrentStates)
	assert.Equal(t, []string{SentinelPreferredState, "Karnataka"}, opts.PreferredStates)
	assert.Equal(t, []string{SentinelDesignation, "Engineer", "Manager"}, opts.Designations)
	assert.Equal(t, []string{SentinelDepartment, "IT"}, opts.Departments)

	// Employers carry no sentinel.
	assert.Equal(t, []string{"Acme", "Initech"}, opts.CurrentEmployers)
}

func TestDeriveOptionsSteppedRanges(t *testing.T) {
	src := &fakeSource{
		experience: []int{2, 5},
		ctc:        []float64{3.5, 6.2},
	}

	opts, err := DeriveOptions(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "2", "3", "4", "5"}, opts.ExperienceOptions)
	// 3.5 floors to 3, 6.2 ceils to 7.
	assert.Equal(t, []string{"0", "3", "4", "5", "6", "7"}, opts.CTCOptions)
}

func TestDeriveOptionsEmptyCollection(t *testing.T) {
	src := &fakeSource{}

	opts, err := DeriveOptions(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, []string{}, opts.ExperienceOptions)
	assert.Equal(t, []string{}, opts.CTCOptions)
	assert.Equal(t, []string{SentinelAllGenders}, opts.Genders)
	assert.Equal(t, ageOptions, opts.AgeOptions)
}

func TestDeriveOptionsPropagatesError(t *testing.T) {
	src := &fakeSource{err: errors.New("db gone")}

	_, err := DeriveOptions(context.Background(), src)
	assert.Error(t, err)
}

func TestSteppedDedupesZero(t *testing.T) {
	// An observed minimum of 0 must not repeat the "0" sentinel.
	opts := stepped([]float64{0, 2})
	assert.Equal(t, []string{"0", "1", "2"}, opts)
}
