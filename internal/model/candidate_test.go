package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromLegacyWidensBothValues(t *testing.T) {
	ctc := 6.5
	exp := 4
	var c Candidate
	c.FromLegacy(&ctc, &exp)

	require.NotNil(t, c.MinCTC)
	require.NotNil(t, c.MaxCTC)
	assert.Equal(t, 6.5, *c.MinCTC)
	assert.Equal(t, 6.5, *c.MaxCTC)
	assert.Equal(t, 4, *c.MinExperience)
	assert.Equal(t, 4, *c.MaxExperience)

	// The bounds are independent copies.
	*c.MinCTC = 1
	assert.Equal(t, 6.5, *c.MaxCTC)
}

func TestFromLegacyNilLeavesRangeUnset(t *testing.T) {
	var c Candidate
	c.FromLegacy(nil, nil)
	assert.Nil(t, c.MinCTC)
	assert.Nil(t, c.MaxExperience)
}

func TestAge(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	dob := time.Date(1990, 6, 1, 0, 0, 0, 0, time.UTC)
	c := Candidate{DateOfBirth: &dob}

	age, ok := c.Age(now)
	require.True(t, ok)
	assert.InDelta(t, 35, age, 0.05)
}

func TestAgeWithoutDOB(t *testing.T) {
	var c Candidate
	_, ok := c.Age(time.Now())
	assert.False(t, ok)
}
