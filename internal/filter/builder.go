package filter

import (
	"strconv"
	"strings"
	"time"
)

// Sentinel placeholders the UI sends when a dropdown is left on its
// label. A parameter carrying its sentinel imposes no constraint.
const (
	SentinelAllGenders     = "All Genders"
	SentinelAllExperience  = "All Experience"
	SentinelCurrentState   = "Current state"
	SentinelPreferredState = "Preferred state"
	SentinelDesignation    = "Designation"
	SentinelDepartment     = "Department"
	SentinelNoMin          = "0"
	SentinelNoMax          = "All"
)

// Build maps raw query parameters onto a clause list. It never fails:
// a parameter whose value cannot be parsed is skipped, widening the
// result instead of rejecting the request.
func Build(params map[string]string) []Clause {
	var clauses []Clause
	add := func(c Clause) { clauses = append(clauses, c) }

	if v := params["search"]; v != "" {
		add(Clause{Op: OpSearch, Str: v})
	}

	if v := params["gender"]; v != "" && v != SentinelAllGenders {
		add(Clause{Op: OpEquals, Field: FieldGender, Str: v})
	}

	if v := params["experience"]; v != "" && v != SentinelAllExperience {
		clauses = append(clauses, rangeClauses(v, FieldMinExperience, FieldMaxExperience)...)
	}
	if v := params["minExperience"]; v != "" && v != SentinelNoMin {
		if n, err := strconv.Atoi(v); err == nil {
			add(Clause{Op: OpNumGTE, Field: FieldMinExperience, Num: float64(n)})
		}
	}
	if v := params["maxExperience"]; v != "" && v != SentinelNoMax {
		if n, err := strconv.Atoi(v); err == nil {
			add(Clause{Op: OpNumLTE, Field: FieldMaxExperience, Num: float64(n)})
		}
	}

	if v := params["ctcInLakhs"]; v != "" {
		clauses = append(clauses, rangeClauses(v, FieldMinCTC, FieldMaxCTC)...)
	}
	if v := params["minCTC"]; v != "" && v != SentinelNoMin {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			add(Clause{Op: OpNumGTE, Field: FieldMinCTC, Num: n})
		}
	}
	if v := params["maxCTC"]; v != "" && v != SentinelNoMax {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			add(Clause{Op: OpNumLTE, Field: FieldMaxCTC, Num: n})
		}
	}

	if v := params["currentState"]; v != "" && v != SentinelCurrentState {
		add(Clause{Op: OpEquals, Field: FieldCurrentState, Str: v})
	}
	if v := params["preferredState"]; v != "" && v != SentinelPreferredState {
		add(Clause{Op: OpEquals, Field: FieldPreferredState, Str: v})
	}
	if v := params["designation"]; v != "" && v != SentinelDesignation {
		add(Clause{Op: OpEquals, Field: FieldDesignation, Str: v})
	}
	if v := params["department"]; v != "" && v != SentinelDepartment {
		add(Clause{Op: OpEquals, Field: FieldDepartment, Str: v})
	}

	if v := params["currentEmployer"]; v != "" {
		add(Clause{Op: OpContains, Field: FieldCurrentEmployer, Str: v})
	}
	if v := params["uploadedBy"]; v != "" {
		add(Clause{Op: OpContains, Field: FieldUploadedBy, Str: v})
	}

	if v := params["startDate"]; v != "" {
		if t, ok := parseDate(v); ok {
			add(Clause{Op: OpTimeGTE, Time: t})
		}
	}
	if v := params["endDate"]; v != "" {
		if t, ok := parseDate(v); ok {
			add(Clause{Op: OpTimeLTE, Time: t})
		}
	}

	if v := params["minAge"]; v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			add(Clause{Op: OpAgeGTE, Num: float64(n)})
		}
	}
	if v := params["maxAge"]; v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			add(Clause{Op: OpAgeLTE, Num: float64(n)})
		}
	}

	return clauses
}

// rangeClauses parses the three textual forms a single-value numeric
// filter may take and maps them onto the stored range:
//
//	"N+"  at least N      -> minField >= N
//	"A-B" between A and B -> minField >= A and maxField <= B
//	"N"   exactly N       -> the stored range contains N
func rangeClauses(v string, minField, maxField Field) []Clause {
	switch {
	case strings.HasSuffix(v, "+"):
		n, err := strconv.ParseFloat(strings.TrimSuffix(v, "+"), 64)
		if err != nil {
			return nil
		}
		return []Clause{{Op: OpNumGTE, Field: minField, Num: n}}
	case strings.Contains(v, "-"):
		parts := strings.SplitN(v, "-", 2)
		lo, errLo := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		hi, errHi := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errLo != nil || errHi != nil {
			return nil
		}
		return []Clause{
			{Op: OpNumGTE, Field: minField, Num: lo},
			{Op: OpNumLTE, Field: maxField, Num: hi},
		}
	default:
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		return []Clause{
			{Op: OpNumLTE, Field: minField, Num: n},
			{Op: OpNumGTE, Field: maxField, Num: n},
		}
	}
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
