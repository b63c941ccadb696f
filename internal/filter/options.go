package filter

import (
	"context"
	"math"
	"sort"
	"strconv"
	"sync"
)

// DistinctSource is the read-only slice of the record store the option
// deriver needs. Implementations must report values across the whole
// collection, never a filtered subset.
type DistinctSource interface {
	DistinctValues(ctx context.Context, field Field) ([]string, error)
	DistinctExperience(ctx context.Context) ([]int, error)
	DistinctCTC(ctx context.Context) ([]float64, error)
}

// Options holds the selectable values for each UI dropdown.
type Options struct {
	Genders           []string `json:"genders"`
	CurrentStates     []string `json:"currentStates"`
	PreferredStates   []string `json:"preferredStates"`
	Designations      []string `json:"designations"`
	Departments       []string `json:"departments"`
	CurrentEmployers  []string `json:"currentEmployers"`
	ExperienceOptions []string `json:"experienceOptions"`
	CTCOptions        []string `json:"ctcOptions"`
	AgeOptions        []string `json:"ageOptions"`
}

// ageOptions is a fixed list; age is derived, not stored, so there is
// nothing to aggregate.
var ageOptions = []string{"18", "25", "30", "35", "40", "45", "50", "55", "60", "65"}

type derivation struct {
	field    Field
	sentinel string
	dest     *[]string
}

// DeriveOptions fans the distinct-value queries out concurrently and
// joins them into one Options value. The queries are independent
// read-only fetches; the first error wins.
func DeriveOptions(ctx context.Context, src DistinctSource) (*Options, error) {
	opts := &Options{AgeOptions: ageOptions}

	derivations := []derivation{
		{FieldGender, SentinelAllGenders, &opts.Genders},
		{FieldCurrentState, SentinelCurrentState, &opts.CurrentStates},
		{FieldPreferredState, SentinelPreferredState, &opts.PreferredStates},
		{FieldDesignation, SentinelDesignation, &opts.Designations},
		{FieldDepartment, SentinelDepartment, &opts.Departments},
		{FieldCurrentEmployer, "", &opts.CurrentEmployers},
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for _, d := range derivations {
		wg.Add(1)
		go func(d derivation) {
			defer wg.Done()
			values, err := src.DistinctValues(ctx, d.field)
			if err != nil {
				fail(err)
				return
			}
			*d.dest = categorical(values, d.sentinel)
		}(d)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		values, err := src.DistinctExperience(ctx)
		if err != nil {
			fail(err)
			return
		}
		ints := make([]float64, len(values))
		for i, v := range values {
			ints[i] = float64(v)
		}
		opts.ExperienceOptions = stepped(ints)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		values, err := src.DistinctCTC(ctx)
		if err != nil {
			fail(err)
			return
		}
		opts.CTCOptions = stepped(values)
	}()

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return opts, nil
}

// categorical dedupes, drops empties, sorts, and prefixes the field's
// sentinel placeholder. An empty sentinel means the field has none.
func categorical(values []string, sentinel string) []string {
	seen := make(map[string]struct{}, len(values))
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		cleaned = append(cleaned, v)
	}
	sort.Strings(cleaned)

	if sentinel == "" {
		return cleaned
	}
	return append([]string{sentinel}, cleaned...)
}

// stepped turns observed numeric values into an integer-stepped option
// list from min to max, prefixed with the "no filter" sentinel. An
// empty collection yields an empty list so min/max over nothing never
// leaks a bogus bound.
func stepped(values []float64) []string {
	if len(values) == 0 {
		return []string{}
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	options := []string{SentinelNoMin}
	seen := map[string]struct{}{SentinelNoMin: {}}
	for i := int(math.Floor(min)); i <= int(math.Ceil(max)); i++ {
		s := strconv.Itoa(i)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		options = append(options, s)
	}
	return options
}
