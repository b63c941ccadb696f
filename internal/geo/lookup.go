package geo

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Lookup is the immutable state→cities table, loaded once at process
// start and read-only afterwards.
type Lookup struct {
	states []string
	cities map[string][]string
}

type statesFile struct {
	States map[string][]string `yaml:"states"`
}

func Load(path string) (*Lookup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read states file: %w", err)
	}

	var parsed statesFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal states file: %w", err)
	}

	l := &Lookup{cities: make(map[string][]string, len(parsed.States))}
	for state, cities := range parsed.States {
		l.states = append(l.states, state)
		sorted := make([]string, len(cities))
		copy(sorted, cities)
		sort.Strings(sorted)
		l.cities[state] = sorted
	}
	sort.Strings(l.states)

	return l, nil
}

func (l *Lookup) States() []string {
	out := make([]string, len(l.states))
	copy(out, l.states)
	return out
}

func (l *Lookup) Cities(state string) []string {
	cities, ok := l.cities[state]
	if !ok {
		return nil
	}
	out := make([]string, len(cities))
	copy(out, cities)
	return out
}

func (l *Lookup) IsState(name string) bool {
	_, ok := l.cities[name]
	return ok
}
