package converter

import "sort"

// NameSet is a set of Hevy exercise names.
type NameSet map[string]struct{}

// NewNameSet builds a set from names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether name is in the set. A nil set contains nothing.
func (s NameSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the members sorted.
func (s NameSet) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RuleSets groups exercises that need a unit conversion, keyed by the
// resolved (Hevy) exercise name.
type RuleSets struct {
	// TimeToReps credits one rep per 10 logged seconds.
	TimeToReps NameSet

	// TimeToDistance credits one meter per logged second.
	TimeToDistance NameSet

	// RepsToTime reads the logged reps as seconds.
	RepsToTime NameSet
}

// DefaultRules returns the stock rule sets.
func DefaultRules() RuleSets {
	return RuleSets{
		TimeToReps:     NewNameSet("Bird Dog", "Dead Bug", "Deadbug", "Flutter Kicks", "Flutter Kick"),
		TimeToDistance: NewNameSet("Farmers Walk", "Farmer Walk", "Farmer's Walk", "Farmer's Carry"),
		RepsToTime:     NewNameSet("Warm Up"),
	}
}
