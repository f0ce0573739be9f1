package intake

import (
	"encoding/json"
	"slices"
	"strings"
)

// SkillSet is an ordered set of skill names. Insertion order is kept for
// display only. The zero value is an empty set.
type SkillSet struct {
	names []string
}

// SkillsOf builds a set from names, trimming and dropping blanks and repeats.
func SkillsOf(names ...string) SkillSet {
	var s SkillSet
	for _, n := range names {
		s, _ = s.Add(n)
	}
	return s
}

// Add inserts a trimmed skill name. Blank names and names already present
// are no-ops and report false.
func (s SkillSet) Add(name string) (SkillSet, bool) {
	name = strings.TrimSpace(name)
	if name == "" || s.Contains(name) {
		return s, false
	}
	names := make([]string, 0, len(s.names)+1)
	names = append(names, s.names...)
	names = append(names, name)
	return SkillSet{names: names}, true
}

// Remove deletes a skill by name and reports whether it was present.
func (s SkillSet) Remove(name string) (SkillSet, bool) {
	idx := slices.Index(s.names, strings.TrimSpace(name))
	if idx < 0 {
		return s, false
	}
	names := make([]string, 0, len(s.names)-1)
	names = append(names, s.names[:idx]...)
	names = append(names, s.names[idx+1:]...)
	return SkillSet{names: names}, true
}

// Clear returns an empty set.
func (s SkillSet) Clear() SkillSet {
	return SkillSet{}
}

// Contains reports whether name is in the set.
func (s SkillSet) Contains(name string) bool {
	return slices.Contains(s.names, name)
}

// Values returns the skill names in insertion order.
func (s SkillSet) Values() []string {
	if len(s.names) == 0 {
		return []string{}
	}
	return slices.Clone(s.names)
}

// Len returns the number of skills.
func (s SkillSet) Len() int {
	return len(s.names)
}

func (s SkillSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func (s *SkillSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = SkillsOf(names...)
	return nil
}
