package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillSetAddIsIdempotent(t *testing.T) {
	s := SkillsOf("Python", "Go")
	next, ok := s.Add("Python")
	assert.False(t, ok)
	assert.Equal(t, []string{"Python", "Go"}, next.Values())

	next, ok = s.Add("  Go ")
	assert.False(t, ok)
	assert.Equal(t, 2, next.Len())
}

func TestSkillSetAddRejectsBlank(t *testing.T) {
	var s SkillSet
	next, ok := s.Add("   ")
	assert.False(t, ok)
	assert.Equal(t, 0, next.Len())
}

func TestSkillSetPreservesInsertionOrder(t *testing.T) {
	s := SkillsOf("Rust", "Docker", "AWS")
	s, _ = s.Add("Kubernetes")
	assert.Equal(t, []string{"Rust", "Docker", "AWS", "Kubernetes"}, s.Values())
}

func TestSkillSetRemove(t *testing.T) {
	s := SkillsOf("Rust", "Docker", "AWS")
	next, ok := s.Remove("Docker")
	assert.True(t, ok)
	assert.Equal(t, []string{"Rust", "AWS"}, next.Values())

	_, ok = next.Remove("Docker")
	assert.False(t, ok)
}

func TestSkillSetClear(t *testing.T) {
	for _, names := range [][]string{nil, {"Go"}, {"Go", "SQL", "React", "Java"}} {
		s := SkillsOf(names...)
		assert.Equal(t, 0, s.Clear().Len())
		assert.Equal(t, []string{}, s.Clear().Values())
	}
}
