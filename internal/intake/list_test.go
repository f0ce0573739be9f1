package intake

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAddRejectsBlankRequiredField(t *testing.T) {
	tests := []struct {
		name string
		run  func() (int, bool)
	}{
		{
			name: "certification",
			run: func() (int, bool) {
				l := ListOf(Certification{Name: "CKA", Year: 2023})
				next, ok := l.Add(Certification{Name: "   ", Issuer: "CNCF"})
				return next.Len(), ok
			},
		},
		{
			name: "project",
			run: func() (int, bool) {
				l := ListOf(Project{Title: "Tracker"})
				next, ok := l.Add(NewProject("", "desc", "Go, React", ""))
				return next.Len(), ok
			},
		},
		{
			name: "internship",
			run: func() (int, bool) {
				l := ListOf(Internship{Company: "Acme", DurationMonths: 2})
				next, ok := l.Add(Internship{Company: "\t", Role: "SWE"})
				return next.Len(), ok
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			n, ok := tt.run()
			assert.False(t, ok)
			assert.Equal(t, 1, n)
		})
	}
}

func TestListAddNormalizes(t *testing.T) {
	var certs List[Certification]
	certs, ok := certs.Add(Certification{Name: "  AWS Solutions Architect ", Issuer: " Amazon "})
	require.True(t, ok)
	got, _ := certs.At(0)
	assert.Equal(t, Certification{Name: "AWS Solutions Architect", Issuer: "Amazon", Year: DefaultCertificationYear}, got)

	var interns List[Internship]
	interns, ok = interns.Add(Internship{Company: " Acme ", DurationMonths: 0})
	require.True(t, ok)
	intern, _ := interns.At(0)
	assert.Equal(t, "Acme", intern.Company)
	assert.Equal(t, DefaultInternshipMonths, intern.DurationMonths)
}

func TestListAllowsDuplicates(t *testing.T) {
	var l List[Certification]
	c := Certification{Name: "CKA", Issuer: "CNCF", Year: 2022}
	l, _ = l.Add(c)
	l, _ = l.Add(c)
	assert.Equal(t, 2, l.Len())
}

func TestListRemoveAtPreservesOrder(t *testing.T) {
	l := ListOf(
		Project{Title: "a"},
		Project{Title: "b"},
		Project{Title: "c"},
		Project{Title: "d"},
	)

	for i := 0; i < l.Len(); i++ {
		next, ok := l.RemoveAt(i)
		require.True(t, ok)
		require.Equal(t, l.Len()-1, next.Len())

		var want []string
		for j, p := range l.Items() {
			if j != i {
				want = append(want, p.Title)
			}
		}
		var got []string
		for _, p := range next.Items() {
			got = append(got, p.Title)
		}
		assert.Equal(t, want, got, "remove index %d", i)
	}
	assert.Equal(t, 4, l.Len(), "receiver must not change")
}

func TestListRemoveAtOutOfRange(t *testing.T) {
	l := ListOf(Internship{Company: "Acme"})
	for _, i := range []int{-1, 1, 5} {
		next, ok := l.RemoveAt(i)
		assert.False(t, ok)
		assert.Equal(t, 1, next.Len())
	}
}

func TestNewProjectSplitsTechStack(t *testing.T) {
	p := NewProject(" Chat ", " realtime ", " Go, ,React ,  ,Redis", " https://github.com/x/chat ")
	assert.Equal(t, "Chat", p.Title)
	assert.Equal(t, "realtime", p.Description)
	assert.Equal(t, []string{"Go", "React", "Redis"}, p.TechStack)
	assert.Equal(t, "https://github.com/x/chat", p.GithubURL)
}

func TestListJSON(t *testing.T) {
	var empty List[Project]
	raw, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))

	var decoded List[Certification]
	require.NoError(t, json.Unmarshal([]byte(`[{"name":"CKA","issuer":"CNCF","year":2021}]`), &decoded))
	assert.Equal(t, 1, decoded.Len())
}

func TestConstructorsApplyDefaults(t *testing.T) {
	cert := NewCertification("  CKA ", " CNCF ", 0)
	assert.Equal(t, Certification{Name: "CKA", Issuer: "CNCF", Year: DefaultCertificationYear}, cert)

	in := NewInternship(" Acme ", "Intern", 0, "", true)
	assert.Equal(t, "Acme", in.Company)
	assert.Equal(t, DefaultInternshipMonths, in.DurationMonths)
	assert.True(t, in.HasCertificate)
}
