package site

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectsByCategory(t *testing.T) {
	projects := []Project{
		{ID: "a", Categories: []string{"mlops", "backend"}},
		{ID: "b", Categories: []string{"llm"}},
		{ID: "c", Categories: []string{"MLOps"}},
	}

	got := ProjectsByCategory(projects, "mlops")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	assert.Len(t, ProjectsByCategory(projects, "all"), 3)
	assert.Len(t, ProjectsByCategory(projects, ""), 3)
	assert.Empty(t, ProjectsByCategory(projects, "hardware"))
}

func TestCategories(t *testing.T) {
	projects := []Project{
		{Categories: []string{"mlops", "backend"}},
		{Categories: []string{"llm"}},
		{Categories: []string{"MLOps"}},
	}

	// Deduplicated case-insensitively, sorted, first spelling wins.
	assert.Equal(t, []string{"backend", "llm", "mlops"}, Categories(projects))
	assert.Empty(t, Categories(nil))
}

func TestMailtoURL(t *testing.T) {
	sub := ContactSubmission{
		Name:    "Sam O'Neill & co",
		Email:   "sam@example.com",
		Message: "Hello there,\n\nNice site!",
	}

	url := MailtoURL("dana@example.com", sub)

	assert.True(t, strings.HasPrefix(url, "mailto:dana@example.com?subject="), url)
	// User input must be escaped, and spaces must use %20 rather than +.
	assert.NotContains(t, url, " ")
	assert.NotContains(t, url, "+")
	assert.NotContains(t, url, "\n")
	assert.Contains(t, url, "%20")
	assert.Contains(t, url, "sam%40example.com")
}

func TestContactSubmissionValidate(t *testing.T) {
	valid := ContactSubmission{Name: "Sam", Email: "sam@example.com", Message: "hi"}
	require.NoError(t, valid.Validate())

	cases := map[string]ContactSubmission{
		"missing name":     {Email: "sam@example.com", Message: "hi"},
		"bad email":        {Name: "Sam", Email: "not-an-email", Message: "hi"},
		"missing message":  {Name: "Sam", Email: "sam@example.com"},
		"newline in name":  {Name: "Sam\r\nBcc: evil@example.com", Email: "sam@example.com", Message: "hi"},
		"newline in email": {Name: "Sam", Email: "sam@example.com\nX: y", Message: "hi"},
	}
	for name, sub := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, sub.Validate())
		})
	}
}
