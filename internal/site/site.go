// Package site holds the static records the pages render from: the owner
// profile, project entries, and navigation sections. Everything here is
// created at build time and never mutated at runtime.
package site

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Profile is the contact-info record rendered in the hero and contact
// sections.
type Profile struct {
	Name     string
	Title    string
	Email    string
	Location string
	GitHub   string
	LinkedIn string
	About    string
}

// Link is an optional external reference on a project card.
type Link struct {
	Label string
	URL   string
}

// Project is a single portfolio entry. Technologies and Categories drive the
// client-side filter buttons; Achievements, Company, and Period are optional.
type Project struct {
	ID           string
	Title        string
	Description  string
	Technologies []string
	Categories   []string
	Links        []Link
	Achievements []string
	Company      string
	Period       string
	Featured     bool
}

// Section is a navigation target on the home page. The nav bar renders one
// entry per section and the scroll-spy script highlights the nearest one.
type Section struct {
	ID    string
	Label string
}

// ProjectsByCategory returns the projects whose category set contains the
// given category, comparing case-insensitively. An empty or "all" category
// returns every project.
func ProjectsByCategory(projects []Project, category string) []Project {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || category == "all" {
		return projects
	}
	var out []Project
	for _, p := range projects {
		for _, c := range p.Categories {
			if strings.ToLower(c) == category {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Categories returns the distinct project categories, sorted. Display case
// is taken from the first occurrence.
func Categories(projects []Project) []string {
	seen := map[string]string{}
	for _, p := range projects {
		for _, c := range p.Categories {
			key := strings.ToLower(c)
			if _, ok := seen[key]; !ok {
				seen[key] = c
			}
		}
	}
	out := make([]string, 0, len(seen))
	for _, c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// MailtoURL builds the mailto link the contact form falls back to when no
// SMTP relay is configured. Subject and body are query-escaped; mailto
// bodies use %20 rather than + for spaces.
func MailtoURL(to string, sub ContactSubmission) string {
	subject := fmt.Sprintf("Portfolio contact from %s", sub.Name)
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", sub.Name, sub.Email, sub.Message)

	escape := func(s string) string {
		return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	}
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", to, escape(subject), escape(body))
}
