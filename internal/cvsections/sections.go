// Package cvsections splits résumé text into the sections a cover letter
// usually draws on.
package cvsections

import (
	"strings"
)

// NotFound is the body reported for a section with no heading in the text.
const NotFound = "Not Found"

// Section names in display order.
const (
	Education    = "Education"
	Experience   = "Experience"
	Projects     = "Projects"
	Achievements = "Achievements"
	Skills       = "Skills"
)

var keywords = []struct {
	name  string
	words []string
}{
	{Education, []string{"education", "qualifications"}},
	{Experience, []string{"experience", "work history"}},
	{Projects, []string{"projects", "portfolio"}},
	{Achievements, []string{"achievements", "awards"}},
	{Skills, []string{"skills", "competencies"}},
}

// Sections maps a section name to its body.
type Sections map[string]string

// Names returns the section names in display order.
func Names() []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, k.name)
	}
	return out
}

// Found reports the names whose body was located, in display order.
func (s Sections) Found() []string {
	var out []string
	for _, name := range Names() {
		if body, ok := s[name]; ok && body != NotFound {
			out = append(out, name)
		}
	}
	return out
}

// Extract locates each known section. A heading is a line that starts with
// one of the section's keywords; its body runs to the next heading of any
// section. The first heading with a non-empty body wins.
func Extract(text string) Sections {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	type heading struct {
		line int
		name string
		rest string
	}
	var headings []heading
	for i, ln := range lines {
		if name, rest, ok := matchHeading(ln); ok {
			headings = append(headings, heading{line: i, name: name, rest: rest})
		}
	}

	out := make(Sections, len(keywords))
	for _, k := range keywords {
		out[k.name] = NotFound
	}
	for idx, h := range headings {
		if out[h.name] != NotFound {
			continue
		}
		end := len(lines)
		if idx+1 < len(headings) {
			end = headings[idx+1].line
		}
		parts := []string{h.rest}
		parts = append(parts, lines[h.line+1:end]...)
		if body := strings.TrimSpace(strings.Join(parts, "\n")); body != "" {
			out[h.name] = body
		}
	}
	return out
}

func matchHeading(line string) (name, rest string, ok bool) {
	trimmed := strings.TrimSpace(line)
	lower := strings.ToLower(trimmed)
	for _, k := range keywords {
		for _, w := range k.words {
			if strings.HasPrefix(lower, w) && !startsWithLetter(lower[len(w):]) {
				rest = strings.TrimLeft(trimmed[len(w):], " :-\t")
				return k.name, rest, true
			}
		}
	}
	return "", "", false
}

func startsWithLetter(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
