package domain

import (
	"fmt"
	"regexp"
	"strings"
)

const sectionSeparator = "\n\n---\n\n"

type Section struct {
	ID      string
	Title   string
	Content string
}

var (
	headingLine  = regexp.MustCompile(`^#\s+`)
	nonIDChars   = regexp.MustCompile(`[^a-z0-9\s-]`)
	idWhitespace = regexp.MustCompile(`\s+`)
)

// SectionID lowercases the title, drops punctuation and joins words with dashes.
func SectionID(title string) string {
	id := nonIDChars.ReplaceAllString(strings.ToLower(title), "")
	return idWhitespace.ReplaceAllString(strings.TrimSpace(id), "-")
}

// ParseSections splits markdown on H1 headings. Text before the first heading is dropped.
func ParseSections(markdown string) []Section {
	var (
		sections []Section
		current  *Section
		lines    []string
	)
	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(strings.Join(lines, "\n"))
		sections = append(sections, *current)
	}
	for _, line := range strings.Split(strings.ReplaceAll(markdown, "\r\n", "\n"), "\n") {
		if headingLine.MatchString(line) {
			flush()
			title := strings.TrimSpace(headingLine.ReplaceAllString(line, ""))
			current = &Section{ID: SectionID(title), Title: title}
			lines = nil
			continue
		}
		if current != nil {
			lines = append(lines, line)
		}
	}
	flush()
	return sections
}

// ModuleContent joins the sections mapped to a module. With headings, each heading picks the
// first section whose title matches it case-insensitively, in heading order. Without headings
// the sections whose id equals the module slug are used in document order.
func ModuleContent(markdown, module string, headings []string) string {
	sections := ParseSections(markdown)
	var picked []Section
	if len(headings) > 0 {
		for _, h := range headings {
			want := strings.ToLower(strings.TrimSpace(h))
			for _, section := range sections {
				if strings.ToLower(section.Title) == want {
					picked = append(picked, section)
					break
				}
			}
		}
	} else {
		for _, section := range sections {
			if section.ID == module {
				picked = append(picked, section)
			}
		}
	}
	if len(picked) == 0 {
		return NoContent(module)
	}
	parts := make([]string, 0, len(picked))
	for _, section := range picked {
		part := "# " + section.Title
		if section.Content != "" {
			part += "\n\n" + section.Content
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, sectionSeparator)
}

func NoContent(module string) string {
	return fmt.Sprintf("# Materials\n\nNo mapped content found for module: %s.", module)
}

const MissingSource = "# Materials\n\nSource file not found."
