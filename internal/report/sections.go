// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package report

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultSectionTitle names the section holding text that precedes any
// heading, or the whole text when no heading is found.
const DefaultSectionTitle = "Report"

// maxHeadingLen keeps long numbered sentences from being taken as titles.
const maxHeadingLen = 100

// Section is one titled part of a report.
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

var (
	blankLines   = regexp.MustCompile(`\n[ \t]*\n`)
	numberedItem = regexp.MustCompile(`^\d{1,2}[.)]\s+\S`)
)

// SplitSections cuts model output into sections. A section starts at a
// paragraph whose first line is a heading: an all-capitals line or a
// numbered item such as "1." or "2)". That line becomes the title.
//
// The split never fails. Empty or unstructured text yields a single
// section titled DefaultSectionTitle.
func SplitSections(text string) []Section {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return []Section{{Title: DefaultSectionTitle}}
	}

	var sections []Section
	var body []string
	title := DefaultSectionTitle
	flush := func() {
		if title == DefaultSectionTitle && len(body) == 0 {
			return
		}
		sections = append(sections, Section{Title: title, Body: strings.Join(body, "\n\n")})
		body = nil
	}

	for _, para := range blankLines.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		first, rest, _ := strings.Cut(para, "\n")
		if heading, ok := asHeading(first); ok {
			flush()
			title = heading
			if rest = strings.TrimSpace(rest); rest != "" {
				body = append(body, rest)
			}
			continue
		}
		body = append(body, para)
	}
	flush()
	return sections
}

// asHeading reports whether line is a heading and returns it without
// markdown decoration.
func asHeading(line string) (string, bool) {
	clean := strings.TrimSpace(line)
	clean = strings.TrimLeft(clean, "# ")
	clean = strings.Trim(clean, "*_ ")
	if clean == "" || len(clean) > maxHeadingLen {
		return "", false
	}
	if numberedItem.MatchString(clean) || isAllCaps(clean) {
		return strings.TrimSuffix(clean, ":"), true
	}
	return "", false
}

// isAllCaps requires at least two letters, all upper case.
func isAllCaps(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters >= 2
}
