package notes

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxSlugLength bounds normalized slugs.
const MaxSlugLength = 200

// WikiLink is a [[slug]] or [[slug|text]] reference found in a note body.
type WikiLink struct {
	TargetSlug  string
	DisplayText string
	RawLink     string
}

var (
	codeBlockPattern  = regexp.MustCompile("(?s)```[^`]*```")
	inlineCodePattern = regexp.MustCompile("`[^`]+`")
	wikiLinkPattern   = regexp.MustCompile(`\[\[([^|\]]+)(?:\|([^\]]+))?\]\]`)
)

// ExtractWikiLinks returns the distinct wiki links in content, in order of
// first appearance. Links inside fenced or inline code are ignored.
func ExtractWikiLinks(content string) []WikiLink {
	content = codeBlockPattern.ReplaceAllString(content, "")
	content = inlineCodePattern.ReplaceAllString(content, "")

	matches := wikiLinkPattern.FindAllStringSubmatch(content, -1)
	if matches == nil {
		return nil
	}

	links := make([]WikiLink, 0, len(matches))
	seen := make(map[string]bool)
	for _, m := range matches {
		slug := NormalizeSlug(m[1])
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		links = append(links, WikiLink{
			TargetSlug:  slug,
			DisplayText: strings.TrimSpace(m[2]),
			RawLink:     m[0],
		})
	}
	return links
}

// NormalizeSlug lowercases s, keeps letters, digits, '-' and '_', turns
// spaces into hyphens and collapses repeated hyphens.
func NormalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	s = b.String()

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")

	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "-")
	}
	return s
}
