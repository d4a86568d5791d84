// Package filters holds the query-parameter driven filters used by the
// discussion and user listings.
package filters

import (
	"regexp"
	"strings"

	"github.com/spyne-social/api-go/models"
)

// DiscussionFilter combines its hashtag and text conditions with AND. An empty
// filter matches everything.
type DiscussionFilter struct {
	// Hashtags match when any one of them appears as a whole token.
	Hashtags []string
	// Text matches as a case-insensitive substring of the discussion text.
	Text string
}

// ParseDiscussionFilter builds a filter from the raw "hashtags" (comma
// separated) and "text" query values. Blank tags are dropped.
func ParseDiscussionFilter(hashtags, text string) DiscussionFilter {
	var f DiscussionFilter
	for _, tag := range strings.Split(hashtags, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			f.Hashtags = append(f.Hashtags, tag)
		}
	}
	f.Text = strings.TrimSpace(text)
	return f
}

func (f DiscussionFilter) IsEmpty() bool {
	return len(f.Hashtags) == 0 && f.Text == ""
}

// wordChar is a unicode-aware \w.
const wordChar = `\p{L}\p{N}_`

// hashtagPattern matches tag only where it is delimited by a non-word
// character or the ends of the input, so "cats" does not match "catsup".
func hashtagPattern(tag string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^` + wordChar + `])` + regexp.QuoteMeta(tag) + `(?:[^` + wordChar + `]|$)`)
}

// MatchesHashtags reports whether hashtags contains any of tags as a whole
// token. No tags always matches.
func MatchesHashtags(hashtags string, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if hashtagPattern(tag).MatchString(hashtags) {
			return true
		}
	}
	return false
}

// MatchesText reports whether term is a case-insensitive substring of text.
func MatchesText(text, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(term))
}

// Apply runs the hashtag stage and then the text stage over discussions,
// de-duplicating by id after each stage. Order is preserved.
func (f DiscussionFilter) Apply(discussions []models.Discussion) []models.Discussion {
	out := discussions
	if len(f.Hashtags) > 0 {
		patterns := make([]*regexp.Regexp, 0, len(f.Hashtags))
		for _, tag := range f.Hashtags {
			patterns = append(patterns, hashtagPattern(tag))
		}
		stage := make([]models.Discussion, 0, len(out))
		for _, d := range out {
			for _, p := range patterns {
				if p.MatchString(d.Hashtags) {
					stage = append(stage, d)
					break
				}
			}
		}
		out = distinct(stage)
	}
	if f.Text != "" {
		stage := make([]models.Discussion, 0, len(out))
		for _, d := range out {
			if MatchesText(d.Text, f.Text) {
				stage = append(stage, d)
			}
		}
		out = distinct(stage)
	}
	return out
}

func distinct(discussions []models.Discussion) []models.Discussion {
	seen := make(map[uint]struct{}, len(discussions))
	out := discussions[:0]
	for _, d := range discussions {
		if _, ok := seen[d.ID]; ok {
			continue
		}
		seen[d.ID] = struct{}{}
		out = append(out, d)
	}
	return out
}

// LikePattern escapes s for use inside a SQL LIKE pattern with '\' as the
// escape character and wraps it in wildcards.
func LikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
