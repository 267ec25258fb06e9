package catalog

import (
	"regexp"
	"strings"
)

// Filter is a multi-dimensional search request. All dimensions are optional
// and combined with AND; only active files are eligible.
type Filter struct {
	// Text is split on whitespace into keywords; a file matches iff every
	// keyword matches its searchable text. Keywords support the wildcards
	// `*` (any run of characters) and `?` (exactly one character).
	Text string

	// Category matches the file's category id exactly.
	Category CategoryID

	// Tags matches files holding at least one of the given tag ids.
	Tags []TagID

	// Model matches the file's model id exactly.
	Model ModelID
}

// empty reports whether the filter matches everything.
func (f Filter) empty() bool {
	return f.Text == "" && f.Category == "" && len(f.Tags) == 0 && f.Model == ""
}

// keywordMatcher matches one search keyword against a file's searchable
// text. Plain keywords are case-insensitive substring matches; keywords with
// wildcards must match a whole whitespace-separated token, so `fo?` matches
// "foo" but not "fooo".
type keywordMatcher struct {
	substring string         // non-empty for plain keywords
	pattern   *regexp.Regexp // non-nil for wildcard keywords
}

func (m keywordMatcher) match(text string, tokens []string) bool {
	if m.pattern == nil {
		return strings.Contains(text, m.substring)
	}
	for _, tok := range tokens {
		if m.pattern.MatchString(tok) {
			return true
		}
	}
	return false
}

// compileKeywords turns a free-text query into one matcher per keyword.
// Regex metacharacters are escaped except `*` and `?`, which become `.*`
// and `.` respectively.
func compileKeywords(text string) []keywordMatcher {
	words := strings.Fields(text)
	matchers := make([]keywordMatcher, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(w)
		if !strings.ContainsAny(w, "*?") {
			matchers = append(matchers, keywordMatcher{substring: w})
			continue
		}
		quoted := regexp.QuoteMeta(w)
		quoted = strings.ReplaceAll(quoted, `\*`, `.*`)
		quoted = strings.ReplaceAll(quoted, `\?`, `.`)
		// QuoteMeta output is always a valid pattern.
		matchers = append(matchers, keywordMatcher{pattern: regexp.MustCompile(`^` + quoted + `$`)})
	}
	return matchers
}

// Search evaluates the filter against the committed catalog state and
// returns matching active files in the collection's insertion order.
// Results are never re-sorted by relevance.
func (s *Store) Search(filter Filter) []File {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if filter.empty() {
		return s.files.Active()
	}

	matchers := compileKeywords(filter.Text)

	var out []File
	s.files.ForEachActive(func(f *File) {
		if filter.Category != "" && f.Category != filter.Category {
			return
		}
		if filter.Model != "" && f.Model != filter.Model {
			return
		}
		if len(filter.Tags) > 0 && !hasAnyTag(f, filter.Tags) {
			return
		}
		if len(matchers) > 0 {
			text := s.searchableTextLocked(f)
			tokens := strings.Fields(text)
			for _, m := range matchers {
				if !m.match(text, tokens) {
					return
				}
			}
		}
		out = append(out, f.copy())
	})
	return out
}

// hasAnyTag reports whether the file holds at least one of the given tags.
func hasAnyTag(f *File, tags []TagID) bool {
	for _, tid := range tags {
		if f.HasTag(tid) {
			return true
		}
	}
	return false
}

// searchableTextLocked builds the lower-cased haystack for text matching:
// title, description, original name, background text, prompt text, and the
// resolved category name. Caller holds mu.
func (s *Store) searchableTextLocked(f *File) string {
	parts := []string{
		f.Title,
		f.Description,
		f.OriginalName,
		f.BackgroundText,
		f.PromptText,
	}
	if f.Category != "" {
		if c, ok := s.categories[f.Category]; ok {
			parts = append(parts, c.Name)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
