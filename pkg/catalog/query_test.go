package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// querySetup builds a store with a small corpus covering every searchable
// field and all filter dimensions.
func querySetup(t *testing.T) (*Store, map[string]FileID) {
	t.Helper()
	s := newTestStore(t)

	ui, err := s.CreateTag("UI", "", "")
	require.NoError(t, err)
	draft, err := s.CreateTag("draft", "", "")
	require.NoError(t, err)
	auth, err := s.CreateCategory("Auth", "")
	require.NoError(t, err)
	forms, err := s.CreateCategory("Forms", "")
	require.NoError(t, err)
	claude, err := s.CreateModel("claude", "", "")
	require.NoError(t, err)
	gpt, err := s.CreateModel("gpt", "", "")
	require.NoError(t, err)

	ids := make(map[string]FileID)

	login, err := s.CreateFile(FileMeta{
		Title:        "Login button",
		OriginalName: "login-button.html",
		Category:     auth.ID,
		Tags:         []TagID{ui.ID},
		Model:        claude.ID,
	}, "b1")
	require.NoError(t, err)
	ids["login"] = login.ID

	signup, err := s.CreateFile(FileMeta{
		Title:          "Signup form",
		Description:    "Registration flow",
		BackgroundText: "collects email and password",
		Category:       forms.ID,
		Tags:           []TagID{ui.ID, draft.ID},
		Model:          gpt.ID,
	}, "b2")
	require.NoError(t, err)
	ids["signup"] = signup.ID

	foo, err := s.CreateFile(FileMeta{
		Title:      "foo",
		PromptText: "render a footer with links",
	}, "b3")
	require.NoError(t, err)
	ids["foo"] = foo.ID

	fooo, err := s.CreateFile(FileMeta{Title: "fooo"}, "b4")
	require.NoError(t, err)
	ids["fooo"] = fooo.ID

	return s, ids
}

func resultIDs(files []File) []FileID {
	out := make([]FileID, 0, len(files))
	for i := range files {
		out = append(out, files[i].ID)
	}
	return out
}

func TestSearchText(t *testing.T) {
	s, ids := querySetup(t)

	tests := []struct {
		name string
		text string
		want []FileID
	}{
		{
			name: "substring is case-insensitive",
			text: "LOGIN",
			want: []FileID{ids["login"]},
		},
		{
			name: "keywords are ANDed across fields",
			text: "button log", // title + original name
			want: []FileID{ids["login"]},
		},
		{
			name: "matches description",
			text: "registration",
			want: []FileID{ids["signup"]},
		},
		{
			name: "matches background text",
			text: "password",
			want: []FileID{ids["signup"]},
		},
		{
			name: "matches prompt text",
			text: "footer",
			want: []FileID{ids["foo"]},
		},
		{
			name: "matches category name",
			text: "auth",
			want: []FileID{ids["login"]},
		},
		{
			name: "substring spans words",
			text: "foo", // substring of foo, fooo, footer
			want: []FileID{ids["foo"], ids["fooo"]},
		},
		{
			name: "no match",
			text: "nonexistent",
			want: []FileID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resultIDs(s.Search(Filter{Text: tt.text}))
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestSearchWildcards(t *testing.T) {
	s, ids := querySetup(t)

	tests := []struct {
		name string
		text string
		want []FileID
	}{
		{
			name: "question mark is exactly one character",
			text: "fo?",
			want: []FileID{ids["foo"]}, // not "fooo", not "footer"
		},
		{
			name: "star is any run",
			text: "fo*",
			want: []FileID{ids["signup"], ids["foo"], ids["fooo"]}, // form, foo+footer, fooo
		},
		{
			name: "star in the middle",
			text: "l*n",
			want: []FileID{ids["login"]},
		},
		{
			name: "wildcard keyword must cover the whole word",
			text: "butt?n",
			want: []FileID{ids["login"]},
		},
		{
			name: "wildcard and plain keyword combine",
			text: "fo? footer",
			want: []FileID{ids["foo"]},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resultIDs(s.Search(Filter{Text: tt.text}))
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestSearchKeywordCombinations(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateFile(FileMeta{Title: "a", Description: "Button component for login"}, "b1")
	require.NoError(t, err)
	second, err := s.CreateFile(FileMeta{Title: "b", Description: "Button for logout"}, "b2")
	require.NoError(t, err)

	// Both keywords present, in either order, anywhere in the text.
	got := resultIDs(s.Search(Filter{Text: "button log"}))
	assert.Equal(t, []FileID{first.ID, second.ID}, got)

	// "login" is not a substring of "logout".
	got = resultIDs(s.Search(Filter{Text: "button login"}))
	assert.Equal(t, []FileID{first.ID}, got)

	got = resultIDs(s.Search(Filter{Text: "log button"}))
	assert.Equal(t, []FileID{first.ID, second.ID}, got, "keyword order is irrelevant")
}

func TestSearchWildcardTokens(t *testing.T) {
	s := newTestStore(t)

	want := make([]FileID, 0, 3)
	for _, title := range []string{"for", "falter", "fr"} {
		f, err := s.CreateFile(FileMeta{Title: title}, StorageRef(title))
		require.NoError(t, err)
		want = append(want, f.ID)
	}
	_, err := s.CreateFile(FileMeta{Title: "fort"}, "b4")
	require.NoError(t, err)

	got := resultIDs(s.Search(Filter{Text: "f*r"}))
	assert.Equal(t, want, got, "f*r matches whole words ending in r")
}

func TestSearchDimensions(t *testing.T) {
	s, ids := querySetup(t)

	var ui, draft Tag
	for _, tag := range s.Tags() {
		switch tag.Name {
		case "UI":
			ui = tag
		case "draft":
			draft = tag
		}
	}
	require.NotEmpty(t, ui.ID)
	require.NotEmpty(t, draft.ID)

	var auth Category
	for _, c := range s.Categories() {
		if c.Name == "Auth" {
			auth = c
		}
	}
	var claude Model
	for _, m := range s.Models() {
		if m.Name == "claude" {
			claude = m
		}
	}

	// Category is an exact match.
	got := resultIDs(s.Search(Filter{Category: auth.ID}))
	assert.ElementsMatch(t, []FileID{ids["login"]}, got)

	// Model is an exact match.
	got = resultIDs(s.Search(Filter{Model: claude.ID}))
	assert.ElementsMatch(t, []FileID{ids["login"]}, got)

	// Multiple tags match ANY of them.
	got = resultIDs(s.Search(Filter{Tags: []TagID{ui.ID, draft.ID}}))
	assert.ElementsMatch(t, []FileID{ids["login"], ids["signup"]}, got)

	// Dimensions are ANDed together.
	got = resultIDs(s.Search(Filter{Tags: []TagID{ui.ID}, Text: "signup"}))
	assert.ElementsMatch(t, []FileID{ids["signup"]}, got)

	// An empty model id means no model filter.
	got = resultIDs(s.Search(Filter{Category: auth.ID, Model: ModelID("")}))
	assert.ElementsMatch(t, []FileID{ids["login"]}, got)

	// Contradictory dimensions match nothing.
	got = resultIDs(s.Search(Filter{Category: auth.ID, Tags: []TagID{draft.ID}}))
	assert.Empty(t, got)
}

func TestSearchOrdering(t *testing.T) {
	s, ids := querySetup(t)

	// The empty filter returns every active file in insertion order.
	got := resultIDs(s.Search(Filter{}))
	assert.Equal(t, []FileID{ids["login"], ids["signup"], ids["foo"], ids["fooo"]}, got)

	// Filtered results keep insertion order too.
	got = resultIDs(s.Search(Filter{Text: "fo*"}))
	assert.Equal(t, []FileID{ids["signup"], ids["foo"], ids["fooo"]}, got)
}

func TestSearchExcludesDeleted(t *testing.T) {
	s, ids := querySetup(t)

	require.NoError(t, s.DeleteFile(ids["foo"]))

	got := resultIDs(s.Search(Filter{Text: "foo"}))
	assert.Equal(t, []FileID{ids["fooo"]}, got)

	got = resultIDs(s.Search(Filter{}))
	assert.NotContains(t, got, ids["foo"])
}
