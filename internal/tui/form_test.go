package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brian/internal/api"
)

func TestFormFieldOrderByType(t *testing.T) {
	f := newFormModel(nil)

	f.itemType = api.TypeLink
	assert.Equal(t, []formField{fieldType, fieldTitle, fieldURL, fieldContent, fieldTags}, f.fields())

	f.itemType = api.TypeNote
	assert.Equal(t, []formField{fieldType, fieldTitle, fieldContent, fieldTags}, f.fields())

	f.itemType = api.TypeSnippet
	assert.Equal(t, []formField{fieldType, fieldTitle, fieldLanguage, fieldContent, fieldTags}, f.fields())

	f.itemType = api.TypePaper
	assert.Equal(t, []formField{fieldType, fieldTitle, fieldURL, fieldContent, fieldTags}, f.fields())
}

func TestFormHiddenFieldKeepsValue(t *testing.T) {
	f := newFormModel(nil)
	f.url.SetValue("https://example.com")

	// Switching to a type without a URL hides the field but the value
	// survives, so switching back restores it.
	f.itemType = api.TypeNote
	assert.NotContains(t, f.fields(), fieldURL)
	assert.Equal(t, "https://example.com", f.url.Value())

	f.itemType = api.TypeLink
	assert.Contains(t, f.fields(), fieldURL)
}

func TestFormFocusWrapsAndSkipsHidden(t *testing.T) {
	f := newFormModel(nil)
	f.itemType = api.TypeNote
	f.setFocus(fieldTitle)

	f.focusNext(1)
	assert.Equal(t, fieldContent, f.focus)

	f.focusNext(-1)
	assert.Equal(t, fieldTitle, f.focus)

	f.setFocus(fieldTags)
	f.focusNext(1)
	assert.Equal(t, fieldType, f.focus)
}

func TestFormCycleType(t *testing.T) {
	f := newFormModel(nil)
	require.Equal(t, api.TypeLink, f.itemType)

	f.cycleType(1)
	assert.Equal(t, api.TypeNote, f.itemType)
	f.cycleType(-1)
	assert.Equal(t, api.TypeLink, f.itemType)
	f.cycleType(-1)
	assert.Equal(t, api.TypePaper, f.itemType)
}

func TestFormValidate(t *testing.T) {
	f := newFormModel(nil)
	assert.False(t, f.validate())
	assert.Equal(t, "title is required", f.errMsg)

	f.title.SetValue("a title")
	assert.False(t, f.validate())
	assert.Equal(t, "content is required", f.errMsg)

	f.content.SetValue("some content")
	assert.True(t, f.validate())
	assert.Empty(t, f.errMsg)
}

func TestFormPayloadNullsEmptyOptionals(t *testing.T) {
	f := newFormModel(nil)
	f.itemType = api.TypeNote
	f.title.SetValue("  spaced title  ")
	f.content.SetValue("body")
	f.tags.SetValue("go, tui ,")

	payload := f.payload()
	assert.Equal(t, "spaced title", payload.Title)
	assert.Nil(t, payload.URL)
	assert.Nil(t, payload.Language)
	assert.Equal(t, []string{"go", "tui"}, payload.Tags)
}

func TestFormPrefilledFromItem(t *testing.T) {
	url := "https://example.com"
	lang := "go"
	item := &api.KnowledgeItem{
		ID:       "42",
		Title:    "existing",
		Content:  "body",
		ItemType: api.TypeSnippet,
		URL:      &url,
		Language: &lang,
		Tags:     []string{"a", "b"},
	}

	f := newFormModel(item)
	assert.Equal(t, "42", f.editingID)
	assert.Equal(t, api.TypeSnippet, f.itemType)
	assert.Equal(t, "existing", f.title.Value())
	assert.Equal(t, "https://example.com", f.url.Value())
	assert.Equal(t, "go", f.language.Value())
	assert.Equal(t, "a, b", f.tags.Value())
}

func TestNextTypeFilterCycle(t *testing.T) {
	seq := []api.ItemType{"", api.TypeLink, api.TypeNote, api.TypeSnippet, api.TypePaper, ""}
	for i := 0; i < len(seq)-1; i++ {
		assert.Equal(t, seq[i+1], nextTypeFilter(seq[i]))
	}
}

func TestNextSortCycle(t *testing.T) {
	by, order := nextSort("created_at")
	assert.Equal(t, "vote_count", by)
	assert.Equal(t, api.SortDesc, order)

	by, order = nextSort("vote_count")
	assert.Equal(t, "title", by)
	assert.Equal(t, api.SortAsc, order)

	by, order = nextSort("title")
	assert.Equal(t, "created_at", by)
	assert.Equal(t, api.SortDesc, order)
}

func TestFeedItemDescription(t *testing.T) {
	item := api.KnowledgeItem{
		Title:     "My note",
		Content:   "# Heading body",
		ItemType:  api.TypeNote,
		Favorite:  true,
		VoteCount: 3,
		Tags:      []string{"go"},
	}
	fi := feedItem{item: item}

	assert.Contains(t, fi.Title(), "My note")
	assert.Contains(t, fi.Title(), "★")

	desc := fi.Description()
	assert.Contains(t, desc, "▲3")
	assert.Contains(t, desc, "#go")
	assert.Contains(t, desc, "Heading body")
	assert.Equal(t, "My note", fi.FilterValue())
}
