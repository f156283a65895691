package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"brian/internal/api"
	"brian/internal/render"
)

type formField int

const (
	fieldType formField = iota
	fieldTitle
	fieldURL
	fieldLanguage
	fieldContent
	fieldTags
)

// formModel is the create/edit form. Switching the type hides the
// irrelevant optional field but keeps its value, so switching back
// restores what was typed; only submit decides what is sent.
type formModel struct {
	editingID string
	itemType  api.ItemType

	title    textinput.Model
	url      textinput.Model
	language textinput.Model
	tags     textinput.Model
	content  textarea.Model

	focus     formField
	errMsg    string
	submitted bool
}

func newFormModel(item *api.KnowledgeItem) *formModel {
	f := &formModel{itemType: api.TypeLink}

	f.title = textinput.New()
	f.title.Placeholder = "Enter a descriptive title..."
	f.title.CharLimit = 200

	f.url = textinput.New()
	f.url.Placeholder = "https://..."

	f.language = textinput.New()
	f.language.Placeholder = "e.g. go, python"

	f.tags = textinput.New()
	f.tags.Placeholder = "comma, separated, tags"

	f.content = textarea.New()
	f.content.Placeholder = "Write your content here... Markdown is supported!"
	f.content.SetHeight(8)

	if item != nil {
		f.editingID = item.ID
		f.itemType = item.ItemType
		f.title.SetValue(item.Title)
		f.content.SetValue(item.Content)
		f.tags.SetValue(strings.Join(item.Tags, ", "))
		if item.URL != nil {
			f.url.SetValue(*item.URL)
		}
		if item.Language != nil {
			f.language.SetValue(*item.Language)
		}
	}

	f.focus = fieldType
	return f
}

// fields returns the focus order for the current type; hidden fields
// are skipped but keep their values.
func (f *formModel) fields() []formField {
	order := []formField{fieldType, fieldTitle}
	if f.itemType.HasURL() {
		order = append(order, fieldURL)
	}
	if f.itemType.HasLanguage() {
		order = append(order, fieldLanguage)
	}
	return append(order, fieldContent, fieldTags)
}

func (f *formModel) focusNext(delta int) {
	order := f.fields()
	pos := 0
	for i, field := range order {
		if field == f.focus {
			pos = i
			break
		}
	}
	pos = (pos + delta + len(order)) % len(order)
	f.setFocus(order[pos])
}

func (f *formModel) setFocus(field formField) {
	f.focus = field
	f.title.Blur()
	f.url.Blur()
	f.language.Blur()
	f.tags.Blur()
	f.content.Blur()
	switch field {
	case fieldTitle:
		f.title.Focus()
	case fieldURL:
		f.url.Focus()
	case fieldLanguage:
		f.language.Focus()
	case fieldContent:
		f.content.Focus()
	case fieldTags:
		f.tags.Focus()
	}
}

func (f *formModel) cycleType(delta int) {
	types := api.Types()
	for i, t := range types {
		if t == f.itemType {
			f.itemType = types[(i+delta+len(types))%len(types)]
			return
		}
	}
	f.itemType = types[0]
}

// update routes key and other messages into the focused field.
func (f *formModel) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && f.focus == fieldType {
		switch key.String() {
		case "left", "h":
			f.cycleType(-1)
			return nil
		case "right", "l", " ":
			f.cycleType(1)
			return nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldURL:
		f.url, cmd = f.url.Update(msg)
	case fieldLanguage:
		f.language, cmd = f.language.Update(msg)
	case fieldContent:
		f.content, cmd = f.content.Update(msg)
	case fieldTags:
		f.tags, cmd = f.tags.Update(msg)
	}
	return cmd
}

// validate checks the required fields, mirroring the browser-side
// required attributes of the web form.
func (f *formModel) validate() bool {
	switch {
	case strings.TrimSpace(f.title.Value()) == "":
		f.errMsg = "title is required"
	case strings.TrimSpace(f.content.Value()) == "":
		f.errMsg = "content is required"
	default:
		f.errMsg = ""
	}
	return f.errMsg == ""
}

// payload builds the API payload; empty url/language submit as null.
func (f *formModel) payload() api.ItemPayload {
	payload := api.ItemPayload{
		Title:    strings.TrimSpace(f.title.Value()),
		Content:  f.content.Value(),
		ItemType: f.itemType,
		Tags:     render.ParseTags(f.tags.Value()),
	}
	if v := strings.TrimSpace(f.url.Value()); v != "" {
		payload.URL = &v
	}
	if v := strings.TrimSpace(f.language.Value()); v != "" {
		payload.Language = &v
	}
	return payload
}
