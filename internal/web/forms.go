package web

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"brian/internal/api"
	"brian/internal/render"
)

// ItemForm is the item create/edit form as submitted. Browser-level
// required attributes are the first line of validation; the handler
// re-checks here because a server-rendered app cannot trust them.
type ItemForm struct {
	ID       string
	Title    string       `validate:"required,max=200"`
	Content  string       `validate:"required"`
	ItemType api.ItemType `validate:"required,oneof=link note snippet paper"`
	URL      string       `validate:"omitempty,url"`
	Language string
	Tags     string
}

func parseItemForm(r *http.Request) ItemForm {
	return ItemForm{
		ID:       r.FormValue("id"),
		Title:    strings.TrimSpace(r.FormValue("title")),
		Content:  r.FormValue("content"),
		ItemType: api.ItemType(r.FormValue("item_type")),
		URL:      strings.TrimSpace(r.FormValue("url")),
		Language: strings.TrimSpace(r.FormValue("language")),
		Tags:     r.FormValue("tags"),
	}
}

// Payload converts the form into the API payload. Empty url and
// language submit as null, and the type-irrelevant field is kept as
// typed (the form hides, never clears, so the original behavior is to
// send whatever is stored).
func (f ItemForm) Payload() api.ItemPayload {
	payload := api.ItemPayload{
		Title:    f.Title,
		Content:  f.Content,
		ItemType: f.ItemType,
		Tags:     render.ParseTags(f.Tags),
	}
	if f.URL != "" {
		url := f.URL
		payload.URL = &url
	}
	if f.Language != "" {
		lang := f.Language
		payload.Language = &lang
	}
	return payload
}

// formFromItem prefills the form for editing.
func formFromItem(item *api.KnowledgeItem) ItemForm {
	f := ItemForm{
		ID:       item.ID,
		Title:    item.Title,
		Content:  item.Content,
		ItemType: item.ItemType,
		Tags:     strings.Join(item.Tags, ", "),
	}
	if item.URL != nil {
		f.URL = *item.URL
	}
	if item.Language != nil {
		f.Language = *item.Language
	}
	return f
}

var validate = validator.New()

// validationMessage flattens validator errors into one user-facing
// line.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Field() {
		case "Title":
			parts = append(parts, "title is required")
		case "Content":
			parts = append(parts, "content is required")
		case "ItemType":
			parts = append(parts, "item type must be link, note, snippet or paper")
		case "URL":
			parts = append(parts, "url must be a valid URL")
		default:
			parts = append(parts, fe.Field()+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}
