// Package form holds the entry forms submitted by the wiki pages.
package form

import (
	"net/url"
	"strings"

	"encyclopedia/pkg/entry"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldEdit    = "edit"
)

// ReservedTitles are names taken by fixed /wiki/ routes. An entry with one of
// them could never be viewed.
var ReservedTitles = []string{"search", "new-entry", "random"}

// NewEntry is submitted by the create page.
type NewEntry struct {
	Title   string
	Content string
}

func DecodeNewEntry(values url.Values) NewEntry {
	return NewEntry{
		Title:   strings.TrimSpace(values.Get(FieldTitle)),
		Content: strings.TrimSpace(values.Get(FieldContent)),
	}
}

func (f NewEntry) Validate() error {
	return validation.Errors{
		FieldTitle:   validation.Validate(f.Title, validation.Required.Error("title is required"), validation.By(usableTitle)),
		FieldContent: validation.Validate(f.Content, validation.Required.Error("content is required")),
	}.Filter()
}

// EditEntry is submitted by the edit page. The entry title comes from the URL.
type EditEntry struct {
	Edit string
}

func DecodeEditEntry(values url.Values) EditEntry {
	return EditEntry{Edit: strings.TrimSpace(values.Get(FieldEdit))}
}

func (f EditEntry) Validate() error {
	return validation.Errors{
		FieldEdit: validation.Validate(f.Edit, validation.Required.Error("content is required")),
	}.Filter()
}

// Messages flattens a validation error into per-field messages for the
// templates. Non-validation errors end up under the empty key.
func Messages(err error) map[string]string {
	if err == nil {
		return nil
	}
	msgs := map[string]string{}
	errs, ok := err.(validation.Errors)
	if !ok {
		msgs[""] = err.Error()
		return msgs
	}
	for field, fieldErr := range errs {
		if fieldErr != nil {
			msgs[field] = fieldErr.Error()
		}
	}
	return msgs
}

func usableTitle(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if err := entry.ValidateTitle(s); err != nil {
		return validation.NewError("validation_title_path", "title cannot contain slashes, dots only or NUL bytes")
	}
	for _, reserved := range ReservedTitles {
		if s == reserved {
			return validation.NewError("validation_title_reserved", "title is reserved")
		}
	}
	return nil
}
