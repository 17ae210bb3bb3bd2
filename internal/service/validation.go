package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"diaryapi/internal/model"
)

// Client-facing validation messages.
const (
	msgRequired   = "This field is required."
	msgNull       = "This field may not be null."
	msgBlank      = "This field may not be blank."
	msgNotString  = "Not a valid string."
	msgMaxLength  = "Ensure this field has no more than %s characters."
	msgDateFormat = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
)

// DiaryEntryInput is a decoded request body keyed by JSON field name.
// Keys other than the writable fields (id, upload_date, anything unknown) are ignored.
type DiaryEntryInput map[string]any

// ValidationError maps each failing field to its messages.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid diary entry: " + strings.Join(names, ", ")
}

// fieldRule binds a writable field to its validator tag and to the change it produces.
// Text fields take JSON numbers as their decimal string; date does not.
type fieldRule struct {
	name          string
	tag           string
	acceptNumbers bool
	typeError     string
	assign        func(ch *model.DiaryEntryChanges, v string)
}

var diaryEntryRules = []fieldRule{
	{
		name:          "title",
		tag:           "required,max=255",
		acceptNumbers: true,
		typeError:     msgNotString,
		assign:        func(ch *model.DiaryEntryChanges, v string) { ch.Title = &v },
	},
	{
		name:          "content",
		tag:           "required,max=1000",
		acceptNumbers: true,
		typeError:     msgNotString,
		assign:        func(ch *model.DiaryEntryChanges, v string) { ch.Content = &v },
	},
	{
		name:          "mood",
		tag:           "required,max=50",
		acceptNumbers: true,
		typeError:     msgNotString,
		assign:        func(ch *model.DiaryEntryChanges, v string) { ch.Mood = &v },
	},
	{
		name:      "date",
		tag:       "required,datetime=" + model.DateInputLayout,
		typeError: msgDateFormat,
		assign: func(ch *model.DiaryEntryChanges, v string) {
			// already checked by the datetime tag
			d, _ := model.ParseDate(v)
			ch.Date = &d
		},
	},
}

var validate = validator.New()

// validateInput runs every rule against in and collects all failures.
// With partial set, absent fields are skipped instead of reported as required.
func validateInput(in DiaryEntryInput, partial bool) (model.DiaryEntryChanges, error) {
	var changes model.DiaryEntryChanges
	failures := make(map[string][]string)

	for _, rule := range diaryEntryRules {
		raw, ok := in[rule.name]
		if !ok {
			if !partial {
				failures[rule.name] = append(failures[rule.name], msgRequired)
			}
			continue
		}
		if raw == nil {
			failures[rule.name] = append(failures[rule.name], msgNull)
			continue
		}
		s, ok := textValue(raw, rule.acceptNumbers)
		if !ok {
			failures[rule.name] = append(failures[rule.name], rule.typeError)
			continue
		}

		s = strings.TrimSpace(s)
		if err := validate.Var(s, rule.tag); err != nil {
			failures[rule.name] = append(failures[rule.name], messagesFor(err)...)
			continue
		}
		rule.assign(&changes, s)
	}

	if len(failures) > 0 {
		return model.DiaryEntryChanges{}, &ValidationError{Fields: failures}
	}
	return changes, nil
}

// textValue returns the string form of a decoded JSON value.
// Booleans, objects and arrays never qualify.
func textValue(raw any, acceptNumbers bool) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case float64:
		if acceptNumbers {
			return strconv.FormatFloat(v, 'f', -1, 64), true
		}
	case json.Number:
		if acceptNumbers {
			return v.String(), true
		}
	}
	return "", false
}

func messagesFor(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out = append(out, msgBlank)
		case "max":
			out = append(out, fmt.Sprintf(msgMaxLength, fe.Param()))
		case "datetime":
			out = append(out, msgDateFormat)
		default:
			out = append(out, fmt.Sprintf("Failed %s validation.", fe.Tag()))
		}
	}
	return out
}
