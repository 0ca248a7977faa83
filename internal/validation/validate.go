package validation

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"task-tracker/internal/models"
)

// DateLayout is the wire format for due dates: a bare calendar date.
const DateLayout = "2006-01-02"

const maxTitleLength = 200

// CreateTask is a normalized creation payload, ready for the repository.
type CreateTask struct {
	Title       string
	Description *string
	Status      models.Status
	DueDate     *time.Time
}

// UpdateTask is a normalized partial-update payload. Pointer fields are nil
// when the key was absent; the Set flags distinguish "clear this field" from
// "leave it alone" for the two nullable fields.
type UpdateTask struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *models.Status
	DueDate        *time.Time
	DueDateSet     bool
}

// ParseCreate validates and normalizes a task-creation body. It returns
// either a payload safe to persist or the full list of failures.
func ParseCreate(body []byte) (*CreateTask, Errors) {
	var in struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		DueDate     *string `json:"due_date"`
	}
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, Errors{{Code: CodeInvalidFormat, Message: "request body must be a valid JSON object"}}
	}

	var errs Errors
	out := &CreateTask{Status: models.StatusTodo}

	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		errs = append(errs, &Error{Code: CodeMissingField, Field: "title", Message: "title is required"})
	} else {
		out.Title = strings.TrimSpace(*in.Title)
		if utf8.RuneCountInString(out.Title) > maxTitleLength {
			errs = append(errs, &Error{Code: CodeInvalidFormat, Field: "title", Message: "title must be at most 200 characters"})
		}
	}

	out.Description = in.Description

	if in.Status != nil {
		status, err := models.ParseStatus(*in.Status)
		if err != nil {
			errs = append(errs, &Error{Code: CodeInvalidEnumValue, Field: "status", Message: err.Error()})
		} else {
			out.Status = status
		}
	}

	if in.DueDate != nil && *in.DueDate != "" {
		due, err := time.Parse(DateLayout, *in.DueDate)
		if err != nil {
			errs = append(errs, &Error{Code: CodeInvalidFormat, Field: "due_date", Message: "due_date must be a date in YYYY-MM-DD format"})
		} else {
			out.DueDate = &due
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// ParseUpdate validates a partial-update body. The body is decoded as a raw
// key set so that an explicit null can be told apart from an absent key;
// only keys present in the payload are validated and carried through.
func ParseUpdate(body []byte) (*UpdateTask, Errors) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, Errors{{Code: CodeInvalidFormat, Message: "request body must be a valid JSON object"}}
	}
	if len(fields) == 0 {
		return nil, Errors{{Code: CodeEmptyUpdate, Message: "no data provided"}}
	}

	var errs Errors
	out := &UpdateTask{}

	if raw, ok := fields["title"]; ok {
		title, ok := asString(raw)
		switch {
		case !ok:
			errs = append(errs, &Error{Code: CodeInvalidFormat, Field: "title", Message: "title must be a string"})
		case title == nil || strings.TrimSpace(*title) == "":
			errs = append(errs, &Error{Code: CodeMissingField, Field: "title", Message: "title cannot be empty"})
		default:
			trimmed := strings.TrimSpace(*title)
			if utf8.RuneCountInString(trimmed) > maxTitleLength {
				errs = append(errs, &Error{Code: CodeInvalidFormat, Field: "title", Message: "title must be at most 200 characters"})
			} else {
				out.Title = &trimmed
			}
		}
	}

	if raw, ok := fields["description"]; ok {
		desc, ok := asString(raw)
		if !ok {
			errs = append(errs, &Error{Code: CodeInvalidFormat, Field: "description", Message: "description must be a string or null"})
		} else {
			out.Description = desc
			out.DescriptionSet = true
		}
	}

	if raw, ok := fields["status"]; ok {
		s, ok := asString(raw)
		if !ok || s == nil {
			errs = append(errs, &Error{Code: CodeInvalidEnumValue, Field: "status", Message: "status must be one of [todo in_progress done]"})
		} else if status, err := models.ParseStatus(*s); err != nil {
			errs = append(errs, &Error{Code: CodeInvalidEnumValue, Field: "status", Message: err.Error()})
		} else {
			out.Status = &status
		}
	}

	if raw, ok := fields["due_date"]; ok {
		s, ok := asString(raw)
		switch {
		case !ok:
			errs = append(errs, &Error{Code: CodeInvalidFormat, Field: "due_date", Message: "due_date must be a date in YYYY-MM-DD format"})
		case s == nil || *s == "":
			// explicit null or empty string clears the due date
			out.DueDateSet = true
		default:
			due, err := time.Parse(DateLayout, *s)
			if err != nil {
				errs = append(errs, &Error{Code: CodeInvalidFormat, Field: "due_date", Message: "due_date must be a date in YYYY-MM-DD format"})
			} else {
				out.DueDate = &due
				out.DueDateSet = true
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// asString unmarshals a raw JSON value as a string. A JSON null yields
// (nil, true); a non-string value yields (nil, false).
func asString(raw json.RawMessage) (*string, bool) {
	if string(raw) == "null" {
		return nil, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	return &s, true
}
