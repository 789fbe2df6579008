package moderation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"hackhub/models"

	"github.com/go-playground/validator/v10"
)

// Submission - тело запроса на публикацию хакатона.
// Даты принимаются строками ISO (2006-01-02 или RFC3339).
type Submission struct {
	Title                string   `json:"title" validate:"required,max=200"`
	College              string   `json:"college" validate:"required,max=200"`
	State                string   `json:"state" validate:"required"`
	District             string   `json:"district" validate:"required"`
	StartDate            string   `json:"startDate" validate:"required"`
	EndDate              string   `json:"endDate" validate:"required"`
	RegistrationDeadline string   `json:"registrationDeadline" validate:"required"`
	Description          string   `json:"description" validate:"required,max=5000"`
	Eligibility          string   `json:"eligibility" validate:"required"`
	Prizes               string   `json:"prizes" validate:"required"`
	TeamSize             TeamSize `json:"teamSize"`
	Tags                 []string `json:"tags" validate:"min=1,dive,required"`
	Website              string   `json:"website" validate:"omitempty,url"`
	Image                string   `json:"image" validate:"required"`
	ContactName          string   `json:"contactName" validate:"required"`
	ContactEmail         string   `json:"contactEmail" validate:"required,email"`
	ContactPhone         string   `json:"contactPhone" validate:"required"`
}

type TeamSize struct {
	Min int `json:"min" validate:"min=1,lte=100"`
	Max int `json:"max" validate:"gtefield=Min,lte=100"`
}

// ValidationError содержит ошибки по полям заявки
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", v)
}

// Build проверяет заявку и собирает из нее новый хакатон в статусе pending
func (s Submission) Build() (models.Hackathon, error) {
	fields := map[string]string{}

	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return models.Hackathon{}, err
		}
		for _, fe := range verrs {
			key := fieldKey(fe)
			if _, ok := fields[key]; !ok {
				fields[key] = fieldMessage(fe)
			}
		}
	}

	start, okStart := parseDateField(fields, "startDate", s.StartDate)
	end, okEnd := parseDateField(fields, "endDate", s.EndDate)
	deadline, okDeadline := parseDateField(fields, "registrationDeadline", s.RegistrationDeadline)

	if okStart && okEnd && end.Before(start) {
		fields["endDate"] = "must not be before startDate"
	}
	if okStart && okDeadline && start.Before(deadline) {
		fields["registrationDeadline"] = "must not be after startDate"
	}

	tags := normalizeTags(s.Tags)
	if len(tags) == 0 {
		if _, ok := fields["tags"]; !ok {
			fields["tags"] = "must contain at least 1 item(s)"
		}
	}

	if len(fields) > 0 {
		return models.Hackathon{}, &ValidationError{Fields: fields}
	}

	return models.Hackathon{
		Title:                strings.TrimSpace(s.Title),
		College:              strings.TrimSpace(s.College),
		State:                s.State,
		District:             s.District,
		StartDate:            start,
		EndDate:              end,
		RegistrationDeadline: deadline,
		Description:          s.Description,
		Eligibility:          s.Eligibility,
		Prizes:               s.Prizes,
		TeamSize:             models.TeamSize{Min: s.TeamSize.Min, Max: s.TeamSize.Max},
		Tags:                 tags,
		Website:              strings.TrimSpace(s.Website),
		Image:                strings.TrimSpace(s.Image),
		ContactName:          s.ContactName,
		ContactEmail:         s.ContactEmail,
		ContactPhone:         s.ContactPhone,
		IsVerified:           false,
		Status:               models.StatusPending,
	}, nil
}

func parseDateField(fields map[string]string, name, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := parseDate(raw)
	if err != nil {
		fields[name] = "must be an ISO date"
		return time.Time{}, false
	}
	return t, true
}

// normalizeTags убирает пустые теги и дубликаты, сохраняя порядок
func normalizeTags(in []string) []string {
	tags := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

// fieldKey: teamSize.min вместо Submission.teamSize.min, tags вместо tags[0]
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	if i := strings.Index(ns, "["); i >= 0 {
		ns = ns[:i]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gtefield":
		return "must be greater than or equal to teamSize.min"
	default:
		return "is invalid"
	}
}
