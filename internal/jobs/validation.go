package jobs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	messageInputMissing = "Input missing"
	messageInvalidInput = "Invalid input"
)

// fields is checked in declaration order; the first failing field wins.
type fields struct {
	Company     string `validate:"required,max=50"`
	Title       string `validate:"required,max=50"`
	Description string `validate:"required,max=255"`
	StartDate   string `validate:"required,datetime=2006-01-02"`
	EndDate     string `validate:"omitempty,datetime=2006-01-02"`
}

var missingDetails = map[string]string{
	"Company":     "You must fill out name of company",
	"Title":       "You must fill out jobtitle",
	"Description": "You must fill out job description",
	"StartDate":   "You must fill out start date",
}

var labels = map[string]string{
	"Company":     "company",
	"Title":       "title",
	"Description": "description",
	"StartDate":   "startDate",
	"EndDate":     "endDate",
}

var validate = validator.New()

// Validate trims and checks in, returning the job to persist.
// An empty, null or placeholder end date means the employment is ongoing.
func Validate(in Input) (Job, error) {
	f := fields{
		Company:     strings.TrimSpace(in.Company),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		StartDate:   strings.TrimSpace(in.StartDate),
	}
	if f.Company == "" {
		f.Company = strings.TrimSpace(in.Employer)
	}
	if in.EndDate != nil {
		end := strings.TrimSpace(*in.EndDate)
		if end != OngoingPlaceholder {
			f.EndDate = end
		}
	}

	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return Job{}, err
		}
		return Job{}, toValidationError(pickError(verrs))
	}

	job := Job{
		Company:     f.Company,
		Title:       f.Title,
		Description: f.Description,
		StartDate:   f.StartDate,
	}
	if f.EndDate != "" {
		end := f.EndDate
		job.EndDate = &end
	}
	return job, nil
}

// pickError prefers the first missing field over any format problem so that
// presence is always reported in field order.
func pickError(verrs validator.ValidationErrors) validator.FieldError {
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return fe
		}
	}
	return verrs[0]
}

func toValidationError(fe validator.FieldError) *ValidationError {
	label := labels[fe.Field()]
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: label, Message: messageInputMissing, Details: missingDetails[fe.Field()]}
	case "max":
		return &ValidationError{
			Field:   label,
			Message: messageInvalidInput,
			Details: fmt.Sprintf("%s must be at most %s characters", label, fe.Param()),
		}
	case "datetime":
		return &ValidationError{
			Field:   label,
			Message: messageInvalidInput,
			Details: label + " must be a date in the format YYYY-MM-DD",
		}
	default:
		return &ValidationError{Field: label, Message: messageInvalidInput, Details: label + " is invalid"}
	}
}
