package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a field-scoped validation failure
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

// newValidator builds the schema validator, reporting fields under their
// JSON names so error paths match the request payload
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate runs struct-tag validation and returns field-scoped errors.
// A nil return means the input passed.
func Validate(s interface{}) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	fieldErrors := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe),
		})
	}
	return fieldErrors
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid4":
		return "must be a valid UUID"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "has an invalid time format"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// TimeRangeOrdered reports whether from precedes to. Zero-padded "HH:MM"
// or "HH:MM:SS" strings compare lexicographically the same way they
// compare chronologically within one day, so plain string comparison is
// intentional here.
func TimeRangeOrdered(from, to string) bool {
	return from < to
}

// IsJSON reports whether s parses as JSON
func IsJSON(s string) bool {
	return json.Valid([]byte(s))
}

// AppointmentCreateInput is the booking payload, shared by the session
// and automation surfaces
type AppointmentCreateInput struct {
	ClinicID                string `json:"clinicId" validate:"required,uuid4"`
	ClientID                string `json:"clientId" validate:"required,uuid4"`
	ProfessionalID          string `json:"professionalId" validate:"required,uuid4"`
	Date                    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time                    string `json:"time" validate:"required,datetime=15:04:05"`
	AppointmentPriceInCents int    `json:"appointmentPriceInCents" validate:"required,min=1"`
}

// AppointmentUpdateInput reschedules an existing appointment
type AppointmentUpdateInput struct {
	ProfessionalID          string `json:"professionalId" validate:"required,uuid4"`
	Date                    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time                    string `json:"time" validate:"required,datetime=15:04:05"`
	AppointmentPriceInCents int    `json:"appointmentPriceInCents" validate:"required,min=1"`
}

// AppointmentStatusInput carries a status transition
type AppointmentStatusInput struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed cancelled"`
}

// ClientUpsertInput is the client payload; the automation surface merges
// the path clinicId before validating
type ClientUpsertInput struct {
	Name  string `json:"name" validate:"required,min=2,max=255"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"required,min=8,max=20"`
	Sex   string `json:"sex" validate:"omitempty,oneof=male female"`
}

// ProfessionalInput creates or updates a professional
type ProfessionalInput struct {
	Name                    string `json:"name" validate:"required,min=2,max=255"`
	Specialty               string `json:"specialty" validate:"omitempty,max=100"`
	AvailableFromWeekday    int    `json:"availableFromWeekday" validate:"min=0,max=6"`
	AvailableToWeekday      int    `json:"availableToWeekday" validate:"min=0,max=6"`
	AvailableFromTime       string `json:"availableFromTime" validate:"required,datetime=15:04:05"`
	AvailableToTime         string `json:"availableToTime" validate:"required,datetime=15:04:05"`
	AppointmentPriceInCents int    `json:"appointmentPriceInCents" validate:"required,min=1"`
}

// Refine applies the cross-field rule the tags cannot express: the daily
// window must be ordered. The error is attached to the end field.
func (in *ProfessionalInput) Refine() []FieldError {
	if !TimeRangeOrdered(in.AvailableFromTime, in.AvailableToTime) {
		return []FieldError{{
			Field:   "availableToTime",
			Message: "end time must be after start time",
		}}
	}
	return nil
}

// OperatingHourInput is one weekday opening window
type OperatingHourInput struct {
	Weekday  int    `json:"weekday" validate:"min=0,max=6"`
	OpensAt  string `json:"opensAt" validate:"required,datetime=15:04"`
	ClosesAt string `json:"closesAt" validate:"required,datetime=15:04"`
}

// OperatingHoursInput replaces a clinic's full weekly schedule
type OperatingHoursInput struct {
	Hours []OperatingHourInput `json:"hours" validate:"required,min=1,dive"`
}

// Refine checks each window is ordered, attaching errors to the closing
// field of the offending entry
func (in *OperatingHoursInput) Refine() []FieldError {
	var fieldErrors []FieldError
	for i, h := range in.Hours {
		if !TimeRangeOrdered(h.OpensAt, h.ClosesAt) {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   fmt.Sprintf("hours[%d].closesAt", i),
				Message: "closing time must be after opening time",
			})
		}
	}
	return fieldErrors
}

// PersonaInput configures the clinic's AI assistant
type PersonaInput struct {
	Name                  string `json:"name" validate:"required,min=2,max=100"`
	Tone                  string `json:"tone" validate:"omitempty,max=50"`
	PersonaRules          string `json:"personaRules"`
	AppointmentFlowScript string `json:"appointmentFlowScript"`
	ForbiddenTopics       string `json:"forbiddenTopics"`
}

// Refine checks the free-text fields parse as JSON. Only parseability is
// asserted; the shape of the parsed document is not validated.
func (in *PersonaInput) Refine() []FieldError {
	var fieldErrors []FieldError
	for _, f := range []struct {
		field string
		value string
	}{
		{"personaRules", in.PersonaRules},
		{"appointmentFlowScript", in.AppointmentFlowScript},
		{"forbiddenTopics", in.ForbiddenTopics},
	} {
		field, value := f.field, f.value
		if value != "" && !IsJSON(value) {
			fieldErrors = append(fieldErrors, FieldError{
				Field:   field,
				Message: "must be valid JSON",
			})
		}
	}
	return fieldErrors
}
