package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"Content":      "Resume content",
	"Track":        "Track",
	"JobType":      "Job type",
	"PracticeType": "Practice type",
	"Education":    "Education",
	"PhoneNumber":  "Phone number",
	"Slot":         "Document slot",
	"Status":       "Status",
	"Comment":      "Comment",
	"ScheduledAt":  "Scheduled time",
	"HireDate":     "Hire date",
	"Message":      "Message",
}

// fieldLabel returns the user-facing label for a struct field
func fieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}

// FieldErrors converts validator errors into a field -> message map suitable
// for rendering next to form inputs
func FieldErrors(err error) map[string]string {
	fields := map[string]string{}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		fields["non_field_errors"] = err.Error()
		return fields
	}

	for _, fe := range validationErrs {
		label := fieldLabel(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = fmt.Sprintf("%s is required", label)
		case "oneof":
			fields[fe.Field()] = fmt.Sprintf("%s must be one of: %s", label, fe.Param())
		case "valid_phone":
			fields[fe.Field()] = fmt.Sprintf("%s must be a valid phone number", label)
		case "max":
			fields[fe.Field()] = fmt.Sprintf("%s is too long (max %s)", label, fe.Param())
		default:
			fields[fe.Field()] = fmt.Sprintf("%s is invalid", label)
		}
	}

	return fields
}
