package service

import (
	"regexp"
	"strings"

	"floral-studio/internal/response"
)

var emailPattern = regexp.MustCompile(`^[A-Z0-9a-z._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,64}$`)

// isValidEmail reports whether the whole string is an email address
func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// normalizePhone strips every non-digit. ok is false unless exactly ten digits remain.
func normalizePhone(phone string) (digits string, ok bool) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits = b.String()
	return digits, len(digits) == 10
}

func requireField(value, field, message string) error {
	if strings.TrimSpace(value) == "" {
		return response.NewValidationError(message, field)
	}
	return nil
}

// validateContact checks the optional email and phone of a client and normalizes the phone in place
func validateContact(email, phone *string) error {
	if email != nil && *email != "" && !isValidEmail(*email) {
		return response.NewValidationError("Email address is invalid", "email")
	}
	if phone != nil && *phone != "" {
		digits, ok := normalizePhone(*phone)
		if !ok {
			return response.NewValidationError("Phone number must have 10 digits", "phone")
		}
		*phone = digits
	}
	return nil
}
