package validation

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

var (
	listingIDPattern = regexp.MustCompile(`^[0-9]{1,20}$`)
	emailPattern     = regexp.MustCompile(`^[^\s@<>]+@[^\s@<>]+\.[^\s@<>]{2,}$`)
	phonePattern     = regexp.MustCompile(`^[0-9+()/\s.-]+$`)
)

// Field limits of the contact form
const (
	MaxNameLength    = 100
	MaxEmailLength   = 254
	MaxPhoneLength   = 40
	MaxSubjectLength = 150
	MaxMessageLength = 5000
)

// ValidateListingID validates that a listing id is a provider ad id (digits only)
func ValidateListingID(id string) error {
	if !listingIDPattern.MatchString(id) {
		return errors.New("listing id must contain only digits")
	}
	return nil
}

// ValidateEmail checks the rough shape of an address; the relay does the rest
func ValidateEmail(email string) error {
	if utf8.RuneCountInString(email) > MaxEmailLength || !emailPattern.MatchString(email) {
		return errors.New("Bitte eine gültige E-Mail-Adresse angeben.")
	}
	return nil
}

// ValidatePhone accepts an empty value or digits with common separators
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if utf8.RuneCountInString(phone) > MaxPhoneLength {
		return fmt.Errorf("Telefonnummer darf höchstens %d Zeichen lang sein.", MaxPhoneLength)
	}
	if !phonePattern.MatchString(phone) {
		return errors.New("Telefonnummer enthält ungültige Zeichen.")
	}
	return nil
}

func maxLength(label, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return fmt.Errorf("%s darf höchstens %d Zeichen lang sein.", label, limit)
	}
	return nil
}

// ValidateContactFields checks trimmed contact form fields. Presence of the
// required fields is checked by the caller.
func ValidateContactFields(name, email, phone, subject, message string) error {
	if err := maxLength("Name", name, MaxNameLength); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePhone(phone); err != nil {
		return err
	}
	if err := maxLength("Betreff", subject, MaxSubjectLength); err != nil {
		return err
	}
	return maxLength("Nachricht", message, MaxMessageLength)
}
