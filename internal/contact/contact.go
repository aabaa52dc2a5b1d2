// Package contact validates contact form submissions and delivers them by
// mail. The server side lives in Service; Submitter is the client used by
// the command line tool.
package contact

import (
	"errors"
	"strings"
)

// DefaultSubject is used when the visitor leaves the subject blank
const DefaultSubject = "Kontaktformular"

// DefaultRecipient is the dealer's inbox
const DefaultRecipient = "info@autocenter-juelich.de"

// Server side rejections. The messages are shown to the visitor as is.
var (
	ErrAgreementRequired = errors.New("Datenschutz muss bestätigt werden.")
	ErrMissingFields     = errors.New("Name, E-Mail und Nachricht sind Pflicht.")
)

// Request is the contact form payload
type Request struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Agreement bool   `json:"agreement"`
}

// Normalize trims every field and fills in the default subject
func (r Request) Normalize() Request {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
	if r.Subject == "" {
		r.Subject = DefaultSubject
	}
	return r
}

// Check applies the required-field rules to a normalized request. The
// agreement is checked first.
func (r Request) Check() error {
	if !r.Agreement {
		return ErrAgreementRequired
	}
	if r.Name == "" || r.Email == "" || r.Message == "" {
		return ErrMissingFields
	}
	return nil
}
