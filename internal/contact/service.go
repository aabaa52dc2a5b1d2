package contact

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mohamad-kareem/Autocenter-Juelich/internal/validation"
)

// ValidationError rejects the payload itself. Its message is safe to show.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

// Service accepts contact requests and hands them to a Mailer
type Service struct {
	mailer Mailer
	from   string
	to     string
}

// NewService creates a service sending from `from` to `to`. An empty
// recipient means DefaultRecipient.
func NewService(mailer Mailer, from, to string) *Service {
	if to == "" {
		to = DefaultRecipient
	}
	return &Service{mailer: mailer, from: from, to: to}
}

// Submit validates req and delivers it. Rejections are *ValidationError;
// any other error is a delivery failure.
func (s *Service) Submit(ctx context.Context, req Request) (*Message, error) {
	req = req.Normalize()
	if err := req.Check(); err != nil {
		return nil, &ValidationError{Err: err}
	}
	if err := validation.ValidateContactFields(req.Name, req.Email, req.Phone, req.Subject, req.Message); err != nil {
		return nil, &ValidationError{Err: err}
	}

	msg, err := BuildMessage(req, s.from, s.to)
	if err != nil {
		return nil, err
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("contact %s: %w", msg.ID, err)
	}

	log.Info("Contact request delivered", "id", msg.ID, "subject", req.Subject)
	return msg, nil
}
