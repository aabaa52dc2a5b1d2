package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

// Outcome is what the visitor sees after pressing send
type Outcome int

const (
	// Rejected means the form was refused locally; nothing was sent
	Rejected Outcome = iota
	Success
	ValidationFailure
	TransportFailure
)

func (o Outcome) String() string {
	switch o {
	case Rejected:
		return "rejected"
	case Success:
		return "success"
	case ValidationFailure:
		return "validation_failure"
	case TransportFailure:
		return "transport_failure"
	default:
		return "unknown"
	}
}

// Visitor facing messages of the form
const (
	MsgFillRequired   = "Bitte Name, E-Mail und Nachricht ausfüllen."
	MsgConfirmPrivacy = "Bitte Datenschutzerklärung bestätigen."
	MsgSent           = "Danke! Ihre Nachricht wurde erfolgreich gesendet."
	MsgSendFailed     = "Senden fehlgeschlagen. Bitte erneut versuchen."
	MsgNetworkError   = "Netzwerkfehler. Bitte erneut versuchen."
)

// ErrSubmissionPending is returned while another submission is in flight
var ErrSubmissionPending = errors.New("a contact submission is already in flight")

// Result pairs an outcome with the message to display
type Result struct {
	Outcome Outcome
	Message string
}

// Submitter posts the contact form to the site, one request at a time
type Submitter struct {
	endpoint   string
	httpClient *http.Client
	inFlight   atomic.Bool
}

// NewSubmitter posts to endpoint, e.g. "https://example.de/api/contact"
func NewSubmitter(endpoint string, httpClient *http.Client) *Submitter {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Submitter{endpoint: endpoint, httpClient: httpClient}
}

// Pending reports whether a submission is in flight
func (s *Submitter) Pending() bool {
	return s.inFlight.Load()
}

// Submit checks the form locally and, if it passes, sends it. The only
// error is ErrSubmissionPending; everything else is reported as a Result.
func (s *Submitter) Submit(ctx context.Context, req Request) (Result, error) {
	req = Request{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		Agreement: req.Agreement,
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return Result{Outcome: Rejected, Message: MsgFillRequired}, nil
	}
	if !req.Agreement {
		return Result{Outcome: Rejected, Message: MsgConfirmPrivacy}, nil
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrSubmissionPending
	}
	defer s.inFlight.Store(false)

	return s.post(ctx, req), nil
}

func (s *Submitter) post(ctx context.Context, req Request) Result {
	payload, err := json.Marshal(req)
	if err != nil {
		return Result{Outcome: TransportFailure, Message: MsgNetworkError}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{Outcome: TransportFailure, Message: MsgNetworkError}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return Result{Outcome: TransportFailure, Message: MsgNetworkError}
	}
	defer resp.Body.Close()

	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 16<<10))
	_ = json.Unmarshal(raw, &body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return Result{Outcome: Success, Message: MsgSent}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return Result{Outcome: ValidationFailure, Message: orDefault(body.Error, MsgSendFailed)}
	default:
		return Result{Outcome: TransportFailure, Message: orDefault(body.Error, MsgSendFailed)}
	}
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}

// String renders a result for logs and the command line
func (r Result) String() string {
	return fmt.Sprintf("%s: %s", r.Outcome, r.Message)
}
