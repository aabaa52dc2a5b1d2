// Command contact submits the contact form of a running site, the same way
// the browser form does.
//
//	contact -name "Anna" -email anna@example.com -message "Ist der Golf noch da?" -agree
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/mohamad-kareem/Autocenter-Juelich/internal/contact"
)

func main() {
	_ = godotenv.Load()

	defaultURL := os.Getenv("CONTACT_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080/api/contact"
	}

	endpoint := flag.String("url", defaultURL, "contact endpoint")
	name := flag.String("name", "", "sender name")
	email := flag.String("email", "", "sender e-mail")
	phone := flag.String("phone", "", "sender phone")
	subject := flag.String("subject", "", "subject, defaults to "+contact.DefaultSubject)
	message := flag.String("message", "", "message text")
	agree := flag.Bool("agree", false, "confirm the privacy policy")
	timeout := flag.Duration("timeout", 30*time.Second, "request timeout")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	submitter := contact.NewSubmitter(*endpoint, nil)
	result, err := submitter.Submit(ctx, contact.Request{
		Name:      *name,
		Email:     *email,
		Phone:     *phone,
		Subject:   *subject,
		Message:   *message,
		Agreement: *agree,
	})
	if err != nil {
		log.Fatal("Submission failed", "err", err)
	}

	if result.Outcome != contact.Success {
		log.Error("Not sent", "outcome", result.Outcome, "message", result.Message)
		os.Exit(1)
	}
	log.Info(result.Message, "endpoint", *endpoint)
}
