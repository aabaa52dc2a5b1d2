package contact

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Message is a fully built mail ready for a Mailer
type Message struct {
	ID       string
	From     string
	To       string
	ReplyTo  string
	Subject  string
	Text     string
	HTML     string
	Customer Request
}

// BuildMessage turns a normalized request into a mail for the dealer.
// Replies go to the visitor.
func BuildMessage(req Request, from, to string) (*Message, error) {
	body, err := htmlBody(req)
	if err != nil {
		return nil, err
	}
	return &Message{
		ID:       uuid.NewString(),
		From:     from,
		To:       to,
		ReplyTo:  req.Email,
		Subject:  "Kontaktformular: " + req.Subject,
		Text:     textBody(req),
		HTML:     body,
		Customer: req,
	}, nil
}

func textBody(req Request) string {
	lines := []string{
		"Neue Kontaktanfrage",
		"Name: " + req.Name,
		"E-Mail: " + req.Email,
	}
	if req.Phone != "" {
		lines = append(lines, "Telefon: "+req.Phone)
	}
	lines = append(lines, "Betreff: "+req.Subject, "", req.Message)
	return strings.Join(lines, "\n")
}

func htmlBody(req Request) (string, error) {
	root := el(atom.Div, "style", "font-family:Arial,sans-serif;line-height:1.5")

	h2 := el(atom.H2)
	h2.AppendChild(text("Neue Kontaktanfrage"))
	root.AppendChild(h2)

	root.AppendChild(labelled("Name:", req.Name))
	root.AppendChild(labelled("E-Mail:", req.Email))
	if req.Phone != "" {
		root.AppendChild(labelled("Telefon:", req.Phone))
	}
	root.AppendChild(labelled("Betreff:", req.Subject))
	root.AppendChild(el(atom.Hr))

	msg := el(atom.P, "style", "white-space:pre-wrap")
	msg.AppendChild(text(req.Message))
	root.AppendChild(msg)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("failed to render contact mail: %w", err)
	}
	return buf.String(), nil
}

func labelled(label, value string) *html.Node {
	p := el(atom.P)
	b := el(atom.B)
	b.AppendChild(text(label))
	p.AppendChild(b)
	p.AppendChild(text(" " + value))
	return p
}

// el builds an element; attrs are key/value pairs
func el(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
