package message

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// PlaceholderName is replaced with the recipient display name.
	PlaceholderName = "{name}"
	// PlaceholderInviteLink is replaced with the recipient invite URL.
	PlaceholderInviteLink = "{invite_link}"
)

// DefaultTemplateText is the stock event reminder. The RSVP cutoff date is
// part of the static text.
const DefaultTemplateText = "¡Hola {name}! 💍\n\n" +
	"Este es un recordatorio de nuestro evento. Por favor confirma tu asistencia en la página:\n{invite_link}\n\n" +
	"Tienes hasta el 20/12/2025 para poder reservar tu asiento. ¡Esperamos verte! 🤍"

// Template renders reminder messages.
type Template struct {
	text string
}

// DefaultTemplate returns the stock reminder template.
func DefaultTemplate() *Template {
	return &Template{text: DefaultTemplateText}
}

// ParseTemplate validates that text carries each placeholder exactly once.
func ParseTemplate(text string) (*Template, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("template is empty")
	}
	for _, placeholder := range []string{PlaceholderName, PlaceholderInviteLink} {
		switch n := strings.Count(text, placeholder); n {
		case 1:
		case 0:
			return nil, fmt.Errorf("template is missing %s", placeholder)
		default:
			return nil, fmt.Errorf("template uses %s %d times, expected once", placeholder, n)
		}
	}
	return &Template{text: text}, nil
}

// Text returns the raw template text.
func (t *Template) Text() string {
	if t == nil {
		return DefaultTemplateText
	}
	return t.text
}

// Render fills the template. Values are inserted literally in one pass.
func (t *Template) Render(name, inviteLink string) string {
	r := strings.NewReplacer(PlaceholderName, name, PlaceholderInviteLink, inviteLink)
	return r.Replace(t.Text())
}
