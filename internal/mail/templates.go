package mail

import (
	"html"

	"github.com/osteele/liquid"

	"github.com/coproptech/maintenance-service/internal/domain"
)

// RenderedMessage is the output of a template render.
type RenderedMessage struct {
	Subject  string
	HTMLBody string
	TextBody string
}

// Renderer produces notification content for ticket events. Implementations
// must be pure: same inputs, same output, no I/O.
type Renderer interface {
	TicketCreated(ticket *domain.Ticket) (RenderedMessage, error)
	TicketAssigned(ticket *domain.Ticket, assignee *domain.User) (RenderedMessage, error)
	TicketStatusChanged(ticket *domain.Ticket, oldStatus domain.TicketStatus) (RenderedMessage, error)
	CommentAdded(ticket *domain.Ticket, comment *domain.Comment) (RenderedMessage, error)
	PasswordReset(user *domain.User, token string) (RenderedMessage, error)
}

const (
	ticketCreatedSubjectTpl = `Nouveau ticket : {{ title }}`
	ticketCreatedHTMLTpl    = `<h2>Nouveau ticket de maintenance</h2><p><strong>{{ title }}</strong></p><p>{{ description }}</p>`
	ticketCreatedTextTpl    = `Nouveau ticket de maintenance : {{ title }}

{{ description }}`

	ticketAssignedSubjectTpl = `Ticket qui vous est assigné : {{ title }}`
	ticketAssignedHTMLTpl    = `<h2>Un ticket vous a été assigné</h2><p>Bonjour {{ name }},</p><p>Le ticket <strong>{{ title }}</strong> vous a été assigné.</p>`
	ticketAssignedTextTpl    = `Bonjour {{ name }},

Le ticket "{{ title }}" vous a été assigné.`

	statusChangedSubjectTpl = `Ticket {{ title }} : {{ new_status }}`
	statusChangedHTMLTpl    = `<h2>Changement de statut</h2><p>Le ticket <strong>{{ title }}</strong> est passé de {{ old_status }} à {{ new_status }}.</p>`
	statusChangedTextTpl    = `Le ticket "{{ title }}" est passé de {{ old_status }} à {{ new_status }}.`

	commentAddedSubjectTpl = `Nouveau commentaire sur : {{ title }}`
	commentAddedHTMLTpl    = `<h2>Nouveau commentaire</h2><p>Ticket : <strong>{{ title }}</strong></p><blockquote>{{ content }}</blockquote>`
	commentAddedTextTpl    = `Nouveau commentaire sur le ticket "{{ title }}" :

{{ content }}`

	passwordResetSubjectTpl = `Réinitialisation de votre mot de passe`
	passwordResetHTMLTpl    = `<p>Bonjour {{ name }},</p><p>Votre code de réinitialisation : <strong>{{ token }}</strong></p>`
	passwordResetTextTpl    = `Bonjour {{ name }},

Votre code de réinitialisation : {{ token }}`
)

// LiquidRenderer renders notification templates with the Liquid engine.
// User-controlled strings are HTML-escaped before being bound into HTML
// bodies; text bodies receive them verbatim.
type LiquidRenderer struct {
	engine *liquid.Engine
}

// NewLiquidRenderer constructs the renderer.
func NewLiquidRenderer() *LiquidRenderer {
	return &LiquidRenderer{engine: liquid.NewEngine()}
}

func (r *LiquidRenderer) TicketCreated(ticket *domain.Ticket) (RenderedMessage, error) {
	raw := liquid.Bindings{
		"title":       ticket.Title,
		"description": ticket.Description,
	}
	return r.render(ticketCreatedSubjectTpl, ticketCreatedHTMLTpl, ticketCreatedTextTpl, raw)
}

func (r *LiquidRenderer) TicketAssigned(ticket *domain.Ticket, assignee *domain.User) (RenderedMessage, error) {
	raw := liquid.Bindings{
		"title": ticket.Title,
		"name":  assignee.FullName(),
	}
	return r.render(ticketAssignedSubjectTpl, ticketAssignedHTMLTpl, ticketAssignedTextTpl, raw)
}

func (r *LiquidRenderer) TicketStatusChanged(ticket *domain.Ticket, oldStatus domain.TicketStatus) (RenderedMessage, error) {
	raw := liquid.Bindings{
		"title":      ticket.Title,
		"old_status": string(oldStatus),
		"new_status": string(ticket.Status),
	}
	return r.render(statusChangedSubjectTpl, statusChangedHTMLTpl, statusChangedTextTpl, raw)
}

func (r *LiquidRenderer) CommentAdded(ticket *domain.Ticket, comment *domain.Comment) (RenderedMessage, error) {
	raw := liquid.Bindings{
		"title":   ticket.Title,
		"content": comment.Content,
	}
	return r.render(commentAddedSubjectTpl, commentAddedHTMLTpl, commentAddedTextTpl, raw)
}

func (r *LiquidRenderer) PasswordReset(user *domain.User, token string) (RenderedMessage, error) {
	raw := liquid.Bindings{
		"name":  user.FullName(),
		"token": token,
	}
	return r.render(passwordResetSubjectTpl, passwordResetHTMLTpl, passwordResetTextTpl, raw)
}

func (r *LiquidRenderer) render(subjectTpl, htmlTpl, textTpl string, raw liquid.Bindings) (RenderedMessage, error) {
	subject, err := r.engine.ParseAndRenderString(subjectTpl, raw)
	if err != nil {
		return RenderedMessage{}, err
	}
	htmlBody, err := r.engine.ParseAndRenderString(htmlTpl, escapeBindings(raw))
	if err != nil {
		return RenderedMessage{}, err
	}
	textBody, err := r.engine.ParseAndRenderString(textTpl, raw)
	if err != nil {
		return RenderedMessage{}, err
	}
	return RenderedMessage{Subject: subject, HTMLBody: htmlBody, TextBody: textBody}, nil
}

// escapeBindings escapes every string value against the five HTML-significant
// characters before interpolation into HTML bodies.
func escapeBindings(raw liquid.Bindings) liquid.Bindings {
	escaped := make(liquid.Bindings, len(raw))
	for key, value := range raw {
		if s, ok := value.(string); ok {
			escaped[key] = html.EscapeString(s)
		} else {
			escaped[key] = value
		}
	}
	return escaped
}
