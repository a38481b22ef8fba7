package domain

import "context"

// Mailer sends a single email. Implementations: SES, noop.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders a named email template into subject, html, and
// text bodies.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}

// GuestInvitationEmailData is the template data for a guest invitation email.
type GuestInvitationEmailData struct {
	GuestName  string
	GuestEmail string
	EventName  string
	EventDate  string
	HostName   string
}

// EmailService sends application emails.
type EmailService interface {
	SendGuestInvitation(ctx context.Context, data *GuestInvitationEmailData) error
}
