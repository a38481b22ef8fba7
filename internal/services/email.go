package services

import (
	"context"
	"fmt"

	"guestlist/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService creates an EmailService with the given mailer and renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{
		mailer:   mailer,
		renderer: renderer,
	}
}

func (s *emailService) SendGuestInvitation(_ context.Context, data *domain.GuestInvitationEmailData) error {
	subject, html, text, err := s.renderer.Render("guest_invitation", data)
	if err != nil {
		return fmt.Errorf("render guest invitation: %w", err)
	}
	if err := s.mailer.Send(data.GuestEmail, subject, html, text); err != nil {
		return fmt.Errorf("send guest invitation: %w", err)
	}
	return nil
}
