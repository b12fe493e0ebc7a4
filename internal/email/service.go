// Package email sends verification codes over SMTP.
package email

import (
	"fmt"
	"log"
	"net/smtp"
)

// Config holds SMTP configuration
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Service provides email sending
type Service struct {
	config Config
	server string
	auth   smtp.Auth
}

// NewService creates a new email service
func NewService(config Config) *Service {
	auth := smtp.PlainAuth("", config.Username, config.Password, config.Host)

	return &Service{
		config: config,
		server: config.Host + ":" + config.Port,
		auth:   auth,
	}
}

// IsConfigured returns true if email is configured
func (s *Service) IsConfigured() bool {
	return s.config.Host != "" && s.config.Port != "" && s.config.From != ""
}

// SendVerificationCode emails a one-time code. Without SMTP configuration the
// code is logged instead so local development still works.
func (s *Service) SendVerificationCode(to, code string) error {
	if !s.IsConfigured() {
		log.Printf("[verification code] %s -> %s", to, code)
		return nil
	}

	subject := "Your verification code"
	body := fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)

	msg := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"From: %s\r\n"+
			"Subject: %s\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		to,
		s.config.From,
		subject,
		body,
	))

	return smtp.SendMail(s.server, s.auth, s.config.From, []string{to}, msg)
}
