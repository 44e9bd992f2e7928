package services

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"

	"movie-reviews-backend/internal/config"
)

type EmailService struct {
	config *config.Config
}

func NewEmailService(config *config.Config) *EmailService {
	return &EmailService{config: config}
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true}

	return d.DialAndSend(m)
}

func (s *EmailService) SendConfirmationCode(email, username, code string) error {
	subject := "Confirm your account"
	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your confirmation code is:</p>
		<h3>%s</h3>
		<p>Enter it at the confirm signup endpoint to activate your account.</p>
	`, username, code)

	return s.SendEmail(email, subject, body)
}
