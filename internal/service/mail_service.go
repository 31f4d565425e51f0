package service

import (
	"fmt"
	"linguacert_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// MailService delivers the transactional mails the auth flows depend on.
// Sending is synchronous; a failed send fails the request so the caller
// never believes a code is on its way when it is not.
type MailService struct {
	Config *config.SMTPConfig
}

func NewMailService(cfg *config.SMTPConfig) *MailService {
	return &MailService{Config: cfg}
}

func (s *MailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.Config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Config.Host, s.Config.Port, s.Config.User, s.Config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

func (s *MailService) SendVerificationCode(to, code string) error {
	body := fmt.Sprintf(`<p>Your email verification code is:</p>
<h2>%s</h2>
<p>The code expires in 10 minutes.</p>`, code)
	return s.send(to, "Verify your email", body)
}

func (s *MailService) SendLoginOTP(to, code string) error {
	body := fmt.Sprintf(`<p>Your one-time login code is:</p>
<h2>%s</h2>
<p>The code expires in 10 minutes. If you did not try to sign in, ignore this mail.</p>`, code)
	return s.send(to, "Your login code", body)
}

func (s *MailService) SendResetCode(to, code string) error {
	body := fmt.Sprintf(`<p>Your password reset code is:</p>
<h2>%s</h2>
<p>The code expires in 10 minutes. If you did not request a reset, ignore this mail.</p>`, code)
	return s.send(to, "Reset your password", body)
}
