// FILE: internal/pkg/mailer/email_service.go
package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendPayoutResolved(toEmail, clientName, payoutType string, amount float64, discountCode string) error
	SendGuaranteeActivated(toEmail, clientName, templateName string, durationDays int) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendPayoutResolved(toEmail, clientName, payoutType string, amount float64, discountCode string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your Guarantee Payout Has Been Processed")

	label := strings.ReplaceAll(payoutType, "_", " ")
	codeBlock := ""
	if discountCode != "" {
		codeBlock = fmt.Sprintf(`
			<p>Your credit code:</p>
			<h1 style="color: #4CAF50; letter-spacing: 3px;">%s</h1>
			<p>Apply it at checkout on your next purchase.</p>
		`, discountCode)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s,</h2>
			<p>Good news: your guarantee payout (%s) for $%.2f has been processed.</p>
			%s
			<p>Reply to this email if anything looks off.</p>
		</div>
	`, clientName, label, amount, codeBlock)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send payout notice to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Payout notice sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendGuaranteeActivated(toEmail, clientName, templateName string, durationDays int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your Guarantee Is Active")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s,</h2>
			<p>Your "%s" guarantee is now active.</p>
			<p>You have %d days to complete the guarantee conditions. Track your
			progress from your client dashboard.</p>
		</div>
	`, clientName, templateName, durationDays)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send activation notice to %s: %v\n", toEmail, err)
		return err
	}

	return nil
}
