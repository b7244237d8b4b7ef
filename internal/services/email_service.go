package services

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

const welcomeEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333333; background-color: #f4f4f4; margin: 0; padding: 0; }
.container { padding: 20px; max-width: 600px; margin: 20px auto; background-color: #ffffff; border: 1px solid #dddddd; border-radius: 8px; }
.header { font-size: 24px; font-weight: bold; color: #2c5f8a; margin-bottom: 15px; }
.footer { margin-top: 20px; font-size: 12px; color: #777777; text-align: center; }
p { margin-bottom: 15px; }
</style>
</head>
<body>
<div class="container">
<p class="header">Welcome to StowPilot</p>
<p>Hi %s,</p>
<p>Your account is ready. Add your first facility, set up units, and start signing rentals.</p>
<div class="footer">The StowPilot Team</div>
</div>
</body>
</html>`

const teamInviteEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333333; background-color: #f4f4f4; margin: 0; padding: 0; }
.container { padding: 20px; max-width: 600px; margin: 20px auto; background-color: #ffffff; border: 1px solid #dddddd; border-radius: 8px; }
.header { font-size: 24px; font-weight: bold; color: #2c5f8a; margin-bottom: 15px; }
.footer { margin-top: 20px; font-size: 12px; color: #777777; text-align: center; }
p { margin-bottom: 15px; }
</style>
</head>
<body>
<div class="container">
<p class="header">You've been invited</p>
<p>%s has invited you to join their StowPilot workspace as a <strong>%s</strong>.</p>
<p>Sign in with this email address to accept the invitation.</p>
<div class="footer">The StowPilot Team</div>
</div>
</body>
</html>`

const paymentReceiptEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333333; background-color: #f4f4f4; margin: 0; padding: 0; }
.container { padding: 20px; max-width: 600px; margin: 20px auto; background-color: #ffffff; border: 1px solid #dddddd; border-radius: 8px; }
.header { font-size: 24px; font-weight: bold; color: #2e7d32; margin-bottom: 15px; }
.footer { margin-top: 20px; font-size: 12px; color: #777777; text-align: center; }
p { margin-bottom: 15px; }
</style>
</head>
<body>
<div class="container">
<p class="header">Payment Received</p>
<p>Hi %s,</p>
<p>We received your payment of <strong>$%.2f</strong> toward invoice <strong>%s</strong>.</p>
<p>Remaining balance: <strong>$%.2f</strong>.</p>
<div class="footer">The StowPilot Team</div>
</div>
</body>
</html>`

// EmailService wraps the SendGrid client. Every send is best-effort: callers
// log failures and move on, an email must never fail a request.
type EmailService struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
	sandbox   bool
}

func NewEmailService(client *sendgrid.Client, fromName, fromEmail string, sandbox bool) *EmailService {
	return &EmailService{
		client:    client,
		fromName:  fromName,
		fromEmail: fromEmail,
		sandbox:   sandbox,
	}
}

func (s *EmailService) send(toName, toEmail, subject, plain, html string) error {
	if s.client == nil {
		utils.Logger.Warnf("SendGrid client is nil, skipping email to %s", toEmail)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	msg := mail.NewSingleEmail(from, subject, to, plain, html)
	if s.sandbox {
		ms := mail.NewMailSettings()
		ms.SetSandboxMode(mail.NewSetting(true))
		msg.MailSettings = ms
	}

	resp, err := s.client.Send(msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (s *EmailService) SendWelcome(toName, toEmail string) error {
	html := fmt.Sprintf(welcomeEmailHTML, toName)
	plain := fmt.Sprintf("Hi %s, welcome to StowPilot. Your account is ready.", toName)
	return s.send(toName, toEmail, "Welcome to StowPilot", plain, html)
}

func (s *EmailService) SendTeamInvite(toEmail, inviterName, role string) error {
	html := fmt.Sprintf(teamInviteEmailHTML, inviterName, role)
	plain := fmt.Sprintf("%s invited you to their StowPilot workspace as a %s.", inviterName, role)
	return s.send(toEmail, toEmail, "You've been invited to StowPilot", plain, html)
}

func (s *EmailService) SendPaymentReceipt(toName, toEmail, invoiceNumber string, amount, balance float64) error {
	html := fmt.Sprintf(paymentReceiptEmailHTML, toName, amount, invoiceNumber, balance)
	plain := fmt.Sprintf("Hi %s, we received your payment of $%.2f toward invoice %s. Remaining balance: $%.2f.",
		toName, amount, invoiceNumber, balance)
	return s.send(toName, toEmail, fmt.Sprintf("Receipt for invoice %s", invoiceNumber), plain, html)
}
