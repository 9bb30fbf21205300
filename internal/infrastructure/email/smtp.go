// Package email implements the outbound mail ports over SMTP.
package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	// BaseURL is the public origin used for links in mail bodies.
	BaseURL string
}

// SMTPEmailService sends the account lifecycle mails and the request
// notification mails. One instance backs both ports.
type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

func (s *SMTPEmailService) SendVerificationEmail(ctx context.Context, to, token string) error {
	verificationURL := fmt.Sprintf("%s/auth/verify-email?token=%s", s.config.BaseURL, token)

	subject := "Verify Your Email Address"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome to ReQue!</h2>
			<p>Please verify your email address by clicking the link below:</p>
			<p><a href="%s">Verify Email Address</a></p>
			<p>Or copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>This link will expire in 24 hours.</p>
			<p>If you didn't create an account, please ignore this email.</p>
		</body>
		</html>
	`, verificationURL, verificationURL)

	plainBody := fmt.Sprintf(`
Welcome to ReQue!

Please verify your email address by visiting:
%s

This link will expire in 24 hours.

If you didn't create an account, please ignore this email.
	`, verificationURL)

	return s.sendEmail(ctx, to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendPasswordResetEmail(ctx context.Context, to, token string) error {
	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", s.config.BaseURL, token)

	subject := "Reset Your Password"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Password Reset Request</h2>
			<p>We received a request to reset your password. Click the link below to reset it:</p>
			<p><a href="%s">Reset Password</a></p>
			<p>Or copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>This link will expire in 30 minutes.</p>
			<p>If you didn't request a password reset, please ignore this email and your password will remain unchanged.</p>
		</body>
		</html>
	`, resetURL, resetURL)

	plainBody := fmt.Sprintf(`
Password Reset Request

We received a request to reset your password. Visit the following URL to reset it:
%s

This link will expire in 30 minutes.

If you didn't request a password reset, please ignore this email and your password will remain unchanged.
	`, resetURL)

	return s.sendEmail(ctx, to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendPasswordChangedEmail(ctx context.Context, to string) error {
	subject := "Password Changed Successfully"
	htmlBody := `
		<html>
		<body>
			<h2>Password Changed</h2>
			<p>Your password has been successfully changed. All other sessions have been signed out.</p>
			<p>If you didn't make this change, please contact support immediately.</p>
		</body>
		</html>
	`

	plainBody := `
Password Changed

Your password has been successfully changed. All other sessions have been signed out.

If you didn't make this change, please contact support immediately.
	`

	return s.sendEmail(ctx, to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendRequestAssignedEmail(ctx context.Context, to, number, title string) error {
	requestURL := s.requestURL(number)

	subject := fmt.Sprintf("[%s] Assigned to you: %s", number, title)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Request Assigned to You</h2>
			<p>Request <strong>%s</strong> has been assigned to you:</p>
			<p>%s</p>
			<p><a href="%s">Open the request</a></p>
		</body>
		</html>
	`, number, title, requestURL)

	plainBody := fmt.Sprintf(`
Request Assigned to You

Request %s has been assigned to you:
%s

Open it here:
%s
	`, number, title, requestURL)

	return s.sendEmail(ctx, to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendRequestStatusChangedEmail(ctx context.Context, to, number, title, oldStatus, newStatus string) error {
	requestURL := s.requestURL(number)

	subject := fmt.Sprintf("[%s] Status changed to %s", number, newStatus)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Request Status Changed</h2>
			<p>Request <strong>%s</strong> (%s) moved from <strong>%s</strong> to <strong>%s</strong>.</p>
			<p><a href="%s">Open the request</a></p>
		</body>
		</html>
	`, number, title, oldStatus, newStatus, requestURL)

	plainBody := fmt.Sprintf(`
Request Status Changed

Request %s (%s) moved from %s to %s.

Open it here:
%s
	`, number, title, oldStatus, newStatus, requestURL)

	return s.sendEmail(ctx, to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendCommentAddedEmail(ctx context.Context, to, number, title, authorName string) error {
	requestURL := s.requestURL(number)

	subject := fmt.Sprintf("[%s] New comment from %s", number, authorName)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>New Comment</h2>
			<p>%s commented on request <strong>%s</strong> (%s).</p>
			<p><a href="%s">Read the comment</a></p>
		</body>
		</html>
	`, authorName, number, title, requestURL)

	plainBody := fmt.Sprintf(`
New Comment

%s commented on request %s (%s).

Read it here:
%s
	`, authorName, number, title, requestURL)

	return s.sendEmail(ctx, to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendAccountSuspendedEmail(ctx context.Context, to string) error {
	subject := "Your Account Has Been Suspended"
	htmlBody := `
		<html>
		<body>
			<h2>Account Suspended</h2>
			<p>Your account has been suspended by an administrator. Active sessions have been signed out.</p>
			<p>If you believe this is a mistake, please contact support.</p>
		</body>
		</html>
	`

	plainBody := `
Account Suspended

Your account has been suspended by an administrator. Active sessions have been signed out.

If you believe this is a mistake, please contact support.
	`

	return s.sendEmail(ctx, to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) requestURL(number string) string {
	return fmt.Sprintf("%s/requests/%s", s.config.BaseURL, number)
}

// sendEmail builds the multipart message and delivers it. gomail has no
// context support, so cancellation is only honored up front.
func (s *SMTPEmailService) sendEmail(ctx context.Context, to, subject, htmlBody, plainBody string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send aborted: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
