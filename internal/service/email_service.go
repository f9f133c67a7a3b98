package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"

	"metaclassroom/internal/models"
)

// emailSender is the part of the SES client the service uses.
type emailSender interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client     emailSender
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service. An empty fromEmail yields a
// disabled service that skips every send.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Info().Msg("email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info().Str("from", fromEmail).Str("region", awsRegion).Msg("email service enabled")
	return newEmailService(sesv2.NewFromConfig(cfg), fromEmail, fromName, appBaseURL), nil
}

func newEmailService(client emailSender, fromEmail, fromName, appBaseURL string) *EmailService {
	return &EmailService{
		client:     client,
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s != nil && s.enabled
}

// SendWelcomeEmail greets a newly created account.
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, toName string) error {
	if !s.IsEnabled() {
		log.Debug().Str("to", toEmail).Msg("skipping welcome email (service disabled)")
		return nil
	}

	subject := "Welcome to the Metaverse Classroom!"
	name := html.EscapeString(toName)
	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<h1>Welcome, %s!</h1>
	<p>Your classroom account is ready. Play the AI mind games, build an audiobook library and keep track of your class.</p>
	<p><a href="%s/">Open the dashboard</a></p>
	<p style="font-size: 12px; color: #666;">This is an automated email. Please do not reply.</p>
</body>
</html>
`, name, s.appBaseURL)

	textBody := fmt.Sprintf(`Hi %s,

Your classroom account is ready. Play the AI mind games, build an audiobook library and keep track of your class.

Open the dashboard: %s/

---
This is an automated email. Please do not reply.
`, toName, s.appBaseURL)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendAttendanceSummary mails a saved attendance sheet to the teacher who saved it.
func (s *EmailService) SendAttendanceSummary(ctx context.Context, toEmail, toName string, rec *models.AttendanceRecord) error {
	if !s.IsEnabled() {
		log.Debug().Str("to", toEmail).Msg("skipping attendance email (service disabled)")
		return nil
	}

	absent := "none"
	if len(rec.AbsentNames) > 0 {
		absent = strings.Join(rec.AbsentNames, ", ")
	}
	subject := fmt.Sprintf("Attendance for %s: %s%%", rec.ClassDate, rec.Rate)
	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<p>Hi %s,</p>
	<p>Attendance for <strong>%s</strong> was saved.</p>
	<ul>
		<li>Present: %d of %d</li>
		<li>Rate: %s%%</li>
		<li>Absent: %s</li>
	</ul>
</body>
</html>
`, html.EscapeString(toName), rec.ClassDate, rec.Present, rec.Total, rec.Rate, html.EscapeString(absent))

	textBody := fmt.Sprintf(`Hi %s,

Attendance for %s was saved.

Present: %d of %d
Rate: %s%%
Absent: %s
`, toName, rec.ClassDate, rec.Present, rec.Total, rec.Rate, absent)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	ev := log.Info().Str("to", toEmail).Str("subject", subject)
	if result != nil && result.MessageId != nil {
		ev = ev.Str("message_id", *result.MessageId)
	}
	ev.Msg("email sent")
	return nil
}
