package service

import (
	"context"
	"fmt"
	"html"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"readbooks-backend/internal/domain"
	"readbooks-backend/internal/logger"
)

// mailSender is the part of the SendGrid client used here.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridEmailService struct {
	client    mailSender
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return newSendGridEmailService(sendgrid.NewSendClient(apiKey), fromEmail, fromName)
}

func newSendGridEmailService(client mailSender, fromEmail, fromName string) *sendGridEmailService {
	return &sendGridEmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) SendOverdueReminder(ctx context.Context, record domain.BorrowRecord) error {
	subject, plainText, htmlContent := overdueReminderContent(record)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(record.Name, record.Email)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "send", "borrow_id", record.ID)
	response, err := s.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "borrow_id", record.ID)
	if err != nil {
		return fmt.Errorf("failed to send overdue reminder: %w", err)
	}
	return nil
}

type logEmailService struct{}

// NewLogEmailService returns an EmailService that only logs what it would send.
func NewLogEmailService() EmailService {
	return logEmailService{}
}

func (logEmailService) SendOverdueReminder(ctx context.Context, record domain.BorrowRecord) error {
	subject, _, _ := overdueReminderContent(record)
	logger.InfoContext(ctx, "Overdue reminder (not sent)", "to", record.Email, "subject", subject, "borrow_id", record.ID)
	return nil
}

func overdueReminderContent(record domain.BorrowRecord) (subject, plainText, htmlContent string) {
	subject = fmt.Sprintf("Overdue: %s", record.Title)
	plainText = fmt.Sprintf("Hello %s,\n\nThe book \"%s\" you borrowed was due back on %s. Please return it as soon as possible.\n\nThe ReadBooks Team",
		record.Name, record.Title, record.ReturnDate)
	htmlContent = fmt.Sprintf(`<p>Hello %s,</p><p>The book <strong>%s</strong> you borrowed was due back on %s. Please return it as soon as possible.</p><p>The ReadBooks Team</p>`,
		html.EscapeString(record.Name), html.EscapeString(record.Title), record.ReturnDate)
	return subject, plainText, htmlContent
}
