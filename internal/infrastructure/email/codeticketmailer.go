package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/cesy/support-board/internal/domain/codeticket"
	"github.com/cesy/support-board/internal/shared/markdown"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for email links (e.g., "https://board.example.org")
}

// CodeTicketMailer sends workflow notifications over SMTP.
type CodeTicketMailer struct {
	config   SMTPConfig
	dialer   *gomail.Dialer
	markdown markdown.Service
}

func NewCodeTicketMailer(config SMTPConfig, markdown markdown.Service) *CodeTicketMailer {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &CodeTicketMailer{
		config:   config,
		dialer:   dialer,
		markdown: markdown,
	}
}

func (s *CodeTicketMailer) CreateNotification(ctx context.Context, t *codeticket.Ticket, recipient string) error {
	ticketURL := fmt.Sprintf("%s/code_tickets/%d", s.config.BaseURL, t.ID())

	subject := fmt.Sprintf("[Support Board] %s created", t.Name())
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>%s</h2>
			<p>A new code ticket has been filed:</p>
			<p>%s</p>
			<p><a href="%s">View the ticket</a></p>
		</body>
		</html>
	`, t.Name(), s.markdown.StripTags(t.Summary()), ticketURL)

	plainBody := fmt.Sprintf(`
%s

A new code ticket has been filed:
%s

View the ticket:
%s
	`, t.Name(), t.Summary(), ticketURL)

	return s.sendEmail(recipient, subject, htmlBody, plainBody)
}

func (s *CodeTicketMailer) UpdateNotification(ctx context.Context, t *codeticket.Ticket, recipient string) error {
	ticketURL := fmt.Sprintf("%s/code_tickets/%d", s.config.BaseURL, t.ID())

	subject := fmt.Sprintf("[Support Board] %s updated", t.Name())
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>%s</h2>
			<p>A ticket you are watching has been updated.</p>
			<p>Current state: %s</p>
			<p><a href="%s">View the ticket</a></p>
			<p>You are receiving this because you watch this ticket.</p>
		</body>
		</html>
	`, t.Name(), t.Status(), ticketURL)

	plainBody := fmt.Sprintf(`
%s

A ticket you are watching has been updated.
Current state: %s

View the ticket:
%s

You are receiving this because you watch this ticket.
	`, t.Name(), t.Status(), ticketURL)

	return s.sendEmail(recipient, subject, htmlBody, plainBody)
}

func (s *CodeTicketMailer) StealNotification(ctx context.Context, t *codeticket.Ticket, recipient, stealerName string) error {
	ticketURL := fmt.Sprintf("%s/code_tickets/%d", s.config.BaseURL, t.ID())

	subject := fmt.Sprintf("[Support Board] %s was stolen from you", t.Name())
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>%s</h2>
			<p>%s has taken over a ticket you were working on.</p>
			<p><a href="%s">View the ticket</a></p>
		</body>
		</html>
	`, t.Name(), stealerName, ticketURL)

	plainBody := fmt.Sprintf(`
%s

%s has taken over a ticket you were working on.

View the ticket:
%s
	`, t.Name(), stealerName, ticketURL)

	return s.sendEmail(recipient, subject, htmlBody, plainBody)
}

func (s *CodeTicketMailer) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromAddress)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
