package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/umajibakery/reservations/internal/reservation"
)

// ErrSendFailed covers every non-2xx response; callers surface a
// generic failure and leave their own state untouched.
var ErrSendFailed = errors.New("mail send failed")

const messageMaxRunes = 500

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Client delivers outgoing mail by posting multipart form fields
// {name, email, phone, subject, message} to the configured endpoint.
type Client struct {
	Endpoint string
	HTTP     *http.Client
}

func New(endpoint string) *Client {
	return &Client{
		Endpoint: endpoint,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
	}
}

type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate checks the contact form fields, accumulating all failures.
func (m ContactMessage) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(m.Name) == "" {
		errs["name"] = "name is required"
	}
	switch {
	case strings.TrimSpace(m.Email) == "":
		errs["email"] = "email address is required"
	case !emailPattern.MatchString(m.Email):
		errs["email"] = "email address is not valid"
	}
	if strings.TrimSpace(m.Subject) == "" {
		errs["subject"] = "select a subject"
	}
	switch {
	case strings.TrimSpace(m.Message) == "":
		errs["message"] = "message is required"
	case utf8.RuneCountInString(m.Message) > messageMaxRunes:
		errs["message"] = fmt.Sprintf("message must be %d characters or fewer", messageMaxRunes)
	}
	return errs
}

// SendContact forwards a contact form submission.
func (c *Client) SendContact(ctx context.Context, m ContactMessage) error {
	return c.post(ctx, m)
}

// SendCancellation mails the customer a cancellation notice with the
// operator's reason before the record moves to cancelled.
func (c *Client) SendCancellation(ctx context.Context, rec reservation.Record, reason string) error {
	body := fmt.Sprintf(
		"Your reservation #%d for pickup on %s at %s has been cancelled.\n\nReason: %s",
		rec.ID, rec.Date, rec.Time, reason)
	return c.post(ctx, ContactMessage{
		Name:    rec.Customer.Name,
		Email:   rec.Customer.Email,
		Phone:   rec.Customer.Phone,
		Subject: "Reservation cancelled",
		Message: body,
	})
}

// SendConfirmation mails the customer a summary of a new reservation.
func (c *Client) SendConfirmation(ctx context.Context, p reservation.CreatedPayload) error {
	var items strings.Builder
	for _, it := range p.Items {
		fmt.Fprintf(&items, "- %s × %d (¥%d)\n", it.Name, it.Quantity, it.Price*it.Quantity)
	}
	body := fmt.Sprintf(
		"Thank you for your reservation.\n\nPickup: %s %s\n%sTotal: ¥%d",
		p.Date, p.Time, items.String(), p.TotalPrice)
	return c.post(ctx, ContactMessage{
		Name:    p.Customer.Name,
		Email:   p.Customer.Email,
		Phone:   p.Customer.Phone,
		Subject: "Reservation received",
		Message: body,
	})
}

func (c *Client) post(ctx context.Context, m ContactMessage) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"name":    m.Name,
		"email":   m.Email,
		"phone":   m.Phone,
		"subject": m.Subject,
		"message": m.Message,
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrSendFailed, resp.StatusCode)
	}
	return nil
}
