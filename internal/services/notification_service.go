// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/models"
)

// Notifier sends order e-mails. Implementations are called from background
// goroutines; errors are only logged.
type Notifier interface {
	SendOrderConfirmation(order *models.Order) error
	SendOrderStatusUpdate(order *models.Order) error
}

type NotificationService struct {
	config   config.EmailConfig
	baseURL  string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(cfg *config.Config) *NotificationService {
	return &NotificationService{
		config:   cfg.Email,
		baseURL:  cfg.Frontend.BaseURL,
		sendMail: smtp.SendMail,
	}
}

func (s *NotificationService) SendOrderConfirmation(order *models.Order) error {
	data := map[string]interface{}{
		"Name":     order.Name,
		"OrderID":  order.ID.String(),
		"Items":    order.Items,
		"Shipping": order.ShippingCost.StringFixed(2),
		"Total":    order.Total.StringFixed(2),
		"OrderURL": fmt.Sprintf("%s/orders/%s", s.baseURL, order.ID),
	}
	return s.send(order.Email, "order_confirmation", data)
}

func (s *NotificationService) SendOrderStatusUpdate(order *models.Order) error {
	data := map[string]interface{}{
		"Name":     order.Name,
		"OrderID":  order.ID.String(),
		"Status":   string(order.Status),
		"OrderURL": fmt.Sprintf("%s/orders/%s", s.baseURL, order.ID),
	}
	return s.send(order.Email, "order_status", data)
}

func (s *NotificationService) send(to, templateType string, data interface{}) error {
	tmpl := s.getEmailTemplate(templateType)

	subject, err := s.renderTemplate(tmpl.Subject, data)
	if err != nil {
		return fmt.Errorf("failed to render email subject: %w", err)
	}
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(to, subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.SMTPHost == "" {
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("Email not configured; skipping send")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	from := s.config.FromEmail
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", from, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.SMTPHost, s.config.SMTPPort)
	return s.sendMail(addr, auth, s.config.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"order_confirmation": {
			Subject: "Order {{.OrderID}} received",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thank you for your order, {{.Name}}!</h2>
	<table>
	{{range .Items}}<tr><td>{{.ProductName}}</td><td>{{.Quantity}}</td><td>{{.Price.StringFixed 2}}</td></tr>
	{{end}}
	</table>
	<p>Shipping: {{.Shipping}}</p>
	<p><strong>Total: {{.Total}}</strong></p>
	<a href="{{.OrderURL}}">View your order</a>
</body>
</html>`,
		},
		"order_status": {
			Subject: "Order {{.OrderID}} is now {{.Status}}",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hello {{.Name}},</h2>
	<p>Your order {{.OrderID}} is now <strong>{{.Status}}</strong>.</p>
	<a href="{{.OrderURL}}">View your order</a>
</body>
</html>`,
		},
	}

	if template, exists := templates[templateType]; exists {
		return template
	}

	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
