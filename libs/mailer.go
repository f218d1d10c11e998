package libs

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"ecom-cart/config"
	"ecom-cart/models"

	"gopkg.in/gomail.v2"
)

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailService struct {
	sender mailSender
	from   string
}

// NewEmailService returns nil when SMTP is not configured.
func NewEmailService(cfg config.SMTPConfig) *EmailService {
	if !cfg.Enabled() {
		return nil
	}
	return &EmailService{
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:   cfg.From,
	}
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        table { width: 100%; border-collapse: collapse; }
        td, th { padding: 8px; border-bottom: 1px solid #eee; text-align: left; }
        .total { font-size: 18px; font-weight: bold; }
    </style>
</head>
<body>
    <div class="container">
        <h2>Order Confirmation</h2>
        <p>Hi {{.Customer.Name}}, thank you for your order!</p>
        <p><strong>Order ID:</strong> {{.OrderID}}</p>
        <table>
            <tr><th>Item</th><th>Qty</th><th>Price</th><th>Subtotal</th></tr>
            {{range .Items}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.Price.StringFixed 2}}</td><td>{{.ItemTotal.StringFixed 2}}</td></tr>
            {{end}}
        </table>
        <p class="total">Total: {{.Total.StringFixed 2}}</p>
        <p style="color: #666; font-size: 12px;">Placed at {{.Timestamp.Format "2006-01-02 15:04:05 MST"}}</p>
    </div>
</body>
</html>
`))

func renderReceipt(receipt *models.Receipt) (string, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, receipt); err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.String(), nil
}

func (s *EmailService) buildReceiptMessage(receipt *models.Receipt) (*gomail.Message, error) {
	body, err := renderReceipt(receipt)
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetAddressHeader("To", receipt.Customer.Email, receipt.Customer.Name)
	m.SetHeader("Subject", fmt.Sprintf("Order Confirmation #%s", receipt.OrderID))
	m.SetBody("text/html", body)
	return m, nil
}

// SendReceipt emails the receipt to the customer.
func (s *EmailService) SendReceipt(ctx context.Context, receipt *models.Receipt) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := s.buildReceiptMessage(receipt)
	if err != nil {
		return err
	}

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
