package utils

import (
	"bytes"
	"fmt"
	"log"

	"github.com/wneessen/go-mail"

	"selta_back_end/internal/config"
	"selta_back_end/internal/models"
)

// Mailer sends transactional mail over SMTP. NewMailer returns nil when SMTP
// is not configured; callers treat a nil Mailer as "sending disabled".
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewMailer(cfg config.Config) *Mailer {
	if cfg.SMTPHost == "" {
		log.Println("⚠️ SMTP_HOST not set, order emails disabled")
		return nil
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.MailFrom,
	}
}

// SendOrderConfirmation mails the order summary, attaching the invoice PDF
// when one could be rendered.
func (m *Mailer) SendOrderConfirmation(to string, order models.Order, invoicePDF []byte) error {
	if m == nil {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Your Selta order %s is confirmed", order.OrderNumber))
	msg.SetBodyString(mail.TypeTextHTML, OrderConfirmationHTML(order))

	if invoicePDF != nil {
		msg.AttachReader(fmt.Sprintf("invoice_%s.pdf", order.OrderNumber), bytes.NewReader(invoicePDF))
	}

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending order confirmation to", to)
	return client.DialAndSend(msg)
}

// OrderConfirmationHTML renders the confirmation email body.
func OrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%.2f</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%.2f</td>
			</tr>`, item.ProductName, item.Quantity, item.UnitPrice, item.TotalPrice)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Order confirmation</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Thank you for your order</h2>
		<p>Hi %s,</p>
		<p>Your order <strong>%s</strong> has been confirmed and is being processed.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Product</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Qty</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Unit price</th>
					<th style="padding: 8px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>
		<p style="font-size: 18px;"><strong>Order total: %.2f</strong></p>
		<p>We will ship to:<br>%s %s<br>%s<br>%s</p>
		<p style="color: #888; font-size: 12px;">The Selta team</p>
	</div>
</body>
</html>`,
		order.ShippingFirstName,
		order.OrderNumber,
		itemsHTML,
		order.TotalAmount,
		order.ShippingFirstName, order.ShippingLastName,
		order.ShippingAddressLine1,
		order.ShippingCountry,
	)
}
