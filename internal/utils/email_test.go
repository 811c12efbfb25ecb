package utils

import (
	"strings"
	"testing"

	"selta_back_end/internal/config"
	"selta_back_end/internal/models"
)

func sampleOrder() models.Order {
	return models.Order{
		OrderNumber:       "ORD-AB12CD34",
		TotalAmount:       49.90,
		ShippingFirstName: "Jane",
		ShippingLastName:  "Doe",
		ShippingCountry:   "Kenya",
		Items: []models.OrderItem{
			{ProductName: "Shea butter", Quantity: 2, UnitPrice: 9.95, TotalPrice: 19.90},
			{ProductName: "Black soap", Quantity: 1, UnitPrice: 30.00, TotalPrice: 30.00},
		},
	}
}

func TestNewMailerDisabledWithoutHost(t *testing.T) {
	m := NewMailer(config.Config{})
	if m != nil {
		t.Fatal("expected nil mailer when SMTP_HOST is unset")
	}
	// Nil receiver is a no-op, not a panic.
	if err := m.SendOrderConfirmation("jane@example.com", sampleOrder(), nil); err != nil {
		t.Fatalf("nil mailer should no-op, got %v", err)
	}
}

func TestOrderConfirmationHTML(t *testing.T) {
	html := OrderConfirmationHTML(sampleOrder())

	for _, want := range []string{"ORD-AB12CD34", "Shea butter", "Black soap", "49.90"} {
		if !strings.Contains(html, want) {
			t.Errorf("confirmation HTML missing %q", want)
		}
	}
}

func TestOrderTrackingQR(t *testing.T) {
	uri, err := OrderTrackingQR("http://localhost:3000", sampleOrder())
	if err != nil {
		t.Fatalf("OrderTrackingQR: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Error("expected a PNG data URI")
	}
	if len(uri) <= len("data:image/png;base64,") {
		t.Error("data URI has no payload")
	}
}
