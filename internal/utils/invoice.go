package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	qrcode "github.com/skip2/go-qrcode"

	"selta_back_end/internal/models"
)

// OrderTrackingQR encodes the order-tracking URL as a base64 PNG, ready for an
// <img src="..."> attribute.
func OrderTrackingQR(frontendURL string, order models.Order) (string, error) {
	link := fmt.Sprintf("%s/orders/%s", frontendURL, url.PathEscape(order.OrderNumber))
	png, err := qrcode.Encode(link, qrcode.Medium, 192)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// GenerateInvoicePDF renders the invoice HTML through headless Chrome and
// prints it to PDF. Requires a Chrome binary on the host; errors are meant to
// be logged and the email sent without the attachment.
func GenerateInvoicePDF(frontendURL string, order models.Order) ([]byte, error) {
	qr, err := OrderTrackingQR(frontendURL, order)
	if err != nil {
		return nil, err
	}
	html := invoiceHTML(order, qr)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("data:text/html;charset=utf-8,"+url.PathEscape(html)),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

func invoiceHTML(order models.Order, qrDataURI string) string {
	rows := ""
	for _, item := range order.Items {
		rows += fmt.Sprintf(`
		<tr>
			<td>%s</td><td>%d</td><td>%.2f</td><td>%.2f</td>
		</tr>`, item.ProductName, item.Quantity, item.UnitPrice, item.TotalPrice)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
	body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
	table { width: 100%%; border-collapse: collapse; margin: 24px 0; }
	th, td { border: 1px solid #ccc; padding: 8px; text-align: left; }
	th { background: #f0f0f0; }
	.total { font-size: 18px; font-weight: bold; }
	.qr { float: right; }
</style>
</head>
<body>
	<img class="qr" src="%s" alt="order tracking">
	<h1>Invoice %s</h1>
	<p>Date: %s</p>
	<p>Bill to:<br>%s %s<br>%s<br>%s</p>
	<table>
		<thead><tr><th>Product</th><th>Qty</th><th>Unit price</th><th>Total</th></tr></thead>
		<tbody>%s</tbody>
	</table>
	<p class="total">Total: %.2f</p>
	<p>Payment reference: %s</p>
</body>
</html>`,
		qrDataURI,
		order.OrderNumber,
		order.CreatedAt.Format("2006-01-02"),
		order.BillingFirstName, order.BillingLastName,
		order.BillingAddressLine1,
		order.BillingCountry,
		rows,
		order.TotalAmount,
		order.PaymentIntentID,
	)
}
