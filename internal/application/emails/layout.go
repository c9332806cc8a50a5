package emails

import (
	"fmt"
	"html"
	"time"
)

const (
	CompanyName  = "Axiso Green Energies"
	CompanyEmail = "admin@axisogreen.in"
	companySite  = "https://www.axisogreen.in"

	themePrimary   = "#8CC63F"
	themeTextMain  = "#1F2937"
	themeTextMuted = "#6B7280"
	themeBgBody    = "#F3F4F6"
	themeWhite     = "#FFFFFF"
)

// Layout wraps content in the branded HTML shell.
func Layout(contentHTML string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%[1]s</title>
  <style>
    body { margin: 0; padding: 0; background-color: %[2]s; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; color: %[3]s; }
    .content p { margin: 0 0 18px 0; font-size: 15px; line-height: 1.6; }
    .content h1 { font-size: 22px; margin: 0 0 18px 0; }
    .facts td { padding: 6px 12px 6px 0; font-size: 14px; }
    .footer { color: %[4]s; font-size: 12px; }
  </style>
</head>
<body>
  <table role="presentation" width="100%%" cellspacing="0" cellpadding="0" style="background-color: %[2]s;">
    <tr><td align="center" style="padding: 32px 0;">
      <table role="presentation" width="600" cellspacing="0" cellpadding="0" style="background-color: %[5]s; border-radius: 8px; overflow: hidden;">
        <tr><td style="background-color: %[6]s; height: 6px;"></td></tr>
        <tr><td class="content" style="padding: 32px 40px;">%[7]s</td></tr>
        <tr><td class="footer" align="center" style="padding: 0 40px 28px 40px;">
          © %[8]d %[1]s · <a href="mailto:%[9]s" style="color: %[4]s;">%[9]s</a> · <a href="%[10]s" style="color: %[4]s;">axisogreen.in</a>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`,
		CompanyName, themeBgBody, themeTextMain, themeTextMuted, themeWhite, themePrimary,
		contentHTML, time.Now().Year(), CompanyEmail, companySite)
}

// ReceiptFacts are the figures quoted in a receipt email.
type ReceiptFacts struct {
	CustomerName string
	Amount       string
	Date         string
	Reference    string
	Mode         string
}

// ReceiptContent is the body of the payment receipt email.
func ReceiptContent(f ReceiptFacts) string {
	name := f.CustomerName
	if name == "" {
		name = "Customer"
	}
	return fmt.Sprintf(`
    <h1>Payment received</h1>
    <p>Dear %s,</p>
    <p>Thank you for your payment. Your receipt is attached to this email.</p>
    <table class="facts" role="presentation">
      <tr><td>Amount</td><td><strong>Rs. %s</strong></td></tr>
      <tr><td>Date</td><td>%s</td></tr>
      <tr><td>Payment mode</td><td>%s</td></tr>
      <tr><td>Reference</td><td>%s</td></tr>
    </table>
    <p>Regards,<br>%s</p>
`, html.EscapeString(name), html.EscapeString(f.Amount), html.EscapeString(f.Date),
		html.EscapeString(f.Mode), html.EscapeString(f.Reference), CompanyName)
}
