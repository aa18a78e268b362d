package email

import (
	"fmt"
	"time"
)

const baseTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1a5276;">Exodus Travel</h2>
  %s
  <hr style="border: none; border-top: 1px solid #ddd; margin-top: 24px;">
  <p style="font-size: 12px; color: #999;">Exodus Travel Agency &middot; contact@exodustravels.com</p>
</body>
</html>`

func BookingConfirmationTemplate(name, tourName string, travelDate time.Time, guests int, totalPrice float64) string {
	body := fmt.Sprintf(`
  <p>Hi %s,</p>
  <p>Your booking for <strong>%s</strong> is confirmed.</p>
  <ul>
    <li>Travel date: %s</li>
    <li>Guests: %d</li>
    <li>Total: $%.2f</li>
  </ul>
  <p>We look forward to travelling with you.</p>`,
		name, tourName, travelDate.Format("Monday, 2 January 2006"), guests, totalPrice)
	return fmt.Sprintf(baseTemplate, body)
}

func BookingStatusTemplate(name, tourName, status string) string {
	body := fmt.Sprintf(`
  <p>Hi %s,</p>
  <p>Your booking for <strong>%s</strong> is now <strong>%s</strong>.</p>`,
		name, tourName, status)
	return fmt.Sprintf(baseTemplate, body)
}

func SubscriptionExpiryTemplate(agencyName string, expiresAt time.Time) string {
	body := fmt.Sprintf(`
  <p>Hello %s,</p>
  <p>Your Exodus Travel subscription expires on <strong>%s</strong>.</p>
  <p>Renew before then to keep your back office available.</p>`,
		agencyName, expiresAt.Format("2 January 2006"))
	return fmt.Sprintf(baseTemplate, body)
}
