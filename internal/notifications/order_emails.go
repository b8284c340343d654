package notifications

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"

	"github.com/david1984moore/natalybakery-api/internal/domain"
)

// stripPolicy removes all markup from user-supplied text before it is
// embedded in HTML bodies.
var stripPolicy = bluemonday.StrictPolicy()

// BuildCustomerConfirmation renders the customer-facing order confirmation.
func BuildCustomerConfirmation(order domain.Order) Message {
	var text strings.Builder
	fmt.Fprintf(&text, "Hi %s,\n\n", order.CustomerName)
	fmt.Fprintf(&text, "Thank you for your order %s!\n\n", order.OrderNumber)
	writeItemsText(&text, order)
	writeTotalsText(&text, order)
	if order.DeliveryDate != "" {
		fmt.Fprintf(&text, "\nRequested delivery: %s %s\n", order.DeliveryDate, order.DeliveryTime)
	}
	text.WriteString("\nWe will be in touch to confirm your delivery slot.\n")

	var html strings.Builder
	fmt.Fprintf(&html, "<p>Hi %s,</p>", sanitize(order.CustomerName))
	fmt.Fprintf(&html, "<p>Thank you for your order <strong>%s</strong>!</p>", sanitize(order.OrderNumber))
	writeItemsHTML(&html, order)
	writeTotalsHTML(&html, order)
	if order.DeliveryDate != "" {
		fmt.Fprintf(&html, "<p>Requested delivery: %s %s</p>", sanitize(order.DeliveryDate), sanitize(order.DeliveryTime))
	}
	html.WriteString("<p>We will be in touch to confirm your delivery slot.</p>")

	return Message{
		ToName:    order.CustomerName,
		ToAddress: order.CustomerEmail,
		Subject:   fmt.Sprintf("Order confirmation %s", order.OrderNumber),
		TextBody:  text.String(),
		HTMLBody:  html.String(),
	}
}

// BuildStaffNotification renders the internal new-order notification,
// including a direct link to the admin detail view.
func BuildStaffNotification(order domain.Order, staffAddress, adminBaseURL string) Message {
	var text strings.Builder
	fmt.Fprintf(&text, "New order %s from %s (%s", order.OrderNumber, order.CustomerName, order.CustomerEmail)
	if order.CustomerPhone != "" {
		fmt.Fprintf(&text, ", %s", order.CustomerPhone)
	}
	text.WriteString(")\n\n")
	writeItemsText(&text, order)
	writeTotalsText(&text, order)
	if order.DeliveryLocation != "" {
		fmt.Fprintf(&text, "\nDeliver to: %s\n", order.DeliveryLocation)
	}
	if order.DeliveryDate != "" {
		fmt.Fprintf(&text, "Requested slot: %s %s\n", order.DeliveryDate, order.DeliveryTime)
	}
	if order.Notes != "" {
		fmt.Fprintf(&text, "\nNotes: %s\n", order.Notes)
	}
	if adminBaseURL != "" {
		fmt.Fprintf(&text, "\nAdmin view: %s/admin/orders/%s\n", adminBaseURL, order.ID)
	}

	var html strings.Builder
	fmt.Fprintf(&html, "<p>New order <strong>%s</strong> from %s (%s)</p>",
		sanitize(order.OrderNumber), sanitize(order.CustomerName), sanitize(order.CustomerEmail))
	writeItemsHTML(&html, order)
	writeTotalsHTML(&html, order)
	if order.DeliveryLocation != "" {
		fmt.Fprintf(&html, "<p>Deliver to: %s</p>", sanitize(order.DeliveryLocation))
	}
	if order.DeliveryDate != "" {
		fmt.Fprintf(&html, "<p>Requested slot: %s %s</p>", sanitize(order.DeliveryDate), sanitize(order.DeliveryTime))
	}
	if order.Notes != "" {
		fmt.Fprintf(&html, "<p>Notes: %s</p>", sanitize(order.Notes))
	}
	if adminBaseURL != "" {
		fmt.Fprintf(&html, `<p><a href="%s/admin/orders/%s">Open in admin</a></p>`, adminBaseURL, order.ID)
	}

	return Message{
		ToAddress: staffAddress,
		Subject:   fmt.Sprintf("New order %s", order.OrderNumber),
		TextBody:  text.String(),
		HTMLBody:  html.String(),
		ReplyTo:   order.CustomerEmail,
	}
}

// BuildCustomerPaymentReceipt renders the customer email confirming the
// deposit was received and the order is locked in.
func BuildCustomerPaymentReceipt(order domain.Order) Message {
	var text strings.Builder
	fmt.Fprintf(&text, "Hi %s,\n\n", order.CustomerName)
	fmt.Fprintf(&text, "We received your deposit of %s for order %s. Your order is confirmed!\n",
		money(order.DepositAmount), order.OrderNumber)
	fmt.Fprintf(&text, "\nRemaining balance due on delivery: %s\n", money(order.RemainingAmount))
	if order.DeliveryDate != "" {
		fmt.Fprintf(&text, "Requested delivery: %s %s\n", order.DeliveryDate, order.DeliveryTime)
	}

	var html strings.Builder
	fmt.Fprintf(&html, "<p>Hi %s,</p>", sanitize(order.CustomerName))
	fmt.Fprintf(&html, "<p>We received your deposit of <strong>%s</strong> for order <strong>%s</strong>. Your order is confirmed!</p>",
		money(order.DepositAmount), sanitize(order.OrderNumber))
	fmt.Fprintf(&html, "<p>Remaining balance due on delivery: %s</p>", money(order.RemainingAmount))
	if order.DeliveryDate != "" {
		fmt.Fprintf(&html, "<p>Requested delivery: %s %s</p>", sanitize(order.DeliveryDate), sanitize(order.DeliveryTime))
	}

	return Message{
		ToName:    order.CustomerName,
		ToAddress: order.CustomerEmail,
		Subject:   fmt.Sprintf("Payment received for order %s", order.OrderNumber),
		TextBody:  text.String(),
		HTMLBody:  html.String(),
	}
}

// BuildStaffDepositPaid renders the internal deposit-paid notification.
func BuildStaffDepositPaid(order domain.Order, staffAddress, adminBaseURL string) Message {
	var text strings.Builder
	fmt.Fprintf(&text, "Deposit of %s paid for order %s (%s).\n", money(order.DepositAmount), order.OrderNumber, order.CustomerName)
	if adminBaseURL != "" {
		fmt.Fprintf(&text, "\nAdmin view: %s/admin/orders/%s\n", adminBaseURL, order.ID)
	}

	var html strings.Builder
	fmt.Fprintf(&html, "<p>Deposit of <strong>%s</strong> paid for order <strong>%s</strong> (%s).</p>",
		money(order.DepositAmount), sanitize(order.OrderNumber), sanitize(order.CustomerName))
	if adminBaseURL != "" {
		fmt.Fprintf(&html, `<p><a href="%s/admin/orders/%s">Open in admin</a></p>`, adminBaseURL, order.ID)
	}

	return Message{
		ToAddress: staffAddress,
		Subject:   fmt.Sprintf("Deposit paid for order %s", order.OrderNumber),
		TextBody:  text.String(),
		HTMLBody:  html.String(),
	}
}

// BuildContactNotification renders the staff notification for a contact-form
// message.
func BuildContactNotification(contact domain.Contact, staffAddress string) Message {
	var text strings.Builder
	fmt.Fprintf(&text, "New message from %s (%s", contact.Name, contact.Email)
	if contact.Phone != "" {
		fmt.Fprintf(&text, ", %s", contact.Phone)
	}
	text.WriteString(")\n\n")
	text.WriteString(contact.Message)
	text.WriteString("\n")

	var html strings.Builder
	fmt.Fprintf(&html, "<p>New message from %s (%s)</p>", sanitize(contact.Name), sanitize(contact.Email))
	fmt.Fprintf(&html, "<p>%s</p>", sanitize(contact.Message))

	return Message{
		ToAddress: staffAddress,
		Subject:   fmt.Sprintf("Contact form: %s", contact.Name),
		TextBody:  text.String(),
		HTMLBody:  html.String(),
		ReplyTo:   contact.Email,
	}
}

func writeItemsText(b *strings.Builder, order domain.Order) {
	for _, item := range order.Items {
		fmt.Fprintf(b, "  %d x %s @ %s = %s\n", item.Quantity, item.ProductName, money(item.UnitPrice), money(item.TotalPrice))
	}
}

func writeTotalsText(b *strings.Builder, order domain.Order) {
	fmt.Fprintf(b, "\nTotal: %s\nDeposit due now: %s\nRemaining on delivery: %s\n",
		money(order.TotalAmount), money(order.DepositAmount), money(order.RemainingAmount))
}

func writeItemsHTML(b *strings.Builder, order domain.Order) {
	b.WriteString("<table><thead><tr><th>Item</th><th>Qty</th><th>Unit</th><th>Total</th></tr></thead><tbody>")
	for _, item := range order.Items {
		fmt.Fprintf(b, "<tr><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>",
			sanitize(item.ProductName), item.Quantity, money(item.UnitPrice), money(item.TotalPrice))
	}
	b.WriteString("</tbody></table>")
}

func writeTotalsHTML(b *strings.Builder, order domain.Order) {
	fmt.Fprintf(b, "<p>Total: <strong>%s</strong><br>Deposit due now: %s<br>Remaining on delivery: %s</p>",
		money(order.TotalAmount), money(order.DepositAmount), money(order.RemainingAmount))
}

func money(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}

func sanitize(value string) string {
	return stripPolicy.Sanitize(value)
}
