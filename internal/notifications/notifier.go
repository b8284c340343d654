package notifications

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/david1984moore/natalybakery-api/internal/domain"
)

// NotifierLogger logs dispatch outcomes without coupling to a logging framework.
type NotifierLogger func(ctx context.Context, event string, fields map[string]any)

// OrderNotifier sends customer and staff emails after order transitions.
// Email is a best-effort side channel: failures are logged, never returned to
// the triggering transition.
type OrderNotifier struct {
	mailer       Mailer
	staffAddress string
	adminBaseURL string
	logger       NotifierLogger
}

// OrderNotifierConfig configures the OrderNotifier.
type OrderNotifierConfig struct {
	Mailer       Mailer
	StaffAddress string
	AdminBaseURL string
	Logger       NotifierLogger
}

// NewOrderNotifier constructs the notifier.
func NewOrderNotifier(cfg OrderNotifierConfig) (*OrderNotifier, error) {
	if cfg.Mailer == nil {
		return nil, errors.New("notifications: mailer is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &OrderNotifier{
		mailer:       cfg.Mailer,
		staffAddress: strings.TrimSpace(cfg.StaffAddress),
		adminBaseURL: strings.TrimRight(strings.TrimSpace(cfg.AdminBaseURL), "/"),
		logger:       logger,
	}, nil
}

// NotifyOrderPlaced fans out the customer confirmation and the staff
// notification concurrently so one failing send never blocks the other.
func (n *OrderNotifier) NotifyOrderPlaced(ctx context.Context, order domain.Order) {
	if n == nil || n.mailer == nil {
		return
	}

	messages := []Message{BuildCustomerConfirmation(order)}
	if n.staffAddress != "" {
		messages = append(messages, BuildStaffNotification(order, n.staffAddress, n.adminBaseURL))
	}
	n.fanOut(ctx, order, messages)
}

// NotifyDepositPaid fans out the payment-received pair after a successful
// deposit webhook.
func (n *OrderNotifier) NotifyDepositPaid(ctx context.Context, order domain.Order) {
	if n == nil || n.mailer == nil {
		return
	}

	messages := []Message{BuildCustomerPaymentReceipt(order)}
	if n.staffAddress != "" {
		messages = append(messages, BuildStaffDepositPaid(order, n.staffAddress, n.adminBaseURL))
	}
	n.fanOut(ctx, order, messages)
}

func (n *OrderNotifier) fanOut(ctx context.Context, order domain.Order, messages []Message) {
	var wg sync.WaitGroup
	for _, msg := range messages {
		wg.Add(1)
		go func(msg Message) {
			defer wg.Done()
			if err := n.mailer.Send(ctx, msg); err != nil {
				n.logger(ctx, "notifications.send_failed", map[string]any{
					"orderNumber": order.OrderNumber,
					"to":          msg.ToAddress,
					"error":       err.Error(),
				})
				return
			}
			n.logger(ctx, "notifications.sent", map[string]any{
				"orderNumber": order.OrderNumber,
				"to":          msg.ToAddress,
			})
		}(msg)
	}
	wg.Wait()
}

// NotifyContactReceived sends the staff notification for a contact message.
func (n *OrderNotifier) NotifyContactReceived(ctx context.Context, contact domain.Contact) {
	if n == nil || n.mailer == nil || n.staffAddress == "" {
		return
	}
	msg := BuildContactNotification(contact, n.staffAddress)
	if err := n.mailer.Send(ctx, msg); err != nil {
		n.logger(ctx, "notifications.send_failed", map[string]any{
			"contact": contact.ID,
			"to":      msg.ToAddress,
			"error":   err.Error(),
		})
	}
}
