package notifications

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/david1984moore/natalybakery-api/internal/domain"
)

func sampleOrder() domain.Order {
	return domain.Order{
		ID:              "ord_1",
		OrderNumber:     "NB-20250501-A1B2C",
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		TotalAmount:     decimal.NewFromInt(30),
		DepositAmount:   decimal.NewFromInt(15),
		RemainingAmount: decimal.NewFromInt(15),
		Status:          domain.OrderStatusPending,
		Items: []domain.OrderItem{
			{ProductName: "Flan", Quantity: 1, UnitPrice: decimal.NewFromInt(30), TotalPrice: decimal.NewFromInt(30)},
		},
	}
}

type recordingMailer struct {
	mu       sync.Mutex
	messages []Message
	fail     func(Message) error
}

func (m *recordingMailer) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		if err := m.fail(msg); err != nil {
			return err
		}
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *recordingMailer) sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

func TestNotifyOrderPlacedSendsBothMessages(t *testing.T) {
	mailer := &recordingMailer{}
	notifier, err := NewOrderNotifier(OrderNotifierConfig{
		Mailer:       mailer,
		StaffAddress: "staff@bakery.example",
		AdminBaseURL: "https://bakery.example",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	notifier.NotifyOrderPlaced(context.Background(), sampleOrder())

	sent := mailer.sent()
	if len(sent) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(sent))
	}

	byAddress := map[string]Message{}
	for _, msg := range sent {
		byAddress[msg.ToAddress] = msg
	}

	customer, ok := byAddress["jane@example.com"]
	if !ok {
		t.Fatal("expected customer message")
	}
	if !strings.Contains(customer.TextBody, "NB-20250501-A1B2C") {
		t.Fatalf("customer body missing order number: %s", customer.TextBody)
	}
	if !strings.Contains(customer.TextBody, "Deposit due now: $15.00") {
		t.Fatalf("customer body missing deposit line: %s", customer.TextBody)
	}

	staff, ok := byAddress["staff@bakery.example"]
	if !ok {
		t.Fatal("expected staff message")
	}
	if !strings.Contains(staff.TextBody, "https://bakery.example/admin/orders/ord_1") {
		t.Fatalf("staff body missing admin link: %s", staff.TextBody)
	}
	if staff.ReplyTo != "jane@example.com" {
		t.Fatalf("expected staff reply-to customer, got %s", staff.ReplyTo)
	}
}

func TestNotifyOrderPlacedOneFailureDoesNotBlockOther(t *testing.T) {
	mailer := &recordingMailer{
		fail: func(msg Message) error {
			if msg.ToAddress == "jane@example.com" {
				return errors.New("smtp exploded")
			}
			return nil
		},
	}

	var logged []string
	notifier, err := NewOrderNotifier(OrderNotifierConfig{
		Mailer:       mailer,
		StaffAddress: "staff@bakery.example",
		Logger: func(_ context.Context, event string, _ map[string]any) {
			logged = append(logged, event)
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	notifier.NotifyOrderPlaced(context.Background(), sampleOrder())

	sent := mailer.sent()
	if len(sent) != 1 || sent[0].ToAddress != "staff@bakery.example" {
		t.Fatalf("expected only staff message to land, got %#v", sent)
	}

	var sawFailure bool
	for _, event := range logged {
		if event == "notifications.send_failed" {
			sawFailure = true
		}
	}
	if !sawFailure {
		t.Fatal("expected failure to be logged")
	}
}

func TestStaffNotificationStripsMarkupFromUserText(t *testing.T) {
	order := sampleOrder()
	order.Notes = `<script>alert("x")</script>extra candles`

	msg := BuildStaffNotification(order, "staff@bakery.example", "")
	if strings.Contains(msg.HTMLBody, "<script>") {
		t.Fatalf("expected markup stripped from html body: %s", msg.HTMLBody)
	}
	if !strings.Contains(msg.HTMLBody, "extra candles") {
		t.Fatalf("expected note text to survive: %s", msg.HTMLBody)
	}
}

func TestBuildContactNotification(t *testing.T) {
	contact := domain.Contact{
		ID:      "ctc_1",
		Name:    "Sam",
		Email:   "sam@example.com",
		Message: "Do you make gluten-free cakes?",
	}

	msg := BuildContactNotification(contact, "staff@bakery.example")
	if msg.ToAddress != "staff@bakery.example" {
		t.Fatalf("unexpected recipient %s", msg.ToAddress)
	}
	if msg.ReplyTo != "sam@example.com" {
		t.Fatalf("expected reply-to sam@example.com, got %s", msg.ReplyTo)
	}
	if !strings.Contains(msg.TextBody, "gluten-free") {
		t.Fatalf("body missing message text: %s", msg.TextBody)
	}
}

func TestNotifyDepositPaidSendsBothMessages(t *testing.T) {
	mailer := &recordingMailer{}
	notifier, err := NewOrderNotifier(OrderNotifierConfig{
		Mailer:       mailer,
		StaffAddress: "staff@bakery.example",
		AdminBaseURL: "https://bakery.example",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	notifier.NotifyDepositPaid(context.Background(), sampleOrder())

	sent := mailer.sent()
	if len(sent) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(sent))
	}

	byAddress := map[string]Message{}
	for _, msg := range sent {
		byAddress[msg.ToAddress] = msg
	}

	customer, ok := byAddress["jane@example.com"]
	if !ok {
		t.Fatal("expected customer receipt")
	}
	if !strings.Contains(customer.Subject, "Payment received") {
		t.Fatalf("unexpected customer subject: %s", customer.Subject)
	}
	if !strings.Contains(customer.TextBody, "$15.00") {
		t.Fatalf("customer body missing deposit amount: %s", customer.TextBody)
	}

	staff, ok := byAddress["staff@bakery.example"]
	if !ok {
		t.Fatal("expected staff message")
	}
	if !strings.Contains(staff.TextBody, "https://bakery.example/admin/orders/ord_1") {
		t.Fatalf("staff body missing admin link: %s", staff.TextBody)
	}
}
