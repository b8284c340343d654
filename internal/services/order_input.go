package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/david1984moore/natalybakery-api/internal/domain"
)

const deliveryDateLayout = "2006-01-02"

const maxOrderItems = 50

func validateCustomer(v *fieldErrors, name, email string) {
	v.requireString("customerName", name, "customer name is required")
	if strings.TrimSpace(email) == "" {
		v.add("customerEmail", "customer email is required")
	} else if !validEmail(email) {
		v.add("customerEmail", "customer email is not a valid address")
	}
}

func validateItems(v *fieldErrors, items []ItemInput) {
	if len(items) == 0 {
		v.add("items", "at least one item is required")
		return
	}
	if len(items) > maxOrderItems {
		v.add("items", "too many items")
		return
	}
	for i, item := range items {
		if strings.TrimSpace(item.ProductName) == "" {
			v.add(itemField(i, "productName"), "product name is required")
		}
		if item.Quantity < 1 {
			v.add(itemField(i, "quantity"), "quantity must be at least 1")
		}
		if !item.UnitPrice.IsPositive() {
			v.add(itemField(i, "unitPrice"), "unit price must be positive")
		}
	}
}

func itemField(index int, name string) string {
	return fmt.Sprintf("items[%d].%s", index, name)
}

func validateDelivery(v *fieldErrors, location, date, timeSlot string, required bool) {
	if required {
		v.requireString("deliveryLocation", location, "delivery location is required")
		v.requireString("deliveryDate", date, "delivery date is required")
		v.requireString("deliveryTime", timeSlot, "delivery time is required")
	}
	if strings.TrimSpace(date) != "" {
		if _, err := time.Parse(deliveryDateLayout, strings.TrimSpace(date)); err != nil {
			v.add("deliveryDate", "delivery date must be formatted YYYY-MM-DD")
		}
	}
}

// buildOrderItems snapshots the requested items into line-item rows and
// returns them with the order total.
func buildOrderItems(ids IDGenerator, orderID string, items []ItemInput) ([]domain.OrderItem, decimal.Decimal) {
	rows := make([]domain.OrderItem, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		rows = append(rows, domain.OrderItem{
			ID:          ids(ItemIDPrefix),
			OrderID:     orderID,
			ProductName: strings.TrimSpace(item.ProductName),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Round(2),
			TotalPrice:  lineTotal,
		})
		total = total.Add(lineTotal)
	}
	return rows, total
}
