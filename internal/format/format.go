// Package format holds the display helpers shared by the admin and
// storefront responses.
package format

import (
	"fmt"
	"strings"
	"voidwebsite/internal/models"

	"github.com/shopspring/decimal"
)

// Currency renders a dollar amount as "$1,234.56".
func Currency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")
	return fmt.Sprintf("%s$%s.%s", sign, AddCommas(whole), cents)
}

// AddCommas groups a string of digits in threes.
func AddCommas(digits string) string {
	var parts []string
	for i := len(digits); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{digits[start:i]}, parts...)
	}
	return strings.Join(parts, ",")
}

var statusLabels = map[models.OrderStatus]string{
	models.OrderPending:    "Pending",
	models.OrderAccepted:   "Accepted",
	models.OrderProcessing: "Processing",
	models.OrderDelivered:  "Delivered",
	models.OrderDeclined:   "Declined",
	models.OrderCanceled:   "Canceled",
}

func StatusLabel(status models.OrderStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return "Unknown"
}

// StatusColor is the badge color the admin list uses for a status.
func StatusColor(status models.OrderStatus) string {
	switch status {
	case models.OrderPending:
		return "yellow"
	case models.OrderAccepted:
		return "blue"
	case models.OrderProcessing:
		return "purple"
	case models.OrderDelivered:
		return "green"
	case models.OrderDeclined, models.OrderCanceled:
		return "red"
	}
	return "gray"
}

// Match reports whether query is a case-insensitive substring of any field.
// An empty query matches everything.
func Match(query string, fields ...string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}
