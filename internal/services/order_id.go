package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderID returns a customer-facing order number such as
// ORD-LTF3K2M1-9C4A.
func NewOrderID(now time.Time) string {
	stamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return "ORD-" + stamp + "-" + suffix
}
