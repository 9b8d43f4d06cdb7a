package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GeneratePaymentID returns the identifier recorded against a
// transaction and sent to the payment rail as the payment memo key.
func GeneratePaymentID() string {
	return "LEN-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:24]
}
