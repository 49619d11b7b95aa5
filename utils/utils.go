package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateTransactionID returns a new unique ledger transaction identifier
func GenerateTransactionID() string {
	return "TXN-" + strings.ToUpper(uuid.NewString())
}

// GenerateCertificateID returns a new unique certificate identifier
func GenerateCertificateID() string {
	return "CERT-" + strings.ToUpper(uuid.NewString())
}
