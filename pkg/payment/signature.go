package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// Signature computes the notification signature the provider sends:
// SHA-512 over order_id + status_code + gross_amount + serverKey,
// hex encoded.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature checks a webhook signature_key in constant time.
func VerifySignature(orderID, statusCode, grossAmount, serverKey, signatureKey string) bool {
	if serverKey == "" || signatureKey == "" {
		return false
	}
	expected := Signature(orderID, statusCode, grossAmount, serverKey)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signatureKey))))
}
