package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Verifier checks gateway-issued HMAC-SHA256 signatures.
type Verifier struct {
	keySecret     []byte
	webhookSecret []byte
}

// NewVerifier builds a Verifier. An empty webhookSecret disables webhook verification.
func NewVerifier(keySecret, webhookSecret string) *Verifier {
	v := &Verifier{keySecret: []byte(keySecret)}
	if webhookSecret != "" {
		v.webhookSecret = []byte(webhookSecret)
	}
	return v
}

// PaymentSignature returns the hex digest the gateway attaches to a completed checkout.
func (v *Verifier) PaymentSignature(orderID, paymentID string) string {
	return hex.EncodeToString(sum(v.keySecret, []byte(orderID+"|"+paymentID)))
}

// VerifyPayment reports whether signature matches orderID|paymentID under the key secret.
func (v *Verifier) VerifyPayment(orderID, paymentID, signature string) bool {
	return compare(sum(v.keySecret, []byte(orderID+"|"+paymentID)), signature)
}

// WebhookEnabled reports whether a webhook secret was configured.
func (v *Verifier) WebhookEnabled() bool {
	return len(v.webhookSecret) > 0
}

// VerifyWebhook checks the signature header against the raw request body.
func (v *Verifier) VerifyWebhook(body []byte, signature string) bool {
	if !v.WebhookEnabled() {
		return false
	}
	return compare(sum(v.webhookSecret, body), signature)
}

func sum(key, msg []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(msg)
	return mac.Sum(nil)
}

// compare decodes the hex signature and compares digests in constant time.
func compare(expected []byte, signature string) bool {
	got, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}
