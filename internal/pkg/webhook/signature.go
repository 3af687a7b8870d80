// Package webhook authenticates commerce platform webhook deliveries.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Header names set by the commerce platform on every webhook delivery.
const (
	HeaderHMAC       = "X-Shopify-Hmac-Sha256"
	HeaderShopDomain = "X-Shopify-Shop-Domain"
	HeaderTopic      = "X-Shopify-Topic"
)

// Verify checks a base64 HMAC-SHA256 signature over the raw, undecoded body.
// Any malformed input is reported as a failed verification.
func Verify(secret string, body []byte, provided string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	provided = strings.TrimSpace(provided)
	if secret == "" || provided == "" {
		return false
	}
	got, err := base64.StdEncoding.DecodeString(provided)
	if err != nil {
		return false
	}
	return hmac.Equal(digest(secret, body), got)
}

// Sign returns the base64 HMAC-SHA256 of body, as the platform puts it in HeaderHMAC.
func Sign(secret string, body []byte) string {
	return base64.StdEncoding.EncodeToString(digest(secret, body))
}

func digest(secret string, body []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return mac.Sum(nil)
}
