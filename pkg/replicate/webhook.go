package replicate

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// VerifySignature authenticates a webhook delivery.
//
// The signed content is "{id}.{timestamp}.{body}". The shared secret has the
// form "whsec_<base64>"; the portion after the prefix is the HMAC-SHA256 key.
// The signature header holds one or more space-separated "version,signature"
// tokens (multiple during key rotation); the delivery is authentic when the
// computed digest matches any of them. Comparison is constant-time.
func VerifySignature(secret, id, timestamp string, body []byte, signatureHeader string) (bool, error) {
	_, encodedKey, found := strings.Cut(secret, "_")
	if !found {
		return false, fmt.Errorf("malformed webhook secret")
	}
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return false, fmt.Errorf("decode webhook secret: %w", err)
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(id))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	computed := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	for _, token := range strings.Fields(signatureHeader) {
		_, signature, found := strings.Cut(token, ",")
		if !found {
			continue
		}
		if hmac.Equal([]byte(signature), []byte(computed)) {
			return true, nil
		}
	}
	return false, nil
}
