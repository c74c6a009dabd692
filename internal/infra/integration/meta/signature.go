package meta

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

const (
	SignatureHeader = "X-Hub-Signature-256"
	signaturePrefix = "sha256="
)

// VerifySignature confere o X-Hub-Signature-256 contra o corpo cru recebido.
// O corpo precisa ser exatamente o que veio no fio, nunca um JSON re-serializado.
func VerifySignature(rawBody []byte, header, appSecret string) bool {
	if header == "" || appSecret == "" {
		return false
	}

	expected := Sign(rawBody, appSecret)
	received := strings.TrimPrefix(header, signaturePrefix)

	return subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1
}

// Sign gera o HMAC-SHA256 em hex (sem o prefixo sha256=).
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
