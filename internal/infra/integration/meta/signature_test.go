package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	secret := "app-secret"
	body := []byte(`{"object":"page","entry":[{"changes":[{"field":"leadgen","value":{"leadgen_id":"123"}}]}]}`)
	sig := Sign(body, secret)

	tests := []struct {
		name   string
		body   []byte
		header string
		secret string
		want   bool
	}{
		{"valida com prefixo", body, "sha256=" + sig, secret, true},
		{"valida sem prefixo", body, sig, secret, true},
		{"secret diferente", body, "sha256=" + sig, "outro-secret", false},
		{"corpo adulterado", []byte(`{"object":"page","entry":[]}`), "sha256=" + sig, secret, false},
		{"header vazio", body, "", secret, false},
		{"secret vazio", body, "sha256=" + sig, "", false},
		{"prefixo errado", body, "sha1=" + sig, secret, false},
		{"lixo", body, "sha256=zzzz", secret, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifySignature(tt.body, tt.header, tt.secret))
		})
	}
}

func TestVerifySignatureUsesRawBytes(t *testing.T) {
	secret := "s3cr3t"
	raw := []byte("{\n  \"object\": \"page\"\n}")
	compact := []byte(`{"object":"page"}`)

	assert.True(t, VerifySignature(raw, "sha256="+Sign(raw, secret), secret))
	assert.False(t, VerifySignature(compact, "sha256="+Sign(raw, secret), secret))
}
