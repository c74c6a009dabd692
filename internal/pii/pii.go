// Package pii normaliza e faz hash (SHA-256) dos dados pessoais enviados
// para as APIs de conversão (Meta CAPI e TikTok Events API).
package pii

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// CountryCodeBR é prefixado em telefones locais (DDD + número).
const CountryCodeBR = "55"

type PhoneFormat int

const (
	// PhoneBare: "5511999998888" (Meta)
	PhoneBare PhoneFormat = iota
	// PhonePlus: "+5511999998888" (TikTok)
	PhonePlus
)

// Hash aplica lower-case + trim e retorna o SHA-256 em hex.
func Hash(value string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// NormalizePhone remove tudo que não é dígito. Números com 10 ou 11 dígitos
// são locais (BR) e recebem o código do país; o resto passa sem alteração.
func NormalizePhone(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	if len(digits) == 10 || len(digits) == 11 {
		return CountryCodeBR + digits
	}
	return digits
}

// FirstName retorna o primeiro token do nome completo.
func FirstName(fullName string) string {
	trimmed := strings.TrimSpace(fullName)
	idx := strings.IndexFunc(trimmed, unicode.IsSpace)
	if idx < 0 {
		return trimmed
	}
	return trimmed[:idx]
}

func HashEmail(email string) string {
	if strings.TrimSpace(email) == "" {
		return ""
	}
	return Hash(email)
}

// HashPhone normaliza o telefone no formato pedido pelo provedor antes do hash.
// Retorna "" quando não sobra nenhum dígito.
func HashPhone(raw string, format PhoneFormat) string {
	phone := NormalizePhone(raw)
	if phone == "" {
		return ""
	}
	if format == PhonePlus {
		phone = "+" + phone
	}
	return Hash(phone)
}

func HashFirstName(fullName string) string {
	first := FirstName(fullName)
	if first == "" {
		return ""
	}
	return Hash(first)
}
