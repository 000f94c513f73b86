// Package validate reúne checagens de formato compartilhadas pelos serviços.
package validate

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Email informa se s é um endereço simples (sem nome de exibição).
func Email(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@"):], ".")
}

// UUID informa se s é um identificador UUID válido.
func UUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// MaxLen informa se s tem no máximo n caracteres.
func MaxLen(s string, n int) bool {
	return utf8.RuneCountInString(s) <= n
}
