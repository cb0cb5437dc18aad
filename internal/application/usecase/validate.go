package usecase

import (
	"strings"
	"unicode/utf8"
)

// requiredText exige texto no vacío (tras recortar espacios) de hasta max caracteres.
func requiredText(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && utf8.RuneCountInString(s) <= max
}

// optionalText normaliza "" a nil y limita la longitud.
func optionalText(s *string, max int) (*string, bool) {
	if s == nil {
		return nil, true
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, true
	}
	return &v, utf8.RuneCountInString(v) <= max
}
