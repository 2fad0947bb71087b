package codegen

import (
	"strings"
	"unicode"
)

// splitWords breaks an identifier into its words. Boundaries are
// underscores, hyphens, spaces, a lower-to-upper transition, and the last
// capital of an all-caps run ("HTTPRequest" splits as HTTP, Request).
func splitWords(ident string) []string {
	var words []string
	var cur []rune
	runes := []rune(ident)

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				next := rune(0)
				if i+1 < len(runes) {
					next = runes[i+1]
				}
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					flush()
				} else if unicode.IsUpper(prev) && unicode.IsLower(next) {
					flush()
				}
			}
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return words
}

// SnakeCase renders an identifier as lower snake_case.
func SnakeCase(ident string) string {
	words := splitWords(ident)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// PascalCase renders an identifier as UpperCamelCase.
func PascalCase(ident string) string {
	var b strings.Builder
	for _, w := range splitWords(ident) {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

// CamelCase renders an identifier as lowerCamelCase.
func CamelCase(ident string) string {
	words := splitWords(ident)
	var b strings.Builder
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		if i > 0 {
			r[0] = unicode.ToUpper(r[0])
		}
		b.WriteString(string(r))
	}
	return b.String()
}
