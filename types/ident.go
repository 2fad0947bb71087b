package types

import (
	"strings"
)

// TypeIdent identifies a type by name plus ordered generic arguments.
// The rendered form ("Name<A, B>") is the stable key used for
// deduplication throughout the generator.
type TypeIdent struct {
	Name string
	Args []TypeIdent
}

// Ident constructs a TypeIdent without generic arguments.
func Ident(name string) TypeIdent {
	return TypeIdent{Name: name}
}

// IdentOf constructs a TypeIdent with generic arguments.
func IdentOf(name string, args ...TypeIdent) TypeIdent {
	return TypeIdent{Name: name, Args: args}
}

// String renders the ident in its canonical form.
func (id TypeIdent) String() string {
	if len(id.Args) == 0 {
		return id.Name
	}
	var b strings.Builder
	b.WriteString(id.Name)
	b.WriteByte('<')
	for i, arg := range id.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	b.WriteByte('>')
	return b.String()
}

// IsGeneric reports whether the ident carries generic arguments.
func (id TypeIdent) IsGeneric() bool {
	return len(id.Args) > 0
}

// Equal reports structural equality of two idents.
func (id TypeIdent) Equal(other TypeIdent) bool {
	if id.Name != other.Name || len(id.Args) != len(other.Args) {
		return false
	}
	for i := range id.Args {
		if !id.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// MangledName collapses a generic ident into a single flat identifier
// suitable for naming a monomorphized node ("List<Point>" -> "List_Point").
func (id TypeIdent) MangledName() string {
	if len(id.Args) == 0 {
		return id.Name
	}
	parts := make([]string, 0, len(id.Args)+1)
	parts = append(parts, id.Name)
	for _, arg := range id.Args {
		parts = append(parts, arg.MangledName())
	}
	return strings.Join(parts, "_")
}

// ParseIdent parses the canonical rendered form back into a TypeIdent.
// It accepts nested generics: "Map<String, List<Point>>".
func ParseIdent(s string) (TypeIdent, bool) {
	id, rest, ok := parseIdent(strings.TrimSpace(s))
	if !ok || strings.TrimSpace(rest) != "" {
		return TypeIdent{}, false
	}
	return id, true
}

func parseIdent(s string) (TypeIdent, string, bool) {
	s = strings.TrimLeft(s, " ")
	i := 0
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	if i == 0 {
		return TypeIdent{}, s, false
	}
	id := TypeIdent{Name: s[:i]}
	rest := s[i:]
	if !strings.HasPrefix(rest, "<") {
		return id, rest, true
	}
	rest = rest[1:]
	for {
		arg, r, ok := parseIdent(rest)
		if !ok {
			return TypeIdent{}, rest, false
		}
		id.Args = append(id.Args, arg)
		rest = strings.TrimLeft(r, " ")
		if strings.HasPrefix(rest, ",") {
			rest = rest[1:]
			continue
		}
		if strings.HasPrefix(rest, ">") {
			return id, rest[1:], true
		}
		return TypeIdent{}, rest, false
	}
}

func isIdentChar(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
