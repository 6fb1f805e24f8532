// Package naming converts identifiers between the casing conventions each
// target language expects, generalizing the teacher's GoPublicIdent/
// sanitizeTSIdent identifier-sanitizing idiom to a shared, language-neutral
// case-conversion toolkit (no case-conversion library was available
// anywhere in the example pack, so this is hand-rolled rather than
// imported — see DESIGN.md).
package naming

import "strings"

// words splits an identifier on case boundaries, underscores, and hyphens.
func words(s string) []string {
	var out []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
				if (prev >= 'a' && prev <= 'z') || (prev >= '0' && prev <= '9') {
					flush()
				} else if prev >= 'A' && prev <= 'Z' && nextLower {
					flush()
				}
			}
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

func CamelCase(s string) string {
	ws := words(s)
	if len(ws) == 0 {
		return s
	}
	var sb strings.Builder
	sb.WriteString(strings.ToLower(ws[0]))
	for _, w := range ws[1:] {
		sb.WriteString(capitalize(w))
	}
	return sb.String()
}

func PascalCase(s string) string {
	var sb strings.Builder
	for _, w := range words(s) {
		sb.WriteString(capitalize(w))
	}
	return sb.String()
}

func SnakeCase(s string) string {
	ws := words(s)
	lowered := make([]string, len(ws))
	for i, w := range ws {
		lowered[i] = strings.ToLower(w)
	}
	return strings.Join(lowered, "_")
}

func ScreamingSnakeCase(s string) string {
	return strings.ToUpper(SnakeCase(s))
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}

// SuffixIfReserved appends "_" when name collides with a word in reserved,
// following the convention spec'd for Rust field-name escaping.
func SuffixIfReserved(name string, reserved map[string]bool) string {
	if reserved[name] {
		return name + "_"
	}
	return name
}
