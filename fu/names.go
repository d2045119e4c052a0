package fu

import (
	"strings"
	"unicode"
)

/*
LayerName converts an arbitrary variable-derived name into a name acceptable as a
network layer name: only ASCII letters, digits and `_.-/` survive, everything else
becomes `_`. A name starting with a non alphanumeric character gets `x` prefix.
*/
func LayerName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("_.-/", r)) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	n := b.String()
	if n == "" {
		return "x"
	}
	if c := rune(n[0]); !unicode.IsLetter(c) && !unicode.IsDigit(c) {
		return "x" + n
	}
	return n
}
