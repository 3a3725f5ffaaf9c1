package docmeta

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/paperlens/internal/doctree"
)

const abstractWord = "abstract"

// isShortNonTerminalLine reports whether text looks like an author line:
// non-empty, shorter than 120 characters, no closing full stop.
func isShortNonTerminalLine(text string) bool {
	n := runeLen(text)
	return n > 0 && n < maxAuthorLineLen && !strings.HasSuffix(text, ".")
}

// startsWithAbstractMarker reports whether text opens with the word
// "Abstract" (any case) followed by a colon or whitespace.
func startsWithAbstractMarker(text string) bool {
	if len(text) <= len(abstractWord) || !strings.EqualFold(text[:len(abstractWord)], abstractWord) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[len(abstractWord):])
	return isMarkerSeparator(r)
}

// stripAbstractMarker removes the leading "Abstract" word and any run of
// colons and whitespace after it.
func stripAbstractMarker(text string) string {
	rest := strings.TrimLeftFunc(text[len(abstractWord):], isMarkerSeparator)
	return strings.TrimSpace(rest)
}

func isMarkerSeparator(r rune) bool {
	return r == ':' || unicode.IsSpace(r)
}

// isAbstractLabel reports whether n is an element whose whole text is the
// word "Abstract".
func isAbstractLabel(n *doctree.Node) bool {
	return n != nil && strings.EqualFold(n.TrimmedText(), abstractWord)
}

// splitAuthors splits an author line on ',', ';', '&' and the standalone
// word "and", dropping empty fragments.
func splitAuthors(line string) []string {
	rs := []rune(line)
	var parts []string
	start := 0
	flush := func(end int) {
		if p := strings.TrimSpace(string(rs[start:end])); p != "" {
			parts = append(parts, p)
		}
	}
	for i := 0; i < len(rs); {
		switch {
		case isAuthorDelimiter(rs[i]):
			flush(i)
			i++
			start = i
		case isConjunctionAt(rs, i):
			flush(i)
			i += len("and")
			start = i
		default:
			i++
		}
	}
	flush(len(rs))
	return parts
}

func isAuthorDelimiter(r rune) bool {
	return r == ',' || r == ';' || r == '&'
}

// isConjunctionAt reports whether rs[i:] begins with "and" as a whole word.
func isConjunctionAt(rs []rune, i int) bool {
	end := i + len("and")
	if end > len(rs) || !strings.EqualFold(string(rs[i:end]), "and") {
		return false
	}
	if i > 0 && isWordRune(rs[i-1]) {
		return false
	}
	return end == len(rs) || !isWordRune(rs[end])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
