package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Sources for the built-in field patterns. They are written the way they
// appear inside a pattern attribute, without anchors.
const (
	NumericSource = `[-]?[0-9]*[.,]?[0-9]+`
	EmailSource   = `(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))`
)

var (
	// Numeric accepts an optional minus sign, optional integer digits, an
	// optional single '.' or ',' separator and at least one trailing digit.
	Numeric = MustCompile(NumericSource)
	// Email accepts a dotted local part (or a quoted string) followed by a
	// bracketed IPv4 literal or a domain with a TLD of two or more letters.
	Email = MustCompile(EmailSource)
)

// Pattern is a compiled whole-value matcher.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// Compile anchors src so it matches complete values only.
func Compile(src string) (*Pattern, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return nil, errors.New("pattern: source is required")
	}
	re, err := regexp.Compile(`^(?:` + trimmed + `)$`)
	if err != nil {
		return nil, fmt.Errorf("pattern: compile %q: %w", trimmed, err)
	}
	return &Pattern{source: trimmed, re: re}, nil
}

// MustCompile panics when src is not a valid expression.
func MustCompile(src string) *Pattern {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// Source returns the unanchored expression.
func (p *Pattern) Source() string {
	if p == nil {
		return ""
	}
	return p.source
}

// Match reports whether value matches the pattern in full. A nil pattern
// accepts everything.
func (p *Pattern) Match(value string) bool {
	if p == nil || p.re == nil {
		return true
	}
	return p.re.MatchString(value)
}

// HTMLSource returns the expression rewritten for a pattern attribute.
// Browsers compile that attribute with the JavaScript v flag, which rejects
// unescaped ( ) [ { } / | inside a character class, a bare - at either end
// of a class and doubled punctuators such as "..". Those characters are
// escaped inside classes; everything else is copied as is, so the result
// accepts the same values as Source.
func (p *Pattern) HTMLSource() string {
	if p == nil {
		return ""
	}
	return htmlSource(p.source)
}

const classSyntax = "()[{}/|"

func htmlSource(src string) string {
	var b strings.Builder
	b.Grow(len(src) + 8)

	inClass := false
	classStart := 0
	var prev byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '\\' && i+1 < len(src) {
			b.WriteByte(c)
			b.WriteByte(src[i+1])
			i++
			prev = 0
			continue
		}
		if !inClass {
			b.WriteByte(c)
			if c == '[' {
				inClass = true
				if i+1 < len(src) && src[i+1] == '^' {
					b.WriteByte('^')
					i++
				}
				classStart = i + 1
				prev = 0
			}
			continue
		}

		switch {
		case c == ']' && i == classStart:
			b.WriteString(`\]`)
			prev = 0
		case c == ']':
			b.WriteByte(c)
			inClass = false
		case c == '-' && (i == classStart || (i+1 < len(src) && src[i+1] == ']')):
			b.WriteString(`\-`)
			prev = 0
		case strings.IndexByte(classSyntax, c) >= 0:
			b.WriteByte('\\')
			b.WriteByte(c)
			prev = 0
		case c == prev && strings.IndexByte("&!#$%*+,.:;<=>?@^`~", c) >= 0:
			b.WriteByte('\\')
			b.WriteByte(c)
			prev = 0
		default:
			b.WriteByte(c)
			prev = c
		}
	}
	return b.String()
}

func (p *Pattern) String() string {
	return p.Source()
}

// Mismatch mirrors the constraint validation check: it reports whether value
// fails p. With allowEmpty an empty value never mismatches, which is how
// browsers treat the pattern attribute on blank inputs.
func Mismatch(p *Pattern, value string, allowEmpty bool) bool {
	if value == "" && allowEmpty {
		return false
	}
	return !p.Match(value)
}
