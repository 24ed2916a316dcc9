// Package typeinfer classifies raw text fields as integers, floats or text
// and converts them to typed Go values.
package typeinfer

import (
	"strconv"
)

// Kind is the inferred type of a text token
type Kind int

const (
	// Text is the fallback kind for anything that is not numeric
	Text Kind = iota
	// Integer tokens consist only of decimal digits
	Integer
	// Float tokens have digits on both sides of exactly one decimal point
	Float
)

// String returns the lower-case name of the kind
func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Float:
		return "float"
	default:
		return "text"
	}
}

// Classify returns Integer if every character of token is a decimal digit,
// Float if token is digits, one '.', digits, and Text otherwise.
// Signs, exponents and surrounding whitespace all make a token Text.
func Classify(token string) Kind {
	if token == "" {
		return Text
	}

	dot := -1
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && dot < 0:
			dot = i
		default:
			// a second dot lands here too, so "1.2.3" is text
			return Text
		}
	}

	if dot < 0 {
		return Integer
	}
	if dot == 0 || dot == len(token)-1 {
		return Text
	}
	return Float
}

// Convert classifies token and parses it accordingly. Integers become int64,
// floats become float64 and text is returned unchanged as a string.
// It never fails: a digit run too large for int64 is parsed as a float.
func Convert(token string) any {
	switch Classify(token) {
	case Integer:
		if v, err := strconv.ParseInt(token, 10, 64); err == nil {
			return v
		}
		if v, err := strconv.ParseFloat(token, 64); err == nil {
			return v
		}
	case Float:
		if v, err := strconv.ParseFloat(token, 64); err == nil {
			return v
		}
	}
	return token
}

// ConvertAll converts every token in order
func ConvertAll(tokens []string) []any {
	values := make([]any, len(tokens))
	for i, tok := range tokens {
		values[i] = Convert(tok)
	}
	return values
}

// Number returns v as a float64 if it holds one of the numeric types
// produced by Convert.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
