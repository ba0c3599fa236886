package lattice

import (
	"strconv"
	"strings"
)

// Kind tags how a value renders into labels and configuration files.
type Kind int

const (
	KindNumber Kind = iota
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	}
	return "unknown"
}

// Value is a single parameter setting. Text is written verbatim into the
// configuration substrates; Number is only meaningful for KindNumber.
type Value struct {
	Kind   Kind
	Text   string
	Number float64
}

// Num returns a numeric value rendered in shortest round-trip form.
func Num(f float64) Value {
	return Value{Kind: KindNumber, Number: f, Text: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Int returns an integral numeric value.
func Int(n int) Value {
	return Value{Kind: KindNumber, Number: float64(n), Text: strconv.Itoa(n)}
}

// Str returns a string value. Quote characters are kept as given.
func Str(s string) Value {
	return Value{Kind: KindString, Text: s}
}

// ParseValue classifies a raw literal. Quoted text is a string, anything
// that parses as a float (including Fortran double precision such as 1.0d-3)
// is a number with its literal text preserved, and everything else is an
// (unquoted) string.
func ParseValue(raw string) Value {
	text := strings.TrimSpace(raw)
	if isQuoted(text) {
		return Str(text)
	}
	if f, ok := parseReal(text); ok {
		return Value{Kind: KindNumber, Number: f, Text: text}
	}
	return Str(text)
}

func parseReal(text string) (float64, bool) {
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f, true
	}
	if strings.Count(strings.ToLower(text), "d") != 1 {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.NewReplacer("d", "e", "D", "e").Replace(text), 64)
	return f, err == nil
}

// Quoted reports whether a string value begins and ends with the same quote character.
func (v Value) Quoted() bool {
	return isQuoted(v.Text)
}

func (v Value) String() string {
	return v.Text
}

func isQuoted(text string) bool {
	if len(text) < 2 {
		return false
	}
	first, last := text[0], text[len(text)-1]
	return first == last && (first == '\'' || first == '"')
}

// Tuple is the value of one dimension slot: a single component for scalar
// dimensions, one component per member name for grouped dimensions.
type Tuple []Value

// ParseTuple splits a comma-separated group literal such as "1, 2, 'x'".
// Components are trimmed; commas inside quoted strings are not supported.
func ParseTuple(raw string) Tuple {
	parts := strings.Split(raw, ",")
	out := make(Tuple, 0, len(parts))
	for _, part := range parts {
		out = append(out, ParseValue(part))
	}
	return out
}

// Text joins the component literals with commas.
func (t Tuple) Text() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = v.Text
	}
	return strings.Join(parts, ",")
}

// Clone returns a copy of the tuple.
func (t Tuple) Clone() Tuple {
	if t == nil {
		return nil
	}
	out := make(Tuple, len(t))
	copy(out, t)
	return out
}
