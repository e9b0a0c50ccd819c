// Package algo has the pure algorithms behind dynamic sorting of records.
package algo

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Kind tags the type a value is compared as.
type Kind int

// Value kinds in comparison priority order.
const (
	KindNull Kind = iota
	KindNumber
	KindDate
	KindString
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "string"
	}
}

// dateLayouts are the calendar formats recognised for date comparison, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-1-2",
	"2006/1/2",
	"2006-01",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon Jan 2 2006",
}

// Value is a classified comparison operand.
type Value struct {
	Kind   Kind
	Number float64
	Date   time.Time
	Text   string
}

// Classify tags a raw field value. A value that is numeric is never considered a date,
// and anything that is neither numeric nor a recognised date compares as text.
func Classify(v any) Value {
	switch x := v.(type) {
	case nil:
		return Value{Kind: KindNull}
	case time.Time:
		return Value{Kind: KindDate, Date: x, Text: x.Format(time.RFC3339Nano)}
	case *time.Time:
		if x == nil {
			return Value{Kind: KindNull}
		}
		return Classify(*x)
	case json.Number:
		return classifyString(x.String())
	case string:
		return classifyString(x)
	case *string:
		if x == nil {
			return Value{Kind: KindNull}
		}
		return classifyString(*x)
	}

	if n, ok := toFloat(v); ok {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return Value{Kind: KindString, Text: strconv.FormatFloat(n, 'f', -1, 64)}
		}
		return Value{Kind: KindNumber, Number: n, Text: strconv.FormatFloat(n, 'f', -1, 64)}
	}
	return Value{Kind: KindString, Text: stringify(v)}
}

// ParseDate parses s with the fixed calendar layouts, then falls back to dateparse
// for the looser forms it understands. Slash dates read month first. Times without
// a zone are UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return parseLoose(s)
}

// parseLoose wraps dateparse, which can panic on some malformed inputs.
func parseLoose(s string) (t time.Time, ok bool) {
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()
	t, err := dateparse.ParseIn(s, time.UTC)
	return t, err == nil
}

func classifyString(s string) Value {
	trimmed := strings.TrimSpace(s)
	if trimmed != "" {
		if n, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			return Value{Kind: KindNumber, Number: n, Text: s}
		}
		if t, ok := ParseDate(trimmed); ok {
			return Value{Kind: KindDate, Date: t, Text: s}
		}
	}
	return Value{Kind: KindString, Text: s}
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}

func stringify(v any) string {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case []byte:
		return string(x)
	default:
		if b, err := json.Marshal(x); err == nil {
			return string(b)
		}
		return ""
	}
}
