package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the interpreted type of a cell value.
type Kind int

const (
	KindEmpty Kind = iota
	KindNumber
	KindDate
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

// DefaultDateLayouts are tried in order when a value is interpreted as a date.
var DefaultDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02/01/2006",
}

// ParseNumber interprets s as a finite decimal number.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseDate interprets s with the first matching layout. A nil layouts
// slice means DefaultDateLayouts.
func ParseDate(s string, layouts []string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if layouts == nil {
		layouts = DefaultDateLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// InferKind classifies a raw cell value.
func InferKind(s string, layouts []string) Kind {
	if strings.TrimSpace(s) == "" {
		return KindEmpty
	}
	if _, ok := ParseNumber(s); ok {
		return KindNumber
	}
	if _, ok := ParseDate(s, layouts); ok {
		return KindDate
	}
	return KindText
}

// ToFloat64 converts numeric values, and strings holding numbers, to float64.
func ToFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case string:
		return ParseNumber(val)
	default:
		return 0, false
	}
}

// FormatValue renders a value as cell text.
func FormatValue(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}
