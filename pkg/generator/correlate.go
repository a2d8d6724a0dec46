package generator

import (
	"math"
	"strings"
	"unicode"

	"github.com/getmockd/mockmaster/pkg/schema"
)

// CorrelationMode selects how generated emails are derived from names.
type CorrelationMode string

// Correlation modes.
const (
	// CorrelateByKey rewrites the value at key "email" from the value at key
	// "name". Fields keyed differently (full_name, email_address) are left
	// alone even when their types are name and email.
	CorrelateByKey CorrelationMode = "key"
	// CorrelateByType rewrites every email-typed field from the first
	// name-typed field, whatever their keys.
	CorrelateByType CorrelationMode = "type"
	// CorrelateNone disables correlation.
	CorrelateNone CorrelationMode = "none"
)

// Literal keys used by CorrelateByKey.
const (
	correlationNameKey  = "name"
	correlationEmailKey = "email"
)

// ParseCorrelationMode parses a correlation mode string.
// Returns CorrelateByKey and false if the string is not recognized.
func ParseCorrelationMode(s string) (CorrelationMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "key":
		return CorrelateByKey, true
	case "type":
		return CorrelateByType, true
	case "none", "off":
		return CorrelateNone, true
	default:
		return CorrelateByKey, false
	}
}

// correlate runs once per row after every field has been generated.
func (e *Engine) correlate(s schema.Schema, row *Row) {
	switch e.correlation {
	case CorrelateByKey:
		email, ok := row.Get(correlationEmailKey)
		if !ok || !truthy(email) {
			return
		}
		name, _ := row.Get(correlationNameKey)
		nameStr, ok := name.(string)
		if !ok || nameStr == "" {
			return
		}
		row.Set(correlationEmailKey, slugify(nameStr)+"@"+fakerDomainName(e.src))

	case CorrelateByType:
		nameStr := ""
		for _, f := range s {
			if f.Type != schema.TypeName {
				continue
			}
			v, _ := row.Get(f.Key)
			if str, ok := v.(string); ok && str != "" {
				nameStr = str
				break
			}
		}
		if nameStr == "" {
			return
		}
		slug := slugify(nameStr)
		for _, f := range s {
			if f.Type != schema.TypeEmail {
				continue
			}
			if v, _ := row.Get(f.Key); truthy(v) {
				row.Set(f.Key, slug+"@"+fakerDomainName(e.src))
			}
		}
	}
}

// slugify lower-cases s and collapses each run of whitespace into one '.'.
// Leading and trailing whitespace runs are kept as dots.
func slugify(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inSpace := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			if !inSpace {
				sb.WriteByte('.')
				inSpace = true
			}
			continue
		}
		inSpace = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// truthy reports whether a generated value counts as present.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0 && !math.IsNaN(val)
	default:
		return true
	}
}
