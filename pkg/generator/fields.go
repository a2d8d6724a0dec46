package generator

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/getmockd/mockmaster/pkg/schema"
	"github.com/google/uuid"
)

// generateField produces one value for f. Unknown types yield nil.
func (e *Engine) generateField(f schema.Field, now time.Time) any {
	switch f.Type {
	case schema.TypeName:
		return fakerFullName(e.src)
	case schema.TypeEmail:
		return fakerEmail(e.src)
	case schema.TypePhone:
		return fakerPhone(e.src)
	case schema.TypeAddress:
		return fakerStreetAddress(e.src)
	case schema.TypeCompany:
		return fakerCompanyName(e.src)
	case schema.TypeDate:
		return e.fakerDate(f.Options, now)
	case schema.TypeUUID:
		return fakerUUID(e.src)
	case schema.TypeBoolean:
		return e.src.IntN(2) == 1
	case schema.TypeAmount:
		minVal, maxVal := f.Options.AmountBounds()
		return fakerAmount(e.src, minVal, maxVal)
	case schema.TypeAvatar:
		return fakerAvatar(e.src)
	case schema.TypeSentence:
		return fakerSentence(e.src)
	case schema.TypeEnum:
		values := f.Options.EnumValues()
		if len(values) == 0 {
			return nil
		}
		return pick(e.src, values)
	default:
		return nil
	}
}

func fakerFullName(src Source) string {
	return pick(src, fakerFirstNames) + " " + pick(src, fakerLastNames)
}

// fakerEmail builds a mailbox from a random first and last name.
func fakerEmail(src Source) string {
	first := strings.ToLower(pick(src, fakerFirstNames))
	last := strings.ToLower(pick(src, fakerLastNames))

	var local string
	switch src.IntN(3) {
	case 0:
		local = first + "." + last
	case 1:
		local = first + "_" + last
	default:
		local = first + strconv.Itoa(src.IntN(100))
	}
	return local + "@" + pick(src, fakerFreeEmailDomains)
}

// fakerDomainName generates a domain like "bright-harbor.io".
func fakerDomainName(src Source) string {
	return pick(src, fakerDomainWords) + "-" + pick(src, fakerDomainWords) + "." + pick(src, fakerDomainSuffixes)
}

func fakerPhone(src Source) string {
	return replaceDigits(src, pick(src, fakerPhoneFormats))
}

func fakerStreetAddress(src Source) string {
	addr := strconv.Itoa(src.IntN(9900)+100) + " " + pick(src, fakerStreetNames) + " " + pick(src, fakerStreetSuffixes)
	if src.IntN(4) == 0 {
		addr += " " + replaceDigits(src, pick(src, fakerSecondaryAddresses))
	}
	return addr
}

func fakerCompanyName(src Source) string {
	switch src.IntN(3) {
	case 0:
		return pick(src, fakerLastNames) + " - " + pick(src, fakerLastNames)
	case 1:
		return pick(src, fakerLastNames) + ", " + pick(src, fakerLastNames) + " and " + pick(src, fakerLastNames)
	default:
		return pick(src, fakerLastNames) + " " + pick(src, fakerCompanySuffixes)
	}
}

// fakerDate returns an instant in [minDate, maxDate] when both bounds parse
// and are ordered, otherwise an instant within the recency window before now.
func (e *Engine) fakerDate(opts *schema.FieldOptions, now time.Time) string {
	if minStr, maxStr, ok := opts.DateBounds(); ok {
		minT, errMin := schema.ParseTime(minStr)
		maxT, errMax := schema.ParseTime(maxStr)
		if errMin == nil && errMax == nil && !minT.After(maxT) {
			return formatTime(between(e.src, minT, maxT))
		}
	}
	return formatTime(between(e.src, now.Add(-e.recent), now))
}

// between picks a millisecond-resolution instant in [from, to] inclusive.
// Bounds are rounded inward to whole milliseconds so the formatted result
// stays inside the range. When no whole millisecond lies in the range, from
// is returned unrounded.
func between(src Source, from, to time.Time) time.Time {
	fromMs := ceilMillis(from)
	toMs := to.UnixMilli()
	if toMs < fromMs {
		return from
	}
	return time.UnixMilli(fromMs + src.Int64N(toMs-fromMs+1))
}

// ceilMillis rounds t up to the next whole millisecond.
func ceilMillis(t time.Time) int64 {
	ms := t.UnixMilli()
	if time.UnixMilli(ms).Before(t) {
		ms++
	}
	return ms
}

// formatTime uses millisecond precision unless t carries a finer fraction.
func formatTime(t time.Time) string {
	if t.Nanosecond()%int(time.Millisecond) != 0 {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return t.UTC().Format(schema.ISOTimeLayout)
}

// fakerUUID generates a version 4 UUID from src.
func fakerUUID(src Source) string {
	id, err := uuid.NewRandomFromReader(src)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// fakerAmount returns a value in [minVal, maxVal] rounded to two decimals.
// Inverted bounds yield minVal.
func fakerAmount(src Source, minVal, maxVal float64) float64 {
	if math.IsNaN(minVal) || math.IsNaN(maxVal) || minVal >= maxVal {
		return minVal
	}
	v := minVal + src.Float64()*(maxVal-minVal)
	v = math.Round(v*100) / 100
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

func fakerAvatar(src Source) string {
	return fakerAvatarBaseURL + strconv.Itoa(src.IntN(99_999_999)+1)
}

// fakerSentence returns a capitalised lorem sentence ending in a period.
func fakerSentence(src Source) string {
	n := fakerSentenceMinWords + src.IntN(fakerSentenceMaxWords-fakerSentenceMinWords+1)
	words := make([]string, n)
	for i := range words {
		words[i] = pick(src, fakerLoremWords)
	}
	words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	return strings.Join(words, " ") + "."
}

// replaceDigits substitutes each '#' in format with a random digit.
func replaceDigits(src Source, format string) string {
	var sb strings.Builder
	sb.Grow(len(format))
	for i := 0; i < len(format); i++ {
		if format[i] == '#' {
			sb.WriteByte(byte('0' + src.IntN(10)))
			continue
		}
		sb.WriteByte(format[i])
	}
	return sb.String()
}
