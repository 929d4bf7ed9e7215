// Package locale formats dates, timestamps and counts for the user's locale.
package locale

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Default is used when neither config nor environment name a usable locale.
var Default = language.AmericanEnglish

type layouts struct {
	date     string
	dateTime string
}

var (
	monthFirst = layouts{"1/2/2006", "1/2/2006, 3:04:05 PM"}
	dayFirst   = layouts{"02/01/2006", "02/01/2006, 15:04:05"}
	dotted     = layouts{"2.1.2006", "2.1.2006, 15:04:05"}
	yearFirst  = layouts{"2006/1/2", "2006/1/2 15:04:05"}
	iso        = layouts{"2006-01-02", "2006-01-02 15:04:05"}
)

var regionLayouts = map[string]layouts{
	"US": monthFirst, "PH": monthFirst,
	"GB": dayFirst, "IE": dayFirst, "AU": dayFirst, "NZ": dayFirst, "IN": dayFirst,
	"FR": dayFirst, "ES": dayFirst, "IT": dayFirst, "PT": dayFirst, "BR": dayFirst,
	"BE": dayFirst, "GR": dayFirst, "MX": dayFirst, "AR": dayFirst,
	"DE": dotted, "AT": dotted, "CH": dotted, "RU": dotted, "PL": dotted,
	"NO": dotted, "FI": dotted, "DK": dotted, "TR": dotted, "CZ": dotted, "UA": dotted,
	"JP": yearFirst, "CN": yearFirst, "TW": yearFirst, "HK": yearFirst, "KR": yearFirst,
}

// Formatter renders timestamps and numbers for one locale.
type Formatter struct {
	tag     language.Tag
	layouts layouts
	loc     *time.Location
	printer *message.Printer
}

// New returns a Formatter for tag that converts timestamps carrying a zone
// into loc. A nil loc means time.Local.
func New(tag language.Tag, loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	l := iso
	if region, conf := tag.Region(); conf != language.No {
		if rl, ok := regionLayouts[region.String()]; ok {
			l = rl
		}
	}
	return &Formatter{
		tag:     tag,
		layouts: l,
		loc:     loc,
		printer: message.NewPrinter(tag),
	}
}

// Resolve picks the locale: an explicit override wins, then the environment.
func Resolve(override string) (language.Tag, error) {
	if override != "" {
		tag, err := language.Parse(override)
		if err != nil {
			return Default, fmt.Errorf("invalid locale %q: %w", override, err)
		}
		return tag, nil
	}
	return FromEnv(os.Getenv), nil
}

// FromEnv reads LC_ALL, LC_TIME and LANG in that order. POSIX values such as
// "de_DE.UTF-8@euro" are accepted; "C" and "POSIX" mean no preference.
func FromEnv(getenv func(string) string) language.Tag {
	for _, key := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		v := getenv(key)
		if v == "" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "" || v == "C" || v == "POSIX" {
			return Default
		}
		tag, err := language.Parse(strings.ReplaceAll(v, "_", "-"))
		if err != nil {
			return Default
		}
		return tag
	}
	return Default
}

func (f *Formatter) Tag() language.Tag { return f.tag }

// Date formats raw as a date without time. Unparseable input is returned
// unchanged so nothing the backend sent is lost.
func (f *Formatter) Date(raw string) string {
	t, err := ParseTimestamp(raw, f.loc)
	if err != nil {
		return raw
	}
	return t.In(f.loc).Format(f.layouts.date)
}

// DateTime formats raw as date plus time.
func (f *Formatter) DateTime(raw string) string {
	t, err := ParseTimestamp(raw, f.loc)
	if err != nil {
		return raw
	}
	return t.In(f.loc).Format(f.layouts.dateTime)
}

// Sprintf formats with locale-aware number grouping.
func (f *Formatter) Sprintf(format string, args ...any) string {
	return f.printer.Sprintf(format, args...)
}

var zonedLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	time.RFC1123Z,
	time.RFC1123,
}

// Layouts without a zone are read in the caller's location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts the ISO-8601 variants the backend emits, with or
// without fractional seconds and zone.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
