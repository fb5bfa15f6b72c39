package sanitizer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reApartment = regexp.MustCompile(`[^0-9A-Za-z\- ]+`)
	reUsername  = regexp.MustCompile(`[^a-z0-9._\-]+`)

	supportedRegions = []string{
		"BR",
		"US",
	}
)

func trim(s string) string {
	return strings.TrimSpace(s)
}

func lower(s string) string {
	return strings.ToLower(s)
}

// CollapseWhitespace trims the string and folds any run of whitespace
// into a single space.
func CollapseWhitespace(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func SanitizeName(input string) string {
	return CollapseWhitespace(input)
}

func SanitizeApartment(input string) string {
	p := Pipeline{
		CollapseWhitespace,
		func(s string) string { return reApartment.ReplaceAllString(s, "") },
		strings.ToUpper,
	}
	return p.Apply(input)
}

func SanitizeUsername(input string) string {
	p := Pipeline{
		trim,
		lower,
		func(s string) string { return reUsername.ReplaceAllString(s, "") },
	}
	return p.Apply(input)
}

func SanitizeEmail(input string) string {
	p := Pipeline{trim, lower}
	return p.Apply(input)
}

// SanitizeMessageText keeps chat and announcement text readable without
// letting embedded newlines or tabs through to clients.
func SanitizeMessageText(input string) string {
	return CollapseWhitespace(input)
}

func SanitizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsedNumber, err := phonenumbers.Parse(phone, region)
		if err == nil && phonenumbers.IsValidNumber(parsedNumber) {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return ""
}
