package screening

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	yearsOfExperience = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*(?:of)?\s*(?:experience|exp)`),
		regexp.MustCompile(`(?i)experience\s*[:\-]?\s*(\d+)\+?\s*years?`),
	}
	calendarYear = regexp.MustCompile(`20\d{2}|19\d{2}`)
)

// Normalize lowercases text and replaces every rune that is neither an ASCII
// word character nor whitespace with a space.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, lower)
}

// EstimateYearsExperience returns the largest explicit "N years of experience"
// figure in text. Without one it falls back to the spread between the earliest
// and latest calendar year mentioned, which needs at least two mentions.
func EstimateYearsExperience(text string) int {
	maxYears := 0
	for _, re := range yearsOfExperience {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			years, err := strconv.Atoi(m[1])
			if errors.Is(err, strconv.ErrRange) {
				years = math.MaxInt
			} else if err != nil {
				continue
			}
			if years > maxYears {
				maxYears = years
			}
		}
	}
	if maxYears > 0 {
		return maxYears
	}

	found := calendarYear.FindAllString(Normalize(text), -1)
	if len(found) < 2 {
		return 0
	}
	lo, hi := 0, 0
	for i, s := range found {
		y, _ := strconv.Atoi(s)
		if i == 0 || y < lo {
			lo = y
		}
		if i == 0 || y > hi {
			hi = y
		}
	}
	return hi - lo
}
