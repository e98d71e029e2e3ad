package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// distPattern discounts a string portion that tends to vary between
// otherwise-identical metadata entries. When removing the matched portion
// shrinks the basic edit distance, only weight times the improvement is
// charged instead of the full difference.
type distPattern struct {
	re     *regexp.Regexp
	weight float64
}

var distPatterns = []distPattern{
	{regexp.MustCompile(`^the `), 0.1},
	{regexp.MustCompile(`[\[(]?(ep|single)[\])]?`), 0.0},
	{regexp.MustCompile(`[\[(]?(featuring|feat|ft)[. :].+`), 0.1},
	{regexp.MustCompile(`\(.*?\)`), 0.3},
	{regexp.MustCompile(`\[.*?\]`), 0.3},
	{regexp.MustCompile(`\{.*?\}`), 0.3},
	{regexp.MustCompile(`-? *cd\s*\d+`), 0.3},
}

// endWords are articles that may be rotated to the end of a title
// ("Beatles, The") without meaning a different string.
var endWords = []string{"the", "a", "an"}

var levenshtein = metrics.NewLevenshtein()

// foldTransform decomposes characters and strips combining marks so that
// accented and plain spellings compare equal.
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StringDistance returns a dissimilarity in [0, 1] between two metadata
// strings. Zero means the strings are equivalent after normalization; one
// means no overlap at all. Two empty strings are equivalent, while an empty
// string compared against a non-empty one scores the full penalty.
func StringDistance(str1, str2 string) float64 {
	str1 = strings.ToLower(str1)
	str2 = strings.ToLower(str2)

	for _, word := range endWords {
		str1 = rotateEndWord(str1, word)
		str2 = rotateEndWord(str2, word)
	}
	str1 = strings.ReplaceAll(str1, "&", "and")
	str2 = strings.ReplaceAll(str2, "&", "and")

	dist := basicDistance(str1, str2)

	// Re-measure with each noise pattern removed. Improvements are charged
	// at the pattern's weight rather than counting as full distance.
	penalty := 0.0
	for _, pat := range distPatterns {
		caseStr1 := pat.re.ReplaceAllString(str1, "")
		caseStr2 := pat.re.ReplaceAllString(str2, "")
		if caseStr1 == str1 && caseStr2 == str2 {
			continue
		}
		caseDist := basicDistance(caseStr1, caseStr2)
		delta := dist - caseDist
		if delta <= 0 {
			continue
		}
		str1, str2 = caseStr1, caseStr2
		dist = caseDist
		penalty += pat.weight * delta
	}
	return dist + penalty
}

// basicDistance is a normalized Levenshtein distance over folded,
// alphanumeric-only forms of the inputs.
func basicDistance(str1, str2 string) float64 {
	str1 = foldAlnum(str1)
	str2 = foldAlnum(str2)
	if str1 == "" && str2 == "" {
		return 0
	}
	if str1 == "" || str2 == "" {
		return 1
	}
	return 1 - strutil.Similarity(str1, str2, levenshtein)
}

// foldAlnum lowercases, strips diacritics, and drops everything outside
// [a-z0-9].
func foldAlnum(value string) string {
	folded, _, err := transform.String(foldTransform, strings.ToLower(value))
	if err != nil {
		folded = strings.ToLower(value)
	}
	var b strings.Builder
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// rotateEndWord undoes a ", word" suffix rotation: "beatles, the" becomes
// "the beatles".
func rotateEndWord(value, word string) string {
	suffix := ", " + word
	if !strings.HasSuffix(value, suffix) {
		return value
	}
	return word + " " + strings.TrimSuffix(value, suffix)
}
