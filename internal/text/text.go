// Package text provides the grammar helpers used when rendering rooms,
// entities, and inventories: pluralization, small-number words, indefinite
// articles, and natural list joining.
package text

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Capitalize uppercases the first rune of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return titleCaser.String(string(r)) + s[size:]
}

var irregularPlurals = map[string]string{
	"loaf":   "loaves",
	"leaf":   "leaves",
	"knife":  "knives",
	"wife":   "wives",
	"life":   "lives",
	"half":   "halves",
	"wolf":   "wolves",
	"thief":  "thieves",
	"shelf":  "shelves",
	"elf":    "elves",
	"calf":   "calves",
	"self":   "selves",
	"child":  "children",
	"person": "people",
	"man":    "men",
	"woman":  "women",
	"mouse":  "mice",
	"goose":  "geese",
	"tooth":  "teeth",
	"foot":   "feet",
	"ox":     "oxen",
	"fish":   "fish",
	"deer":   "deer",
	"sheep":  "sheep",
}

// PluralizeWord pluralizes a single English noun, preserving leading
// capitalization.
func PluralizeWord(word string) string {
	if word == "" {
		return word
	}

	lower := strings.ToLower(word)

	if plural, ok := irregularPlurals[lower]; ok {
		if word[0] >= 'A' && word[0] <= 'Z' {
			return Capitalize(plural)
		}
		return plural
	}

	// Words ending in a consonant + 'y' take 'ies'.
	if strings.HasSuffix(lower, "y") && len(lower) > 1 {
		if !strings.ContainsRune("aeiou", rune(lower[len(lower)-2])) {
			return word[:len(word)-1] + "ies"
		}
	}

	// Sibilant endings take 'es'.
	for _, suffix := range []string{"s", "sh", "ch", "x", "z"} {
		if strings.HasSuffix(lower, suffix) {
			if strings.HasSuffix(lower, "es") {
				return word
			}
			return word + "es"
		}
	}

	if strings.HasSuffix(lower, "fe") {
		return word[:len(word)-2] + "ves"
	}

	return word + "s"
}

// PluralizeName pluralizes an item name. Compound names of the form
// "<noun> of <thing>" pluralize the head noun only, so "lump of ore"
// becomes "lumps of ore". A leading article is stripped first.
func PluralizeName(name string) string {
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "a ") {
		name = name[2:]
	} else if strings.HasPrefix(lower, "an ") {
		name = name[3:]
	}

	if head, rest, ok := strings.Cut(name, " of "); ok {
		return PluralizeWord(strings.TrimSpace(head)) + " of " + strings.TrimSpace(rest)
	}

	return PluralizeWord(name)
}

var numberWords = []string{
	"zero", "one", "two", "three", "four", "five", "six",
	"seven", "eight", "nine", "ten", "eleven", "twelve",
}

// NumberWord spells out small counts; larger values fall back to digits.
func NumberWord(n int) string {
	if n >= 0 && n < len(numberWords) {
		return numberWords[n]
	}
	return strconv.Itoa(n)
}

// Article returns the indefinite article for name.
func Article(name string) string {
	if name == "" {
		return "a"
	}
	switch []rune(strings.ToLower(name))[0] {
	case 'a', 'e', 'i', 'o', 'u':
		return "an"
	}
	return "a"
}

// WithArticle prefixes name with its indefinite article.
func WithArticle(name string) string {
	return Article(name) + " " + name
}

// CountedName renders a quantity of an item in prose: "a lump of ore" for
// one, "two lumps of ore" beyond that.
func CountedName(name string, count int) string {
	if count <= 1 {
		return WithArticle(name)
	}
	return NumberWord(count) + " " + PluralizeName(name)
}

// JoinAnd joins parts into a natural language list: "a, b and c".
func JoinAnd(parts []string) string {
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}
