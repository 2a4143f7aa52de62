// Package keyderive turns question wording into a short answer key, so a
// chain of answers can be returned as a readable map.
package keyderive

import (
	"regexp"
	"strconv"
	"strings"
)

const word = `([\p{L}\p{N}_]+)`

// patterns are tried in order; the first capture of the first match is the
// key.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`what is (?:your|the) ` + word),
	regexp.MustCompile(`enter (?:your|the) ` + word),
	regexp.MustCompile(`(?:choose|select) (?:your|a) ` + word),
	regexp.MustCompile(`provide (?:your|the) ` + word),
	regexp.MustCompile(word + `[:?]`),
}

var words = regexp.MustCompile(`[\p{L}\p{N}_]+`)

var stopWords = map[string]bool{
	"what":   true,
	"enter":  true,
	"your":   true,
	"the":    true,
	"please": true,
	"choose": true,
	"select": true,
}

// Derive returns the key for the question at index (0-based). Keys are not
// unique; callers resolve collisions.
func Derive(text string, index int) string {
	lower := strings.ToLower(text)

	for _, re := range patterns {
		if m := re.FindStringSubmatch(lower); m != nil {
			return m[1]
		}
	}

	for _, w := range words.FindAllString(lower, -1) {
		if len([]rune(w)) > 3 && !stopWords[w] {
			return w
		}
	}

	return "answer" + strconv.Itoa(index+1)
}
