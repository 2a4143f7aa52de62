package chain

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Mask replaces secret answers wherever they are shown to people.
const Mask = "********"

// AnswerSet maps derived keys to answers in question order. Setting an
// existing key replaces its value but keeps its position.
type AnswerSet struct {
	values *orderedmap.OrderedMap[string, string]
	secret map[string]bool
}

// NewAnswerSet returns an empty set.
func NewAnswerSet() *AnswerSet {
	return &AnswerSet{
		values: orderedmap.New[string, string](),
		secret: map[string]bool{},
	}
}

// Set stores value under key. secret marks password answers so Format masks
// them. It reports whether an earlier answer was overwritten.
func (a *AnswerSet) Set(key, value string, secret bool) bool {
	_, replaced := a.values.Set(key, value)
	if secret {
		a.secret[key] = true
	} else {
		delete(a.secret, key)
	}
	return replaced
}

func (a *AnswerSet) Get(key string) (string, bool) {
	return a.values.Get(key)
}

func (a *AnswerSet) Len() int {
	return a.values.Len()
}

// Keys returns the keys in order.
func (a *AnswerSet) Keys() []string {
	keys := make([]string, 0, a.values.Len())
	for p := a.values.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Secret reports whether the answer under key came from a password prompt.
func (a *AnswerSet) Secret(key string) bool {
	return a.secret[key]
}

// Format renders "key: value" lines joined by newlines, with secret answers
// masked.
func (a *AnswerSet) Format() string {
	lines := make([]string, 0, a.values.Len())
	for p := a.values.Oldest(); p != nil; p = p.Next() {
		value := p.Value
		if a.secret[p.Key] {
			value = Mask
		}
		lines = append(lines, p.Key+": "+value)
	}
	return strings.Join(lines, "\n")
}

// MarshalJSON encodes the real answers as an object in question order.
func (a *AnswerSet) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return a.values.MarshalJSON()
}
