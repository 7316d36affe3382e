package store

import (
	"strings"
)

/**
 * Keyboard-layout transliteration for the game search. Users frequently type
 * a query while the wrong layout is active, so "djn" should find a game
 * titled "вот" and vice versa. The two runs below map positionally: the
 * character a key produces under QWERTY maps to the character the same key
 * produces under ЙЦУКЕН.
 */

const (
	latinRun    = `qwertyuiop[]asdfghjkl;'zxcvbnm,.`
	cyrillicRun = `йцукенгшщзхъфывапролджэячсмитьбю`
)

var (
	latinToCyrillic = buildRuneMap(latinRun, cyrillicRun)
	cyrillicToLatin = buildRuneMap(cyrillicRun, latinRun)
)

func buildRuneMap(from, to string) map[rune]rune {
	fromRunes := []rune(from)
	toRunes := []rune(to)
	m := make(map[rune]rune, len(fromRunes))
	for i, r := range fromRunes {
		m[r] = toRunes[i]
	}
	return m
}

// Transliterate remaps every mapped character to the opposite keyboard
// layout; characters outside both runs pass through unchanged.
func Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if mapped, ok := latinToCyrillic[r]; ok {
			b.WriteRune(mapped)
		} else if mapped, ok := cyrillicToLatin[r]; ok {
			b.WriteRune(mapped)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// matchesLayoutAware reports whether field contains query as a
// case-insensitive substring under any combination of layouts: both as
// typed, query remapped, field remapped, or both remapped.
func matchesLayoutAware(field, query string) bool {
	field = strings.ToLower(field)
	query = strings.ToLower(query)
	tField := Transliterate(field)
	tQuery := Transliterate(query)
	return strings.Contains(field, query) ||
		strings.Contains(tField, query) ||
		strings.Contains(field, tQuery) ||
		strings.Contains(tField, tQuery)
}
