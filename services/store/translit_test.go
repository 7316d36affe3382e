package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransliterate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"latin to cyrillic", "djn", "вот"},
		{"cyrillic to latin", "вот", "djn"},
		{"mixed passthrough", "cat 123!", "сфе 123!"},
		{"unmapped characters unchanged", "123 !?", "123 !?"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transliterate(tt.in))
		})
	}
}

func TestMatchesLayoutAware(t *testing.T) {
	tests := []struct {
		name  string
		field string
		query string
		want  bool
	}{
		{"plain substring", "Nebula Drift", "drift", true},
		{"latin query against cyrillic field", "Вектор", "dtrnjh", true},
		{"cyrillic query against latin field", "Nebula Drift", "туигдф", true},
		{"case-insensitive", "Harvest Loop", "HARVEST", true},
		{"no match", "Nebula Drift", "chess", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesLayoutAware(tt.field, tt.query))
		})
	}
}
