package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"GameHub/utils"
)

func TestCheckEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "user@example.com", false},
		{"empty", "", true},
		{"missing domain", "user@", true},
		{"missing at", "user.example.com", true},
		{"whitespace", "user @example.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.CheckEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "testpass123", false},
		{"too short", "abc1", true},
		{"no digit", "onlyletters", true},
		{"no letter", "123456789", true},
		{"exactly eight with both", "abcdefg1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.CheckPassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckUsername(t *testing.T) {
	assert.NoError(t, utils.CheckUsername("bob"))
	assert.Error(t, utils.CheckUsername("ab"))
	assert.Error(t, utils.CheckUsername(strings.Repeat("a", 21)))
	// Length is counted in runes, not bytes.
	assert.NoError(t, utils.CheckUsername("Владислава"))
	assert.NoError(t, utils.CheckUsername(strings.Repeat("ю", 20)))
	assert.Error(t, utils.CheckUsername(strings.Repeat("ю", 21)))
	assert.Error(t, utils.CheckUsername("юю"))
}

func TestCheckDescription(t *testing.T) {
	assert.NoError(t, utils.CheckDescription(strings.Repeat("a", 150)))
	assert.Error(t, utils.CheckDescription(strings.Repeat("a", 151)))
	// Length is counted in runes, not bytes.
	assert.NoError(t, utils.CheckDescription(strings.Repeat("ю", 150)))
}

func TestCheckTicketMessage(t *testing.T) {
	assert.Error(t, utils.CheckTicketMessage("123456789"))
	assert.NoError(t, utils.CheckTicketMessage("1234567890"))
	// Surrounding whitespace does not count toward the minimum.
	assert.Error(t, utils.CheckTicketMessage("   12345678   "))
}
