package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Mary-Jane"))
	assert.True(t, ValidName("O'Brien"))
	assert.False(t, ValidName(""))
	assert.False(t, ValidName("Mary Jane"))
	assert.False(t, ValidName("bob_smith"))
}

func TestValidUsername(t *testing.T) {
	assert.True(t, ValidUsername("lift_er-99"))
	assert.False(t, ValidUsername(""))
	assert.False(t, ValidUsername("o'neil"))
	assert.False(t, ValidUsername("two words"))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("example@domain.com"))
	assert.False(t, ValidEmail("example.com"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("a b@c.com"))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("secret"))
	assert.False(t, ValidPassword("short"))
}

func TestValidTitle(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"5x5", true},
		{"Full Body Day", true},
		{"", false},
		{"   ", false},
		{"Legs!", false},
		{strings.Repeat("a", 70), true},
		{strings.Repeat("a", 71), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidTitle(tt.title), "title %q", tt.title)
	}
}

func TestValidContentInput(t *testing.T) {
	assert.True(t, ValidContentInput("3 sets of 5"))
	assert.False(t, ValidContentInput(""))
	assert.False(t, ValidContentInput(" \n\t"))
	assert.True(t, ValidContentInput(strings.Repeat("x", 1000)))
	assert.False(t, ValidContentInput(strings.Repeat("x", 1001)))
}

func TestValidTagList(t *testing.T) {
	assert.True(t, ValidTagList("strength barbell"))
	assert.True(t, ValidTagList("  legs\tcore  "))
	assert.False(t, ValidTagList(""))
	assert.False(t, ValidTagList("ab"))
	assert.False(t, ValidTagList("strength bar-bell"))
}

func TestValidDigit(t *testing.T) {
	assert.True(t, ValidDigit("0"))
	assert.True(t, ValidDigit("120"))
	assert.False(t, ValidDigit(""))
	assert.False(t, ValidDigit("-10"))
	assert.False(t, ValidDigit("1.5"))
}
