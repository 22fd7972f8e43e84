package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"IsNotShipped", []string{"Is", "Not", "Shipped"}},
		{"notFound", []string{"not", "Found"}},
		{"HTTPServer", []string{"HTTP", "Server"}},
		{"_no_access", []string{"no", "access"}},
		{"Order2Invoice", []string{"Order", "2", "Invoice"}},
		{"X", []string{"X"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, words(tt.in))
		})
	}
}

func TestContainsWord(t *testing.T) {
	w, ok := containsWord("IsNotShipped", []string{"No", "Not"}, true)
	assert.True(t, ok)
	assert.Equal(t, "Not", w)

	_, ok = containsWord("Nothing", []string{"No", "Not"}, true)
	assert.False(t, ok, "Nothing is one word")

	_, ok = containsWord("notReady", []string{"Not"}, false)
	assert.False(t, ok)

	_, ok = containsWord("notReady", []string{"Not"}, true)
	assert.True(t, ok)
}
