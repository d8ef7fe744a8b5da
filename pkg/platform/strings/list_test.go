package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "single element",
			input:    "foo",
			expected: []string{"foo"},
		},
		{
			name:     "trims whitespace",
			input:    "  foo  , bar ,  baz",
			expected: []string{"foo", "bar", "baz"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    "foo,bar,foo,baz,bar",
			expected: []string{"foo", "bar", "baz"},
		},
		{
			name:     "drops empty elements",
			input:    "foo,, ,bar,",
			expected: []string{"foo", "bar"},
		},
		{
			name:     "preserves case",
			input:    "Foo,foo,FOO",
			expected: []string{"Foo", "foo", "FOO"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitList(tt.input))
		})
	}
}

func TestSplitHosts(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "lowercases and dedupes",
			input:    "Broker-1:9092,broker-1:9092,BROKER-1:9092",
			expected: []string{"broker-1:9092"},
		},
		{
			name:     "trims, lowercases, and keeps distinct hosts",
			input:    "  Broker-1:9092 , broker-2:9092",
			expected: []string{"broker-1:9092", "broker-2:9092"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitHosts(tt.input))
		})
	}
}
