package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDepthCounter_Delta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want int
	}{
		{"open", "public void f() {", 1},
		{"close", "}", -1},
		{"balanced", "public int getX() { return x; }", 0},
		{"nested opens", "if (a) { if (b) {", 2},
		{"string literal", `return "}";`, 0},
		{"escaped quote in string", `log("a\"}");`, 0},
		{"char literal", `if (c == '{') {`, 1},
		{"escaped char literal", `char q = '\''; }`, -1},
		{"line comment", "} // closes {", -1},
		{"inline block comment", "/* { */ {", 1},
		{"unterminated string", `String s = "{`, 0},
		{"no braces", "return x;", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewDepthCounter(Options{}).Delta(tt.line))
		})
	}
}

// Test: raw mode counts every brace character
func TestDepthCounter_CountLiterals(t *testing.T) {
	t.Parallel()

	c := NewDepthCounter(Options{CountLiterals: true})
	assert.Equal(t, -1, c.Delta(`return "}";`))
	assert.Equal(t, 0, c.Delta("} // closes {"))
	assert.Equal(t, 2, c.Delta("/* { */ {"))
}

// Test: block comments and text blocks carry state across lines
func TestDepthCounter_MultiLineState(t *testing.T) {
	t.Parallel()

	c := NewDepthCounter(Options{})
	assert.Equal(t, 1, c.Delta("public void f() { /* start"))
	assert.Equal(t, 0, c.Delta("   } still a comment {"))
	assert.Equal(t, -1, c.Delta("   end */ }"))

	tb := NewDepthCounter(Options{})
	assert.Equal(t, 1, tb.Delta(`public String json() { return """`))
	assert.Equal(t, 0, tb.Delta(`    { "a": 1 }`))
	assert.Equal(t, 0, tb.Delta(`    """;`))
	assert.Equal(t, -1, tb.Delta("}"))
}
