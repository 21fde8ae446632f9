package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"http://localhost:35443", "http://localhost:35443"},
		{int64(20), "20"},
		{300, "300"},
		{true, "true"},
		{1.5, "1.5"},
		{10 * time.Second, "10s"},
		{[]int{1}, ""},
		{nil, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, String(tt.in), "%#v", tt.in)
	}
}

func TestInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{20, 20},
		{int64(7), 7},
		{float64(9), 9},
		{" 300 ", 300},
		{"abc", 0},
		{true, 0},
		{nil, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Int(tt.in), "%#v", tt.in)
	}
}

func TestBool(t *testing.T) {
	assert.True(t, Bool(true))
	assert.True(t, Bool("true"))
	assert.True(t, Bool(" 1"))
	assert.False(t, Bool("nope"))
	assert.False(t, Bool(1))
	assert.False(t, Bool(nil))
}
