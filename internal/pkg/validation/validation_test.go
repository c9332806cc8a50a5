package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("contact@axisogreen.in"))
	assert.False(t, IsValidEmail("contact@axisogreen"))
	assert.False(t, IsValidEmail("a b@c.in"))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("9876543210"))
	assert.True(t, IsValidPhone("+91 98765-43210"))
	assert.True(t, IsValidPhone("09876543210"))
	assert.False(t, IsValidPhone("12345"))
	assert.False(t, IsValidPhone("98765432ab"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("solar2024"))
	assert.False(t, IsValidPassword("short1"))
	assert.False(t, IsValidPassword("allletters"))
}

func TestBlank(t *testing.T) {
	assert.True(t, Blank("   "))
	assert.False(t, Blank(" x "))
}
