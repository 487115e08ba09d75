package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("u@u.com"))
	assert.True(t, IsValidEmail("contact@dentsmile.ro"))

	assert.False(t, IsValidEmail("bad"))
	assert.False(t, IsValidEmail("no@dot"))
	assert.False(t, IsValidEmail("spa ce@mail.com"))
	assert.False(t, IsValidEmail("@mail.com"))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("0733333333"))
	assert.True(t, IsValidPhone("+40733333333"))
	assert.True(t, IsValidPhone("+40 733 333 333"))
	assert.True(t, IsValidPhone("0721 234 567"))

	assert.False(t, IsValidPhone("123"))
	assert.False(t, IsValidPhone("073333333"))    // nine total, one short
	assert.False(t, IsValidPhone("07333333333"))  // one long
	assert.False(t, IsValidPhone("+41733333333")) // wrong country
	assert.False(t, IsValidPhone("0733-333-333")) // only spaces are stripped
}

func TestFirstMissing(t *testing.T) {
	fields := []string{"name", "city", "email"}

	_, ok := FirstMissing(fields, map[string]string{"name": "A", "city": "B", "email": "C"})
	assert.True(t, ok)

	field, ok := FirstMissing(fields, map[string]string{"name": "A", "city": "   ", "email": "C"})
	assert.False(t, ok)
	assert.Equal(t, "city", field)

	field, ok = FirstMissing(fields, map[string]string{})
	assert.False(t, ok)
	assert.Equal(t, "name", field)
}

func TestValidateStruct(t *testing.T) {
	type payload struct {
		Status string `validate:"required"`
	}

	assert.Nil(t, Validate(payload{Status: "pending"}))

	errs := Validate(payload{})
	assert.Equal(t, "required", errs["Status"])
}
