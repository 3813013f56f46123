package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailValidator(t *testing.T) {
	assert.NoError(t, EmailValidator("user@example.com"))
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not an email"), ErrEmailInvalid)
}

func TestPasswordValidator(t *testing.T) {
	assert.NoError(t, PasswordValidator("longenough"))
	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, PasswordValidator(strings.Repeat("a", 256)), ErrPasswordTooLong)
}

func TestKindValidator(t *testing.T) {
	for _, k := range []string{"png", "vector", "image"} {
		assert.NoError(t, KindValidator(k))
	}

	assert.ErrorIs(t, KindValidator("gif"), ErrCategoryKindInvalid)
	assert.ErrorIs(t, KindValidator(""), ErrCategoryKindInvalid)
	assert.ErrorIs(t, KindValidator("PNG"), ErrCategoryKindInvalid)
}

func TestCategoryValidator(t *testing.T) {
	assert.NoError(t, CategoryValidator("Nature", "png"))
	assert.ErrorIs(t, CategoryValidator("  ", "png"), ErrCategoryNameEmpty)
	assert.ErrorIs(t, CategoryValidator(strings.Repeat("x", 101), "png"), ErrCategoryNameTooLong)
	assert.ErrorIs(t, CategoryValidator("Nature", "gif"), ErrCategoryKindInvalid)
}
