package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yusufkecer/ecommerce-password-reset/internal/domain"
)

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(&domain.ForgotPasswordRequest{Email: "alice@example.com"}))

	err := Struct(&domain.ForgotPasswordRequest{})
	assert.EqualError(t, err, "field 'Email' failed 'required'")
}
