package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"id": "abc"})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something broke")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something broke", resp.Error)
}

func TestValidationError(t *testing.T) {
	type req struct {
		Email        string `validate:"required,email"`
		BillingCycle string `validate:"required,oneof=monthly yearly"`
		PaymentDay   int    `validate:"min=1,max=31"`
	}

	err := validator.New().Struct(req{Email: "not-an-email", BillingCycle: "weekly", PaymentDay: 40})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Email must be a valid email")
	assert.Contains(t, resp.Error, "field BillingCycle must be one of: monthly yearly")
	assert.Contains(t, resp.Error, "field PaymentDay must be at most 31")
}
