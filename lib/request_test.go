package lib_test

import (
	"freshcatch_server/lib"
	"freshcatch_server/structs"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAndValidateBody(t *testing.T) {
	t.Parallel()
	body := `{
		"delivery_address": "Havenstraat 12, 1011 AB Amsterdam",
		"phone": "+31612345678",
		"payment_method": "cash_on_delivery"
	}`
	r := httptest.NewRequest("POST", "/orders/checkout", strings.NewReader(body))

	req, err := lib.ExtractAndValidateBody[structs.CheckoutRequest](r)
	require.NoError(t, err)
	assert.Equal(t, "Havenstraat 12, 1011 AB Amsterdam", req.DeliveryAddress)
	assert.Equal(t, "cash_on_delivery", req.PaymentMethod)
}

func TestExtractAndValidateBody_ValidationErrors(t *testing.T) {
	t.Parallel()
	// Address too short, phone missing, unknown payment method
	body := `{
		"delivery_address": "x",
		"payment_method": "crypto"
	}`
	r := httptest.NewRequest("POST", "/orders/checkout", strings.NewReader(body))

	_, err := lib.ExtractAndValidateBody[structs.CheckoutRequest](r)
	require.Error(t, err)

	var ve *lib.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
}

func TestExtractAndValidateBody_RejectsUnknownFields(t *testing.T) {
	t.Parallel()
	body := `{
		"delivery_address": "Havenstraat 12, 1011 AB Amsterdam",
		"phone": "+31612345678",
		"payment_method": "cash_on_delivery",
		"is_admin": true
	}`
	r := httptest.NewRequest("POST", "/orders/checkout", strings.NewReader(body))

	_, err := lib.ExtractAndValidateBody[structs.CheckoutRequest](r)
	assert.Error(t, err)
}

func TestExtractAndValidateBody_MalformedJSON(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest("POST", "/orders/checkout", strings.NewReader("{not json"))

	_, err := lib.ExtractAndValidateBody[structs.CheckoutRequest](r)
	assert.Error(t, err)
}
