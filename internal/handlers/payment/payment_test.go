package payment

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v83"

	"selta_back_end/internal/config"
)

func testConfig() config.Config {
	return config.Config{FrontendURL: "http://localhost:3000"}
}

type fakeGateway struct {
	createParams *stripe.PaymentIntentParams
	createResp   *stripe.PaymentIntent
	createErr    error
	retrieveResp *stripe.PaymentIntent
	retrieveErr  error
}

func (f *fakeGateway) CreateIntent(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	f.createParams = params
	return f.createResp, f.createErr
}

func (f *fakeGateway) RetrieveIntent(id string) (*stripe.PaymentIntent, error) {
	return f.retrieveResp, f.retrieveErr
}

func performJSON(handler gin.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	return performJSONAs(handler, 7, body)
}

func performJSONAs(handler gin.HandlerFunc, userID uint, body interface{}) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	b, _ := json.Marshal(body)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(b))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", userID)

	handler(c)
	return w
}

func TestCreatePaymentIntentMissingFields(t *testing.T) {
	gw := &fakeGateway{}

	w := performJSON(CreatePaymentIntent(gw), map[string]interface{}{
		"amount": 10.0,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required payment information")
	assert.Nil(t, gw.createParams)
}

func TestCreatePaymentIntentParams(t *testing.T) {
	gw := &fakeGateway{
		createResp: &stripe.PaymentIntent{ID: "pi_123", ClientSecret: "cs_test"},
	}

	w := performJSON(CreatePaymentIntent(gw), map[string]interface{}{
		"amount":   20.00,
		"currency": "EUR",
		"cartItems": []map[string]interface{}{
			{"id": 1, "name": "Shea butter", "quantity": 2, "price": 10.0},
		},
		"shippingAddress": map[string]interface{}{
			"first_name": "Jane",
			"last_name":  "Doe",
			"address":    "1 Main St",
			"country":    "Kenya",
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gw.createParams)
	assert.Equal(t, int64(2000), *gw.createParams.Amount)
	assert.Equal(t, "eur", *gw.createParams.Currency)
	assert.Equal(t, "7", gw.createParams.Metadata["userId"])
	assert.Equal(t, "1", gw.createParams.Metadata["itemCount"])
	assert.Contains(t, gw.createParams.Metadata["cartItems"], "Shea butter")
	assert.Contains(t, gw.createParams.Metadata["shippingAddress"], "Jane Doe")

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cs_test", resp["clientSecret"])
	assert.Equal(t, "pi_123", resp["paymentIntentId"])
}

func TestCreatePaymentIntentGatewayFailure(t *testing.T) {
	gw := &fakeGateway{createErr: errors.New("stripe unavailable")}

	w := performJSON(CreatePaymentIntent(gw), map[string]interface{}{
		"amount": 5.0,
		"cartItems": []map[string]interface{}{
			{"id": 1, "name": "Soap", "quantity": 1, "price": 5.0},
		},
		"shippingAddress": map[string]interface{}{
			"first_name": "A", "last_name": "B", "address": "x", "country": "BE",
		},
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestConfirmPaymentNotSucceeded(t *testing.T) {
	gw := &fakeGateway{
		retrieveResp: &stripe.PaymentIntent{
			ID:     "pi_123",
			Status: stripe.PaymentIntentStatusRequiresPaymentMethod,
		},
	}

	w := performJSON(ConfirmPayment(nil, gw, nil, testConfig()), map[string]interface{}{
		"paymentIntentId": "pi_123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Payment not completed")
}

func TestConfirmPaymentGatewayFailure(t *testing.T) {
	gw := &fakeGateway{retrieveErr: errors.New("stripe unavailable")}

	w := performJSON(ConfirmPayment(nil, gw, nil, testConfig()), map[string]interface{}{
		"paymentIntentId": "pi_123",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestConfirmPaymentMissingID(t *testing.T) {
	gw := &fakeGateway{}

	w := performJSON(ConfirmPayment(nil, gw, nil, testConfig()), map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Payment intent ID is required")
}
