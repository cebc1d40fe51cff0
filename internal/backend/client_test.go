// internal/backend/client_test.go
package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewClientWithBaseURL(server.URL, 5*time.Second, logger)
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"cart":{"items":[]}}`))
	})

	_, _, err := client.FetchCart(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClient_OmitsAuthHeaderForGuest(t *testing.T) {
	var gotAuth string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	_, err := client.ListProducts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_HTTPErrorBecomesAPIError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":{"message":"Not enough stock"}}`))
	})

	err := client.AddCartItem(context.Background(), "tok", "p1", 99)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "Not enough stock", apiErr.Message)
}

func TestClient_SuccessFalseBecomesAPIError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Cart not found"}`))
	})

	err := client.ClearCart(context.Background(), "tok")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Cart not found", apiErr.Message)
}

func TestClient_TransportFailureBecomesNetworkError(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	client := NewClientWithBaseURL("http://127.0.0.1:1", 500*time.Millisecond, logger)

	_, _, err := client.FetchCart(context.Background(), "tok")
	require.Error(t, err)

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestClient_CreateOrder(t *testing.T) {
	var gotBody CreateOrderRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"success":true,"order":{"id":"ord-1","total":20,"status":"pending"}}`))
	})

	order, err := client.CreateOrder(context.Background(), "tok", CreateOrderRequest{
		Items:         []OrderItemRef{{ProductID: "p1", Quantity: 2}},
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	assert.Equal(t, "ord-1", order.ID)
	assert.Equal(t, "p1", gotBody.Items[0].ProductID)
}

func TestClient_CreateOrder_MissingOrderInResponse(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})

	_, err := client.CreateOrder(context.Background(), "tok", CreateOrderRequest{})
	require.Error(t, err)

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestClient_CreatePaymentIntent(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payments/create-intent", r.URL.Path)
		w.Write([]byte(`{"success":true,"payment":{"id":"pay-1","orderId":"ord-1","status":"pending"},"upi":{"reference":"REF-1"}}`))
	})

	intent, err := client.CreatePaymentIntent(context.Background(), "tok", "ord-1", "upi-qr")
	require.NoError(t, err)

	assert.Equal(t, "pay-1", intent.Payment.ID)
	require.NotNil(t, intent.UPI)
	assert.Equal(t, "REF-1", intent.UPI.Reference)
}

func TestClient_FetchCart_MalformedListNotOK(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"cart":{"items":[{"quantity":2}]}}`))
	})

	_, ok, err := client.FetchCart(context.Background(), "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}
