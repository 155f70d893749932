package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stockdash/internal/dto"
	"stockdash/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("product: %w", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("bad quantity: %w", service.ErrInvalidArgument), http.StatusBadRequest},
		{fmt.Errorf("5 units left: %w", service.ErrInsufficientStock), http.StatusConflict},
		{service.ErrUnauthorized, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		respondError(c, tc.err)
		assert.Equal(t, tc.want, w.Code, "error %v", tc.err)
		assert.Contains(t, w.Body.String(), `"detail"`)
	}
}

func TestRespondErrorDefersUnknownErrors(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, fmt.Errorf("connection reset"))
	// Unknown errors are pushed onto the context for the error handler
	// middleware, not written directly.
	require.Len(t, c.Errors, 1)
}

func TestBindAndValidateRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{"productId":`},
		{"missing required fields", `{}`},
		{"zero quantity", `{"productId":"6f1d4f8e-54f9-4e2c-9c19-2ad4c5a80d1c","quantity":0,"unitCost":"4.00"}`},
		{"bad uuid", `{"productId":"nope","quantity":1,"unitCost":"4.00"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/purchases", strings.NewReader(tc.body))
			c.Request.Header.Set("Content-Type", "application/json")

			req := dto.CreatePurchaseRequest{}
			ok := bindAndValidate(c, &req)
			assert.False(t, ok)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestBindAndValidateAcceptsValidPurchase(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"productId":"6f1d4f8e-54f9-4e2c-9c19-2ad4c5a80d1c","quantity":5,"unitCost":4.5,"totalCost":999}`
	c.Request = httptest.NewRequest(http.MethodPost, "/purchases", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	req := dto.CreatePurchaseRequest{}
	require.True(t, bindAndValidate(c, &req))
	assert.Equal(t, 5, req.Quantity)
	assert.True(t, req.UnitCost.Equal(decimal.RequireFromString("4.5")))
}
