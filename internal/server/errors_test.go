package server

import (
	"errors"
	"net/http"
	"testing"

	orderdomain "github.com/smallbiznis/tenderbase/internal/order/domain"
	productdomain "github.com/smallbiznis/tenderbase/internal/product/domain"
	tenderdomain "github.com/smallbiznis/tenderbase/internal/tender/domain"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"product not found", productdomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"tender not found", tenderdomain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"order tender missing", orderdomain.ErrTenderNotFound, http.StatusNotFound, "not_found"},
		{"sku conflict", productdomain.ErrSKUExists, http.StatusConflict, "conflict"},
		{"invalid client", tenderdomain.ErrInvalidClient, http.StatusBadRequest, "validation_error"},
		{"invalid quantity", orderdomain.ErrInvalidQuantity, http.StatusBadRequest, "validation_error"},
		{"invalid id", productdomain.ErrInvalidID, http.StatusBadRequest, "validation_error"},
		{"tender without orders", tenderdomain.ErrNoOrders, http.StatusUnprocessableEntity, "tender_without_orders"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			require.Equal(t, tc.wantStatus, status)
			require.Equal(t, tc.wantType, payload.Type)
		})
	}
}

func TestMapValidationErrorCarriesField(t *testing.T) {
	status, payload := mapError(productdomain.ErrInvalidSKU)
	require.Equal(t, http.StatusBadRequest, status)
	require.Len(t, payload.Errors, 1)
	require.Equal(t, "sku", payload.Errors[0].Field)
	require.Equal(t, "invalid_sku", payload.Errors[0].Code)
}

func TestClassifyErrorForLog(t *testing.T) {
	errType, code := classifyErrorForLog(productdomain.ErrInvalidName)
	require.Equal(t, "validation_error", errType)
	require.Equal(t, "invalid_name", code)

	errType, _ = classifyErrorForLog(tenderdomain.ErrNotFound)
	require.Equal(t, "not_found", errType)

	errType, _ = classifyErrorForLog(productdomain.ErrSKUExists)
	require.Equal(t, "conflict", errType)
}
