package handling_test

import (
	"errors"
	"fmt"
	"freshcatch_server/handling"
	"freshcatch_server/lib"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
)

func TestHandleError_StatusMapping(t *testing.T) {
	t.Parallel()
	logger := gecho.NewDefaultLogger()

	cases := []struct {
		err    error
		status int
	}{
		{lib.ErrNotFound, http.StatusNotFound},
		{lib.ErrConflict, http.StatusConflict},
		{lib.ErrRestricted, http.StatusConflict},
		{lib.ErrAccessDenied, http.StatusForbidden},
		{lib.ErrInvalidCredentials, http.StatusUnauthorized},
		{lib.ErrInvalidToken, http.StatusUnauthorized},
		{lib.ErrExpiredToken, http.StatusUnauthorized},
		{lib.ErrEmptyCart, http.StatusBadRequest},
		{lib.ErrProductUnavailable, http.StatusConflict},
		{lib.ErrInsufficientStock, http.StatusConflict},
		{lib.ErrInvalidTransition, http.StatusConflict},
		{errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		handling.HandleError(tc.err, "test", logger, w)
		assert.Equal(t, tc.status, w.Code, "error %v", tc.err)
	}
}

// Wrapped sentinels must still map, the switch matches with errors.Is
func TestHandleError_WrappedSentinel(t *testing.T) {
	t.Parallel()
	logger := gecho.NewDefaultLogger()

	w := httptest.NewRecorder()
	handling.HandleError(fmt.Errorf("loading order: %w", lib.ErrNotFound), "test", logger, w)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
