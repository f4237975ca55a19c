package admin_test

import (
	"freshcatch_server/api/admin"
	"freshcatch_server/api/middleware"
	"freshcatch_server/config"
	"net/http"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Registering the admin routes only builds the route table; no service is
// invoked, so nil services are fine here.
func TestAdminRoutesRegistered(t *testing.T) {
	logger := gecho.NewDefaultLogger()
	cfg := config.GetConfig()
	mw := middleware.NewMiddleware(cfg, logger, nil)

	arm := admin.NewAdminRoutesManager(logger, nil, nil, nil, mw)

	r := chi.NewRouter()
	arm.RegisterRoutes(r)

	registered := map[string]bool{}
	err := chi.Walk(r, func(method, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	for _, want := range []string{
		"GET /admin/products",
		"POST /admin/products",
		"PUT /admin/products",
		"DELETE /admin/products/{id}",
		"GET /admin/orders",
		"GET /admin/orders/{id}",
		"PUT /admin/orders/{id}/status",
		"GET /admin/stats/revenue",
		"GET /admin/stats/orders",
		"GET /admin/stats/daily",
	} {
		assert.True(t, registered[want], "route %s should be registered", want)
	}
}
