package openapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/vitam-chat/api/openapi"
	"github.com/donaldgifford/vitam-chat/internal/api/handlers"
)

func newServer() *echo.Echo {
	e := echo.New()
	api := humaecho.New(e, huma.DefaultConfig("vitam-chat", "test"))
	openapi.RegisterRoutes(e, api)
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(nil))
	return e
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantType     string
		wantBody     string
		wantLocation string
	}{
		{
			name:       "json document lists late-registered routes",
			path:       "/swagger/swagger.json",
			wantStatus: http.StatusOK,
			wantType:   "application/json",
			wantBody:   `"/api/v1/upstream/quota"`,
		},
		{
			name:       "yaml document",
			path:       "/swagger/swagger.yaml",
			wantStatus: http.StatusOK,
			wantType:   "text/yaml",
			wantBody:   "openapi: 3.1",
		},
		{
			name:       "swagger ui",
			path:       "/swagger/index.html",
			wantStatus: http.StatusOK,
			wantType:   echo.MIMETextHTMLCharsetUTF8,
			wantBody:   "SwaggerUIBundle",
		},
		{
			name:         "bare path redirects",
			path:         "/swagger",
			wantStatus:   http.StatusMovedPermanently,
			wantLocation: "/swagger/index.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			newServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, rec.Header().Get(echo.HeaderContentType))
			}
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get(echo.HeaderLocation))
			}
		})
	}
}
