package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/httpd"
	"github.com/xy-planning-network/httpd/http/middleware"
)

func TestReportPanic(t *testing.T) {
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	for _, tc := range []struct {
		name    string
		env     httpd.Environment
		visible bool
	}{
		{"Development", httpd.Development, false},
		{"Testing", httpd.Testing, true},
		{"Production", httpd.Production, false},
		{"Production-Verbose", httpd.Production, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			// Act
			require.NotPanics(t, func() {
				middleware.ReportPanic(tc.env, tc.visible, newLogger(b))(panicky).ServeHTTP(w, r)
			})

			// Assert
			require.Equal(t, http.StatusInternalServerError, w.Code)
			require.Contains(t, b.String(), "boom")
			if tc.visible {
				require.Contains(t, w.Body.String(), "boom")
			}
		})
	}
}
