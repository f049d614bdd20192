package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/pagevisits/core/logger"
	"github.com/dmitrymomot/pagevisits/core/response"
	"github.com/dmitrymomot/pagevisits/core/router"
)

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		accept      string
		contentType string
	}{
		{"browser gets plain text", "text/html,*/*;q=0.8", "text/plain; charset=utf-8"},
		{"json client gets json", "application/json", "application/json; charset=utf-8"},
		{"json refused gets plain text", "application/json;q=0, text/html", "text/plain; charset=utf-8"},
		{"no accept header gets plain text", "", "text/plain; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.accept != "" {
				r.Header.Set("Accept", tt.accept)
			}
			w := httptest.NewRecorder()

			errorHandler(logger.Discard())(router.NewContext(w, r, nil), response.ErrNotFound)

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
		})
	}
}
