package response

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/pagevisits/core/handler"
)

// Templ renders component as a 200 text/html response. The component gets
// the request context and is buffered, so a render failure produces no
// partial output.
func Templ(component templ.Component) handler.Response {
	if component == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		var buf bytes.Buffer
		if err := component.Render(r.Context(), &buf); err != nil {
			return fmt.Errorf("templ component render error: %w", err)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, err := w.Write(buf.Bytes())
		return err
	}
}
