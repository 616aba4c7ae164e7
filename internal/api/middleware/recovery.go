package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/shellgame-go/internal/api/apierr"
	httpmw "github.com/mcoot/shellgame-go/internal/middleware"
)

// Recovery turns a handler panic into a JSON internal error
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return httpmw.Recovery(logger, func(w http.ResponseWriter, _ *http.Request, _ any) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
