package mapfeed

import (
	"log/slog"
	"net/http"

	"netivim/internal/lib/sl"
	"netivim/internal/ws"
)

func Serve(log *slog.Logger, hub *ws.Hub) http.HandlerFunc {
	logger := log.With(sl.Module("http.handlers.mapfeed"))
	return func(w http.ResponseWriter, r *http.Request) {
		if hub == nil {
			http.Error(w, "map feed not available", http.StatusServiceUnavailable)
			return
		}
		ws.ServeWs(hub, logger, w, r)
	}
}
