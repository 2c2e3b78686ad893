package handlers

import (
	"net/http"

	"github.com/parley-im/parley/internal/httpserver/deps"
	"github.com/parley-im/parley/internal/logger"
)

// Refresh re-issues the bulk fetch, discarding the local store first.
func Refresh(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Logger.Info("manual bookmark refresh triggered via endpoint",
			logger.String("remote_ip", r.RemoteAddr))

		if err := d.Bookmarks.RequestFetch(); err != nil {
			d.Logger.Error("bookmark refresh failed", logger.Error(err))
			w.WriteHeader(http.StatusBadGateway)
			if _, err := w.Write([]byte("refresh failed\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
			return
		}

		w.WriteHeader(http.StatusAccepted)
		if _, err := w.Write([]byte("refresh triggered\n")); err != nil {
			d.Logger.Debug("failed to write response", logger.Error(err))
		}
	}
}
