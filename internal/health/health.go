// Package health serves the hosting platform's liveness probe. It is
// independent of the bot's task graph: the probe only proves the process
// is up.
package health

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// NewServer builds the liveness server for the given port.
func NewServer(port string) *http.Server {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
