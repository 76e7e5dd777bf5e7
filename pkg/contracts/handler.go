package contracts

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Handler mounts application routes onto a pattern-matching mux.
type Handler interface {
	RegisterRoutes(*http.ServeMux)
}

// ProbeHandler mounts liveness and readiness probes.
type ProbeHandler interface {
	RegisterRoutes(*httprouter.Router)
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Closer releases a resource during graceful shutdown.
type Closer interface {
	Close() error
}
