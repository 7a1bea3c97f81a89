package cookie

import (
	"net/http"
	"time"
)

// Handler Interface included for testability
type Handler interface {
	Name() string
	Read(r *http.Request) (correlationID string, found bool)
	Write(w http.ResponseWriter, correlationID string, maxAge time.Duration)
	Clear(w http.ResponseWriter)
}
