package diag

import (
	"encoding/json"
	"net/http"
	"sync"
)

var httpOnce sync.Once

const (
	PathHealthz = "/debug/hexprobe/healthz"
	PathStatus  = "/debug/hexprobe/status"
	PathText    = "/debug/hexprobe/text"
)

// RegisterHTTP installs the status handlers on mux (http.DefaultServeMux when nil).
func RegisterHTTP(mux *http.ServeMux) {
	if !Enabled() {
		return
	}
	if mux == nil {
		mux = http.DefaultServeMux
	}
	httpOnce.Do(func() {
		mux.HandleFunc(PathHealthz, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok\n"))
		})

		mux.HandleFunc(PathStatus, func(w http.ResponseWriter, r *http.Request) {
			st := Snapshot()
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			_ = enc.Encode(st)
		})

		mux.HandleFunc(PathText, func(w http.ResponseWriter, r *http.Request) {
			st := Snapshot()
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(FormatText(st)))
		})
	})
}
