package httpapi

import (
	"net/http"

	"github.com/huangsam/workbench/core"
)

// NewDefectsHandler routes GET /data to the per-company aggregation.
func NewDefectsHandler(svc *core.DefectService) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /data", func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Aggregate(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, result)
	})
	return mux
}
