package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleConversionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"stats":       s.pool.Stats(),
		"queue_depth": s.pool.QueueDepth(),
		"sessions":    s.pool.Sessions(),
	})
}
