package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/haneul-ai/haneul/pkg/api"
)

// handleQuery streams the composer pipeline as server-sent-event-style
// records: "data: <json>\n\n" per event, flushed immediately, connection
// closed after the terminal event.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req api.QueryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	requestID := uuid.NewString()
	log := s.log.With(zap.String("request_id", requestID))
	log.Info("query received", zap.Int("query_len", len(req.Query)))

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	emit := func(event api.StreamEvent) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			log.Debug("client disconnected", zap.Error(err))
			return err
		}
		flusher.Flush()
		return nil
	}

	s.composer.Run(r.Context(), req.Query, emit)
	log.Info("query stream closed")
}
