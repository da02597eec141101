// Package sse writes Server-Sent Event streams for live content updates.
//
// Clients subscribe once and receive the full current snapshot on connect,
// then a fresh snapshot after every change. Snapshots are conflated upstream,
// so a slow client only ever sees the latest state.
package sse

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// heartbeatInterval keeps intermediaries from timing out idle streams.
const heartbeatInterval = 25 * time.Second

// Stream serves an SSE response. It immediately sends initial, then one event
// per value received on updates, until the client disconnects or updates is
// closed.
func Stream[T any](w http.ResponseWriter, r *http.Request, initial T, updates <-chan T, logger *zap.Logger) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if !writeEvent(w, initial, logger) {
		return
	}
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			// Comment line, ignored by EventSource clients.
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case v, ok := <-updates:
			if !ok {
				return
			}
			if !writeEvent(w, v, logger) {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent[T any](w http.ResponseWriter, v T, logger *zap.Logger) bool {
	payload, err := json.Marshal(v)
	if err != nil {
		if logger != nil {
			logger.Error("failed to marshal sse event", zap.Error(err))
		}
		return false
	}
	if _, err := w.Write([]byte("data: ")); err != nil {
		return false
	}
	if _, err := w.Write(payload); err != nil {
		return false
	}
	_, err = w.Write([]byte("\n\n"))
	return err == nil
}
