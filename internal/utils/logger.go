package utils

import (
	"log"
	"strings"
	"time"
)

// LogEvent prints standardized log line with module/action/request_id.
// Avoid logging response payloads; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}

// LogRequest prints one line per finished API call, mirroring the
// server-side access log format so both ends grep the same way.
func LogRequest(requestID, method, path string, status int, latency time.Duration) {
	log.Printf("[API] request_id=%s method=%s path=%s status=%d latency_ms=%.3f",
		strings.TrimSpace(requestID),
		method,
		path,
		status,
		float64(latency.Microseconds())/1000.0,
	)
}
