package api

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// StatsResponse reports service counters.
type StatsResponse struct {
	UptimeSeconds int64  `json:"uptime_seconds"`
	Requests      uint64 `json:"requests"`
	Remeshed      uint64 `json:"remeshed"`
}

// HealthResponse is the health probe body.
type HealthResponse struct {
	Status string `json:"status"`
}
