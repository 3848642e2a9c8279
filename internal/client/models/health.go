package models

// HealthStatus is the payload of GET /health. Fields the service adds later
// are ignored.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
	Version string `json:"version,omitempty"`
}

// OK reports whether the service declared itself healthy.
func (h HealthStatus) OK() bool {
	return h.Status == "ok"
}

// ErrorResponse is the body the service sends with 4xx/5xx statuses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
