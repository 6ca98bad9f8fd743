package fiber

import "session-analytics-service/internal/sessions/core/domain"

// CreateSessionResponse reports whether the record was new.
// @Description Session ingestion result
type CreateSessionResponse struct {
	Status string `json:"status" example:"created"`
	ID     string `json:"id" example:"5f0c3c1e-8d7a-4c0e-9d55-3a1f1f7f0a10"`
}

// BulkCreateSessionsRequest carries raw records of one kind.
type BulkCreateSessionsRequest struct {
	Sessions []map[string]any `json:"sessions"`
}

type BulkCreateSessionsResponse struct {
	Created    int      `json:"created"`
	Duplicates int      `json:"duplicates"`
	IDs        []string `json:"ids"`
}

// ListSessionsResponse is the stored collection keyed by record id, in
// insertion order.
type ListSessionsResponse = domain.Collection

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_session"`
	Message string `json:"message,omitempty" example:"invalid session: empty payload"`
}
