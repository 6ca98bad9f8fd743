package fiber

type ErrorResponse struct {
	Error   string `json:"error" example:"unknown_kind"`
	Message string `json:"message,omitempty" example:"unknown session kind"`
}
