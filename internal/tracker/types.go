package tracker

// Myself is the response from GET /v2/myself.
type Myself struct {
	UID     int64  `json:"uid"`
	Login   string `json:"login"`
	Display string `json:"display"`
	Email   string `json:"email"`
}

// errorResponse is the standard Tracker error body.
type errorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
	StatusCode    int               `json:"statusCode"`
}
