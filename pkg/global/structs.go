package global

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIResponse is the envelope the gateway emits on every route. It is the
// same shape the upstream backend uses, so browser code sees one contract.
type APIResponse struct {
	Success  bool              `json:"success"`
	Data     interface{}       `json:"data,omitempty"`
	Message  string            `json:"message,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

func SuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

func ErrorResponse(message string, errors []ValidationError) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

// RedirectResponse is an error response that also tells the caller where to
// navigate, e.g. back to /login after a session teardown.
func RedirectResponse(message, redirect string) APIResponse {
	return APIResponse{
		Success:  false,
		Message:  message,
		Redirect: redirect,
	}
}
