package response

// Body is the error envelope used by middleware, where the fres helpers are
// not a fit.
type Body struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Error(code, message string, data interface{}) Body {
	return Body{
		Code:    code,
		Message: message,
		Data:    data,
	}
}
