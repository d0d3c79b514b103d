package chartdata

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
)

type errorProcessor interface {
	Decode(r *resty.Response) error
}

// ResponseError is a non-200 answer of the chart server.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("chart server responded %d: %s", e.StatusCode, e.Message)
}

// ErrorProcessor maps status codes to messages. The server's own
// {"error": ...} body wins over the mapping.
type ErrorProcessor struct {
	errors map[string]string
}

func NewErrorProcessor(errors map[string]string) *ErrorProcessor {
	return &ErrorProcessor{errors: errors}
}

func (p *ErrorProcessor) Decode(r *resty.Response) error {
	e := &ResponseError{StatusCode: r.StatusCode(), Message: r.Status()}
	if msg, ok := p.errors[strconv.Itoa(r.StatusCode())]; ok {
		e.Message = msg
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(r.Body(), &body); err == nil && body.Error != "" {
		e.Message = body.Error
	}
	return e
}
