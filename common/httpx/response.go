package httpx

import (
	"strings"
)

// Response contains the response to a server
type Response struct {
	StatusCode    int
	Headers       map[string][]string
	Data          []byte
	ContentLength int
}

// GetHeader value
func (r *Response) GetHeader(name string) string {
	v, ok := r.Headers[name]
	if ok {
		return strings.Join(v, " ")
	}

	return ""
}

// Text returns the body decoded to UTF-8
func (r *Response) Text() string {
	return DecodeBody(r.Data, r.GetHeader("Content-Type"))
}
