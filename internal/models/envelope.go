package models

// CodeOK is the only envelope code that means success. The HTTP status of
// the response carrying the envelope plays no part in that decision.
const CodeOK = 200

// Envelope is the uniform response body of every backend endpoint.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// OK reports whether the envelope signals success.
func (e *Envelope[T]) OK() bool { return e != nil && e.Code == CodeOK }

// IDRequest is the body of the delete call.
type IDRequest struct {
	ID int64 `json:"id"`
}
