package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse indicates the model returned no usable candidates.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// PermanentError indicates an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err carries a PermanentError anywhere in its chain.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}

// Request is one generation call. System carries the phase contract
// (output schema, rules); User carries the caller's content.
type Request struct {
	System      string
	User        string
	MaxTokens   int32
	Temperature float32
}

// Usage is the token accounting reported by the provider for one call.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Total returns input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }

// Add accumulates another usage record into u.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// Response is the raw model output plus its usage.
type Response struct {
	Text  string
	Usage Usage
}

// Client is the generator transport used identically by every pipeline
// phase. Implementations only perform the API call itself; cross-cutting
// concerns (rate limiting, retries, logging, hooks) are applied via
// Middleware.
type Client interface {
	Name() string
	Generate(ctx context.Context, req Request) (*Response, error)
	Close() error
}
