package problem

import (
	"encoding/json"
	"net/http"
)

// ContentType is the media type of every problem response.
const ContentType = "application/problem+json"

// Problem is an RFC7807 Problem Details document with optional extensions.
type Problem struct {
	Code          *string         `json:"code,omitempty"`
	Detail        *string         `json:"detail,omitempty"`
	Instance      *string         `json:"instance,omitempty"`
	InvalidParams *[]InvalidParam `json:"invalidParams,omitempty"`
	Status        int             `json:"status"`
	Title         string          `json:"title"`
	TraceID       *string         `json:"traceId,omitempty"`
	Type          *string         `json:"type,omitempty"`

	// Extensions holds additional non-standard fields.
	Extensions map[string]any `json:"-"`
}

type InvalidParam struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type Option func(*Problem)

// New builds a 500 problem unless the options say otherwise. The title
// follows the final status when no option sets it.
func New(opts ...Option) *Problem {
	p := &Problem{
		Status: http.StatusInternalServerError,
		Detail: strPtr("unhandled error"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.Type == nil {
		p.Type = strPtr("about:blank")
	}
	if p.Title == "" {
		if t := http.StatusText(p.Status); t != "" {
			p.Title = t
		} else {
			p.Title = "Unknown Error"
		}
	}
	return p
}

func Write(w http.ResponseWriter, p *Problem) {
	if p == nil {
		p = Internal("server error")
	}
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func WithStatus(status int) Option {
	return func(p *Problem) { p.Status = status }
}

func WithTitle(title string) Option {
	return func(p *Problem) { p.Title = title }
}

func WithDetail(detail string) Option {
	return func(p *Problem) { p.Detail = strPtr(detail) }
}

func WithType(typ string) Option {
	return func(p *Problem) { p.Type = strPtr(typ) }
}

func WithCode(code string) Option {
	return func(p *Problem) { p.Code = strPtr(code) }
}

func WithInstance(instance string) Option {
	return func(p *Problem) { p.Instance = strPtr(instance) }
}

func WithTraceID(traceID string) Option {
	return func(p *Problem) {
		if traceID != "" {
			p.TraceID = strPtr(traceID)
		}
	}
}

func WithInvalidParam(name, reason string) Option {
	return func(p *Problem) {
		var s []InvalidParam
		if p.InvalidParams != nil {
			s = *p.InvalidParams
		}
		s = append(s, InvalidParam{Name: name, Reason: reason})
		p.InvalidParams = &s
	}
}

func WithExtension(key string, value any) Option {
	return func(p *Problem) {
		if p.Extensions == nil {
			p.Extensions = map[string]any{}
		}
		p.Extensions[key] = value
	}
}

func withStatus(status int, detail string, opts []Option) *Problem {
	base := []Option{
		WithStatus(status),
		WithDetail(detail),
	}
	return New(append(base, opts...)...)
}

func BadRequest(detail string, opts ...Option) *Problem {
	return withStatus(http.StatusBadRequest, detail, opts)
}

func NotFound(detail string, opts ...Option) *Problem {
	return withStatus(http.StatusNotFound, detail, opts)
}

func MethodNotAllowed(detail string, opts ...Option) *Problem {
	return withStatus(http.StatusMethodNotAllowed, detail, opts)
}

func Conflict(detail string, opts ...Option) *Problem {
	return withStatus(http.StatusConflict, detail, opts)
}

func Unprocessable(detail string, opts ...Option) *Problem {
	return withStatus(http.StatusUnprocessableEntity, detail, opts)
}

func TooManyRequests(detail string, opts ...Option) *Problem {
	return withStatus(http.StatusTooManyRequests, detail, opts)
}

func Internal(detail string, opts ...Option) *Problem {
	return withStatus(http.StatusInternalServerError, detail, opts)
}

func ServiceUnavailable(detail string, opts ...Option) *Problem {
	return withStatus(http.StatusServiceUnavailable, detail, opts)
}

func strPtr(s string) *string { return &s }

// MarshalJSON merges Extensions into the base Problem object.
// Standard members win over extensions with the same key.
func (p Problem) MarshalJSON() ([]byte, error) {
	// alias drops the method set so json.Marshal does not recurse
	type alias Problem
	base, err := json.Marshal(alias(p))
	if err != nil {
		return nil, err
	}
	if len(p.Extensions) == 0 {
		return base, nil
	}
	var m map[string]any
	if err := json.Unmarshal(base, &m); err != nil {
		return nil, err
	}
	for k, v := range p.Extensions {
		if _, exists := m[k]; !exists {
			m[k] = v
		}
	}
	return json.Marshal(m)
}
