package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"profile-service/core/profile/domain"
	"profile-service/modules/middleware/problem"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
)

// problemFromDomainError maps a domain sentinel to its HTTP problem.
func problemFromDomainError(err error, opts ...problem.Option) *problem.Problem {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		return problem.NotFound(domain.ErrProfileNotFound.Error(), opts...)
	case errors.Is(err, domain.ErrDuplicateProfile):
		return problem.Conflict(domain.ErrDuplicateProfile.Error(), opts...)
	case errors.Is(err, domain.ErrInvalidData):
		return problem.Unprocessable(domain.ErrInvalidData.Error(), opts...)
	case errors.Is(err, domain.ErrUnavailable):
		return problem.ServiceUnavailable(domain.ErrUnavailable.Error(), opts...)
	default:
		return problem.Internal(domain.ErrUnhandled.Error(), opts...)
	}
}

// requestOptions stamps instance and trace id of the current request.
func requestOptions(c echo.Context) []problem.Option {
	r := c.Request()
	opts := []problem.Option{problem.WithInstance(r.URL.Path)}
	if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
		opts = append(opts, problem.WithTraceID(sc.TraceID().String()))
	}
	return opts
}

func writeProblem(c echo.Context, prob *problem.Problem) error {
	problem.Write(c.Response(), prob)
	return nil
}

func writeDomainError(c echo.Context, err error) error {
	slog.DebugContext(c.Request().Context(), "domain error", slog.Any("error", err))
	return writeProblem(c, problemFromDomainError(err, requestOptions(c)...))
}

func writeBadRequest(c echo.Context, detail string, opts ...problem.Option) error {
	return writeProblem(c, problem.BadRequest(detail, append(requestOptions(c), opts...)...))
}

func writeBadPathParam(c echo.Context, name string, err error) error {
	return writeBadRequest(c, "malformed path parameter", problem.WithInvalidParam(name, err.Error()))
}

// httpErrorHandler renders echo's own errors (unknown route, wrong method)
// and anything a handler returned as problem documents.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		detail := http.StatusText(he.Code)
		if msg, ok := he.Message.(string); ok && msg != "" {
			detail = msg
		} else if he.Message != nil {
			detail = fmt.Sprint(he.Message)
		}
		opts := append(requestOptions(c), problem.WithStatus(he.Code), problem.WithDetail(detail))
		problem.Write(c.Response(), problem.New(opts...))
		return
	}

	slog.ErrorContext(c.Request().Context(), "unhandled handler error", slog.Any("error", err))
	problem.Write(c.Response(), problem.Internal("unhandled error", requestOptions(c)...))
}
