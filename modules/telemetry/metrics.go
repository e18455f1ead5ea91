// Copyright 2025 Nhat-Nguyen Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "profile-service/http"

// HTTPMetrics holds the instruments recorded per served request.
type HTTPMetrics struct {
	requests     metric.Int64Counter
	inFlight     metric.Int64UpDownCounter
	duration     metric.Float64Histogram
	responseSize metric.Int64Histogram
	limited      metric.Int64Counter
}

// NewHTTPMetrics builds the instruments on mp, or on the global provider
// when mp is nil.
func NewHTTPMetrics(mp metric.MeterProvider) (*HTTPMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)

	var (
		m   HTTPMetrics
		err error
	)
	if m.requests, err = meter.Int64Counter(
		"http_server_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}
	if m.inFlight, err = meter.Int64UpDownCounter(
		"http_server_active_requests",
		metric.WithDescription("Requests currently being served"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}
	if m.duration, err = meter.Float64Histogram(
		"http_server_duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}
	if m.responseSize, err = meter.Int64Histogram(
		"http_server_response_size",
		metric.WithDescription("HTTP response size in bytes"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}
	if m.limited, err = meter.Int64Counter(
		"http_server_rate_limited_total",
		metric.WithDescription("Requests rejected by the rate limiter"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}
	return &m, nil
}

// Tracer returns the tracer used for server spans.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Started marks a request as in flight. Call Finished when it completes.
func (m *HTTPMetrics) Started(ctx context.Context, method string) {
	m.inFlight.Add(ctx, 1, metric.WithAttributes(attribute.String("http_method", method)))
}

// Finished records a completed request.
func (m *HTTPMetrics) Finished(ctx context.Context, method, route, statusCode string, durationMs float64, responseSize int64) {
	m.inFlight.Add(ctx, -1, metric.WithAttributes(attribute.String("http_method", method)))

	attrs := metric.WithAttributes(
		attribute.String("http_method", method),
		attribute.String("http_route", route),
		attribute.String("http_status_code", statusCode),
	)
	m.requests.Add(ctx, 1, attrs)
	m.duration.Record(ctx, durationMs, attrs)
	if responseSize > 0 {
		m.responseSize.Record(ctx, responseSize, attrs)
	}
}

// RateLimited counts a request rejected with 429.
func (m *HTTPMetrics) RateLimited(ctx context.Context, route string) {
	m.limited.Add(ctx, 1, metric.WithAttributes(attribute.String("http_route", route)))
}
