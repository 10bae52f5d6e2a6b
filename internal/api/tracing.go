package api

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (s *Server) withTracing(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		route := routeLabel(c)
		ctx, span := s.tracer.Start(req.Context(), req.Method+" "+route, trace.WithSpanKind(trace.SpanKindServer))
		span.SetAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.route", route),
			attribute.String("http.target", req.URL.Path),
		)
		defer span.End()

		c.SetRequest(req.WithContext(ctx))
		err := next(c)
		if err != nil {
			span.RecordError(err)
		}
		return err
	}
}
