package observability

import (
	"context"
	"fmt"

	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Audit records a credential-state change. Events carry the trace/span ids
// when the caller runs inside a traced request so log lines can be joined to
// traces downstream.
func Audit(ctx context.Context, event string, attrs ...any) {
	msg := "audit"
	sc := trace.SpanContextFromContext(ctx)
	if sc.IsValid() {
		msg = fmt.Sprintf("audit trace_id=%s span_id=%s", sc.TraceID().String(), sc.SpanID().String())
	}
	base := []any{"event", event}
	base = append(base, attrs...)
	slog.InfoContext(ctx, msg, base...)
}
