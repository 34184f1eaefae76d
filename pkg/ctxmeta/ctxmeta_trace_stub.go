//go:build !otel || gopls

package ctxmeta

import "context"

// Build without the `otel` tag: trace/span stubs.
func TraceIDFromContext(context.Context) (string, bool) { return "", false }
func SpanIDFromContext(context.Context) (string, bool)  { return "", false }
