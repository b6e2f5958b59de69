// Package tracer is a small tracing abstraction so services can emit spans
// without importing OpenTelemetry directly.
//
// Implementations:
//   - NoopTracer: tests and tools that do not export traces
//   - OTelTracer: OpenTelemetry adapter for the server
package tracer

import (
	"context"
	"time"
)

// Span is an active trace span. End must be called exactly once.
type Span interface {
	// End completes the span. A non-nil err marks it as failed.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
//
//	ctx, span := t.Start(ctx, tracer.SpanEvaluate, tracer.String(tracer.AttrLawID, lawID))
//	defer span.End(err)
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration records value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanEvaluate    = "eligibility.evaluate"
	SpanEvaluateAll = "eligibility.evaluate_all"
	SpanUpload      = "documents.upload"
)

// Attribute keys.
const (
	AttrLawID       = "law.id"
	AttrPersonID    = "person.id"
	AttrState       = "evaluation.state"
	AttrResultCount = "evaluation.results"
	AttrFailures    = "evaluation.failures"
	AttrBlockedBy   = "evaluation.blocked_by"
	AttrRuleCount   = "selection.rules"
	AttrDocType     = "document.type"
	AttrDocSize     = "document.size_bytes"
)

// Event names.
const (
	EventBlocked = "evaluation.blocked"
)
