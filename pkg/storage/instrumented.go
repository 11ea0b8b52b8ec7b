package storage

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dd0wney/hydronet/pkg/network"
)

const tracerName = "github.com/dd0wney/hydronet/pkg/storage"

// OperationRecorder receives one observation per store call
type OperationRecorder interface {
	RecordStorageOperation(operation, status string, duration time.Duration)
}

// InstrumentedStore records metrics and a span for every call on the wrapped store
type InstrumentedStore struct {
	next     Store
	recorder OperationRecorder
	tracer   trace.Tracer
}

// Instrument wraps store. A nil recorder disables metrics but keeps spans.
func Instrument(store Store, recorder OperationRecorder) *InstrumentedStore {
	return &InstrumentedStore{
		next:     store,
		recorder: recorder,
		tracer:   otel.Tracer(tracerName),
	}
}

// Unwrap returns the underlying store
func (s *InstrumentedStore) Unwrap() Store {
	return s.next
}

func (s *InstrumentedStore) observe(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "storage."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)

	return ctx, func(err error) {
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if s.recorder != nil {
			s.recorder.RecordStorageOperation(op, status, time.Since(start))
		}
	}
}

func (s *InstrumentedStore) ListElements(ctx context.Context) ([]*network.Element, error) {
	ctx, done := s.observe(ctx, "list_elements")
	elements, err := s.next.ListElements(ctx)
	done(err)
	return elements, err
}

func (s *InstrumentedStore) CreateElement(ctx context.Context, e *network.Element) (*network.Element, error) {
	var attrs []attribute.KeyValue
	if e != nil {
		attrs = append(attrs, attribute.String("element.type", string(e.Type)))
	}
	ctx, done := s.observe(ctx, "create_element", attrs...)
	created, err := s.next.CreateElement(ctx, e)
	done(err)
	return created, err
}

func (s *InstrumentedStore) DeleteElement(ctx context.Context, id int64) error {
	ctx, done := s.observe(ctx, "delete_element", attribute.String("element.id", strconv.FormatInt(id, 10)))
	err := s.next.DeleteElement(ctx, id)
	done(err)
	return err
}

func (s *InstrumentedStore) ListNodes(ctx context.Context) ([]*network.SystemNode, error) {
	ctx, done := s.observe(ctx, "list_nodes")
	nodes, err := s.next.ListNodes(ctx)
	done(err)
	return nodes, err
}

func (s *InstrumentedStore) CreateNode(ctx context.Context, n *network.SystemNode) (*network.SystemNode, error) {
	ctx, done := s.observe(ctx, "create_node")
	created, err := s.next.CreateNode(ctx, n)
	done(err)
	return created, err
}

func (s *InstrumentedStore) ListDams(ctx context.Context) ([]*network.Dam, error) {
	ctx, done := s.observe(ctx, "list_dams")
	dams, err := s.next.ListDams(ctx)
	done(err)
	return dams, err
}

func (s *InstrumentedStore) CreateDam(ctx context.Context, d *network.Dam) (*network.Dam, error) {
	ctx, done := s.observe(ctx, "create_dam")
	created, err := s.next.CreateDam(ctx, d)
	done(err)
	return created, err
}

func (s *InstrumentedStore) Ping(ctx context.Context) error {
	ctx, done := s.observe(ctx, "ping")
	err := s.next.Ping(ctx)
	done(err)
	return err
}

func (s *InstrumentedStore) Close() error {
	return s.next.Close()
}
