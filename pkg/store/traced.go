package store

import (
	"context"

	"hotelledger/pkg/model"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "hotelledger/pkg/store"

var (
	AttrBackend      = attribute.Key("ledger.store.backend")
	AttrHotels       = attribute.Key("ledger.hotels")
	AttrCustomers    = attribute.Key("ledger.customers")
	AttrReservations = attribute.Key("ledger.reservations")
)

var _ Store = (*TracedStore)(nil)

// TracedStore wraps a Store with one client span per Load and Save.
type TracedStore struct {
	next    Store
	backend string
	tracer  trace.Tracer
}

func NewTracedStore(next Store, backend string) *TracedStore {
	return &TracedStore{
		next:    next,
		backend: backend,
		tracer:  otel.Tracer(instrumentationName),
	}
}

func (t *TracedStore) Load(ctx context.Context) (*model.Snapshot, error) {
	ctx, span := t.tracer.Start(ctx, "Store.Load",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(AttrBackend.String(t.backend)),
	)
	defer span.End()

	snapshot, err := t.next.Load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return nil, err
	}

	span.SetAttributes(sizeAttributes(snapshot)...)
	span.SetStatus(codes.Ok, "")
	return snapshot, nil
}

func (t *TracedStore) Save(ctx context.Context, snapshot *model.Snapshot) error {
	ctx, span := t.tracer.Start(ctx, "Store.Save",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(AttrBackend.String(t.backend)),
		trace.WithAttributes(sizeAttributes(snapshot)...),
	)
	defer span.End()

	if err := t.next.Save(ctx, snapshot); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

func sizeAttributes(s *model.Snapshot) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrHotels.Int(len(s.Hotels)),
		AttrCustomers.Int(len(s.Customers)),
		AttrReservations.Int(len(s.Reservations)),
	}
}
