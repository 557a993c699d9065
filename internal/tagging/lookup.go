package tagging

import "context"

// CanGetByID is the lookup capability: it resolves an object by identifier
// without exposing how or where the object is stored.
//
// Implementations in this repository return an error wrapping
// domain.ErrNotFound when no object has the given id.
type CanGetByID[TID comparable, TObject any] interface {
	GetByID(ctx context.Context, id TID) (TObject, error)
}

// LookupFunc adapts an ordinary function to CanGetByID.
type LookupFunc[TID comparable, TObject any] func(ctx context.Context, id TID) (TObject, error)

// GetByID calls f(ctx, id).
func (f LookupFunc[TID, TObject]) GetByID(ctx context.Context, id TID) (TObject, error) {
	return f(ctx, id)
}

// Recorder wraps a lookup and remembers every object it resolved, so a caller
// that hands the Recorder to AddTags can persist the mutated object afterwards.
// A Recorder is meant for a single request and is not safe for concurrent use.
type Recorder[TID comparable, TObject any] struct {
	source   CanGetByID[TID, TObject]
	resolved map[TID]TObject
}

// Record returns a Recorder delegating to source.
func Record[TID comparable, TObject any](source CanGetByID[TID, TObject]) *Recorder[TID, TObject] {
	return &Recorder[TID, TObject]{source: source, resolved: make(map[TID]TObject)}
}

// GetByID resolves id through the wrapped lookup and records the result on success.
func (r *Recorder[TID, TObject]) GetByID(ctx context.Context, id TID) (TObject, error) {
	obj, err := r.source.GetByID(ctx, id)
	if err != nil {
		return obj, err
	}
	r.resolved[id] = obj
	return obj, nil
}

// Resolved returns the object last resolved for id.
func (r *Recorder[TID, TObject]) Resolved(id TID) (TObject, bool) {
	obj, ok := r.resolved[id]
	return obj, ok
}
