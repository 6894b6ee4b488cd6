package identity

import (
	"context"
	"fmt"
	"reflect"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/handle"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/logging"
)

// Kind is the concrete kind a Resolver reports for a handle. Its meaning is
// private to the resolver.
type Kind uint32

// Resolver discovers the concrete kind behind a handle and builds the
// matching wrapper.
type Resolver[W any] interface {
	// Discriminate asks native code what ref actually is.
	Discriminate(ref handle.Ref) (Kind, error)
	// Materialize builds the wrapper for kind. Kinds the resolver has no
	// specific wrapper for must map to a fallback wrapper.
	Materialize(kind Kind, s *Scope, ref handle.Ref) W
}

// Cache holds the unique wrapper for each handle of one category within a
// Scope.
type Cache[W any] struct {
	scope    *Scope
	category string
	resolver Resolver[W]
	items    map[handle.Ref]W
}

// NewCache creates a cache for category and registers it with s so that it is
// cleared when s closes.
func NewCache[W any](s *Scope, category string, r Resolver[W]) *Cache[W] {
	c := &Cache[W]{
		scope:    s,
		category: category,
		resolver: r,
		items:    make(map[handle.Ref]W),
	}
	s.register(c)
	return c
}

// Scope returns the owning scope.
func (c *Cache[W]) Scope() *Scope { return c.scope }

// Category returns the handle category name.
func (c *Cache[W]) Category() string { return c.category }

// GetOrCreate returns the wrapper for ref, materializing and registering it
// on first use.
func (c *Cache[W]) GetOrCreate(ref handle.Ref) (W, error) {
	var zero W
	const op = "identity.GetOrCreate"

	if c.scope.Disposed() {
		return zero, interop.Wrap(op, uintptr(ref), interop.ErrScopeDisposed)
	}
	if ref.IsNull() {
		return zero, interop.Wrapf(op, 0, interop.ErrInvalidHandle, "%s", c.category)
	}
	if w, ok := c.items[ref]; ok {
		return w, nil
	}

	w, err := c.materialize(op, ref)
	if err != nil {
		return zero, err
	}
	c.items[ref] = w
	return w, nil
}

// Lookup returns the wrapper registered for ref without creating one.
func (c *Cache[W]) Lookup(ref handle.Ref) (W, bool) {
	w, ok := c.items[ref]
	return w, ok
}

// Len returns the number of registered wrappers.
func (c *Cache[W]) Len() int { return len(c.items) }

// Each calls fn for every registered wrapper until fn returns false. The
// iteration order is unspecified.
func (c *Cache[W]) Each(fn func(handle.Ref, W) bool) {
	for ref, w := range c.items {
		if !fn(ref, w) {
			return
		}
	}
}

// Replace re-points old at the wrapper for replacement. It is used after
// native code replaced all uses of one handle with another, so later
// lookups of old yield the surviving object.
func (c *Cache[W]) Replace(old, replacement handle.Ref) (W, error) {
	var zero W
	const op = "identity.Replace"

	if c.scope.Disposed() {
		return zero, interop.Wrap(op, uintptr(old), interop.ErrScopeDisposed)
	}
	if old.IsNull() {
		return zero, interop.Wrapf(op, 0, interop.ErrInvalidHandle, "replaced %s", c.category)
	}
	w, err := c.GetOrCreate(replacement)
	if err != nil {
		return zero, err
	}
	c.items[old] = w
	return w, nil
}

// Evict drops every entry whose wrapper matches pred and returns the dropped
// wrappers, each once. It is for native objects destroyed before the scope,
// so a later reuse of their address materializes a fresh wrapper.
func (c *Cache[W]) Evict(pred func(ref handle.Ref, w W) bool) []W {
	var (
		dropped []W
		seen    = make(map[any]bool)
	)
	for ref, w := range c.items {
		if !pred(ref, w) {
			continue
		}
		delete(c.items, ref)
		if !seen[any(w)] {
			seen[any(w)] = true
			dropped = append(dropped, w)
		}
	}
	if len(dropped) > 0 {
		c.scope.log.Debug(context.Background(), "wrappers evicted", "category", c.category, "count", len(dropped))
	}
	return dropped
}

func (c *Cache[W]) materialize(op string, ref handle.Ref) (W, error) {
	var zero W
	kind, err := c.resolver.Discriminate(ref)
	if err != nil {
		return zero, interop.Wrap(op, uintptr(ref), fmt.Errorf("%w: %w", interop.ErrDiscriminator, err))
	}
	w := c.resolver.Materialize(kind, c.scope, ref)
	if any(w) == nil {
		return zero, interop.Wrapf(op, uintptr(ref), interop.ErrDiscriminator, "no wrapper for %s kind %d", c.category, kind)
	}
	c.scope.log.Debug(context.Background(), "wrapper materialized",
		"category", c.category, "kind", uint32(kind), logging.Handle("ref", uintptr(ref)))
	return w, nil
}

func (c *Cache[W]) clear() {
	c.items = make(map[handle.Ref]W)
}

// GetOrCreate is the function form of Cache.GetOrCreate.
func GetOrCreate[W any](c *Cache[W], ref handle.Ref) (W, error) {
	return c.GetOrCreate(ref)
}

// As resolves ref through c and asserts that the wrapper is a T. When native
// code produced a different kind, the error wraps interop.ErrUnexpectedKind
// and its Value field holds the wrapper that was actually materialized.
func As[T any, W any](c *Cache[W], ref handle.Ref) (T, error) {
	var zero T
	w, err := c.GetOrCreate(ref)
	if err != nil {
		return zero, err
	}
	if t, ok := any(w).(T); ok {
		return t, nil
	}
	return zero, &interop.Error{
		Op:    "identity.As",
		Ref:   uintptr(ref),
		Value: w,
		Err:   fmt.Errorf("%w: got %T, want %v", interop.ErrUnexpectedKind, w, reflect.TypeFor[T]()),
	}
}
