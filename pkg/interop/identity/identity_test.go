package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/handle"
	"github.com/UbiquityDotNET/Llvm.NET-sub006/pkg/interop/logging"
)

const (
	kindLeaf Kind = iota + 1
	kindBranch
	kindOther
)

type node interface {
	Ref() handle.Ref
}

type leaf struct{ Object }
type branch struct{ Object }
type generic struct{ Object }

type fakeResolver struct {
	kinds map[handle.Ref]Kind
	calls int
}

var errNoSuchHandle = errors.New("no such handle")

func (r *fakeResolver) Discriminate(ref handle.Ref) (Kind, error) {
	r.calls++
	k, ok := r.kinds[ref]
	if !ok {
		return 0, errNoSuchHandle
	}
	return k, nil
}

func (r *fakeResolver) Materialize(kind Kind, s *Scope, ref handle.Ref) node {
	switch kind {
	case kindLeaf:
		return &leaf{NewObject(s, ref)}
	case kindBranch:
		return &branch{NewObject(s, ref)}
	default:
		return &generic{NewObject(s, ref)}
	}
}

func newFixture(t *testing.T) (*Scope, *Cache[node], *fakeResolver) {
	t.Helper()
	r := &fakeResolver{kinds: map[handle.Ref]Kind{
		0x10: kindLeaf,
		0x20: kindBranch,
		0x30: kindOther,
		0x40: kindLeaf,
	}}
	s := NewScope("test", nil)
	t.Cleanup(func() { _ = s.Close() })
	return s, NewCache[node](s, "nodes", r), r
}

func TestGetOrCreateIdentity(t *testing.T) {
	_, c, r := newFixture(t)

	a, err := c.GetOrCreate(0x10)
	require.NoError(t, err)
	b, err := GetOrCreate(c, 0x10)
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, 1, r.calls, "hits must not consult the discriminator")
	assert.Equal(t, 1, c.Len())
	assert.IsType(t, &leaf{}, a)
}

func TestGetOrCreateConcreteKinds(t *testing.T) {
	_, c, _ := newFixture(t)

	w, err := c.GetOrCreate(0x20)
	require.NoError(t, err)
	assert.IsType(t, &branch{}, w)

	w, err = c.GetOrCreate(0x30)
	require.NoError(t, err)
	assert.IsType(t, &generic{}, w, "unknown kinds fall back to the generic wrapper")
}

func TestGetOrCreateNull(t *testing.T) {
	_, c, r := newFixture(t)

	_, err := c.GetOrCreate(handle.Null)
	require.ErrorIs(t, err, interop.ErrInvalidHandle)
	assert.Zero(t, r.calls)
	assert.Zero(t, c.Len())
}

func TestGetOrCreateDiscriminatorFailure(t *testing.T) {
	_, c, _ := newFixture(t)

	_, err := c.GetOrCreate(0x99)
	require.ErrorIs(t, err, interop.ErrDiscriminator)
	require.ErrorIs(t, err, errNoSuchHandle)
	assert.NotErrorIs(t, err, interop.ErrInvalidHandle)

	_, ok := c.Lookup(0x99)
	assert.False(t, ok)
}

func TestDisposedScope(t *testing.T) {
	s, c, _ := newFixture(t)

	w, err := c.GetOrCreate(0x10)
	require.NoError(t, err)
	obj := w.(*leaf)
	assert.False(t, obj.Disposed())

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.True(t, s.Disposed())
	assert.True(t, obj.Disposed())
	assert.Zero(t, c.Len())

	_, err = c.GetOrCreate(0x10)
	require.ErrorIs(t, err, interop.ErrScopeDisposed)

	_, err = obj.Check("use")
	require.ErrorIs(t, err, interop.ErrScopeDisposed)

	_, err = s.Native()
	require.ErrorIs(t, err, interop.ErrScopeDisposed)
}

func TestAs(t *testing.T) {
	_, c, _ := newFixture(t)

	l, err := As[*leaf](c, 0x10)
	require.NoError(t, err)
	assert.Equal(t, handle.Ref(0x10), l.Ref())

	_, err = As[*leaf](c, 0x20)
	require.ErrorIs(t, err, interop.ErrUnexpectedKind)

	var ie *interop.Error
	require.ErrorAs(t, err, &ie)
	actual, ok := ie.Value.(*branch)
	require.True(t, ok)

	again, err := c.GetOrCreate(0x20)
	require.NoError(t, err)
	assert.Same(t, again, actual)
}

func TestReplace(t *testing.T) {
	_, c, _ := newFixture(t)

	old, err := c.GetOrCreate(0x10)
	require.NoError(t, err)

	survivor, err := c.Replace(0x10, 0x40)
	require.NoError(t, err)
	assert.NotSame(t, old, survivor)
	assert.Equal(t, handle.Ref(0x40), survivor.Ref())

	got, err := c.GetOrCreate(0x10)
	require.NoError(t, err)
	assert.Same(t, survivor, got)

	_, err = c.Replace(handle.Null, 0x40)
	require.ErrorIs(t, err, interop.ErrInvalidHandle)
	_, err = c.Replace(0x10, 0x99)
	require.ErrorIs(t, err, interop.ErrDiscriminator)
}

func TestEvict(t *testing.T) {
	_, c, r := newFixture(t)

	a, err := c.GetOrCreate(0x10)
	require.NoError(t, err)
	_, err = c.GetOrCreate(0x20)
	require.NoError(t, err)
	survivor, err := c.Replace(0x30, 0x40)
	require.NoError(t, err)

	dropped := c.Evict(func(_ handle.Ref, w node) bool { return w.Ref() == 0x40 })
	require.Len(t, dropped, 1, "aliases of one wrapper are reported once")
	assert.Same(t, survivor, dropped[0])
	assert.Equal(t, 2, c.Len())
	_, ok := c.Lookup(0x30)
	assert.False(t, ok)

	calls := r.calls
	again, err := c.GetOrCreate(0x40)
	require.NoError(t, err)
	assert.NotSame(t, survivor, again)
	assert.Equal(t, calls+1, r.calls)

	assert.Empty(t, c.Evict(func(handle.Ref, node) bool { return false }))
	got, err := c.GetOrCreate(0x10)
	require.NoError(t, err)
	assert.Same(t, a, got)
}

func TestObjectInvalidate(t *testing.T) {
	s := NewScope("test", nil)
	defer s.Close()

	o := NewObject(s, 0x10)
	ref, err := o.Check("op")
	require.NoError(t, err)
	assert.Equal(t, handle.Ref(0x10), ref)

	copied := o
	o.Invalidate()
	assert.True(t, copied.Disposed())
	assert.False(t, s.Disposed())
	_, err = copied.Check("op")
	require.ErrorIs(t, err, interop.ErrInvalidHandle)

	var zero Object
	zero.Invalidate()
	assert.True(t, zero.Disposed())
}

func TestEach(t *testing.T) {
	_, c, _ := newFixture(t)
	for _, ref := range []handle.Ref{0x10, 0x20, 0x30} {
		_, err := c.GetOrCreate(ref)
		require.NoError(t, err)
	}

	seen := map[handle.Ref]bool{}
	c.Each(func(ref handle.Ref, w node) bool {
		assert.Equal(t, ref, w.Ref())
		seen[ref] = true
		return true
	})
	assert.Len(t, seen, 3)

	visits := 0
	c.Each(func(handle.Ref, node) bool {
		visits++
		return false
	})
	assert.Equal(t, 1, visits)
}

func TestScopeCloseOrder(t *testing.T) {
	released := 0
	native := handle.NewOwned(0x1, func(handle.Ref) { released++ })
	s := NewScope("ordered", native)

	ref, err := s.Native()
	require.NoError(t, err)
	assert.Equal(t, handle.Ref(0x1), ref)

	var order []string
	s.OnClose(func() error {
		order = append(order, "first")
		assert.Zero(t, released, "native context must outlive the hooks")
		assert.False(t, s.Disposed())
		_, err := s.Native()
		assert.NoError(t, err)
		return nil
	})
	hookErr := errors.New("hook failed")
	s.OnClose(func() error {
		order = append(order, "second")
		return hookErr
	})

	err = s.Close()
	require.ErrorIs(t, err, hookErr)
	assert.Equal(t, []string{"second", "first"}, order)
	assert.Equal(t, 1, released)

	require.NoError(t, s.Close())
	assert.Equal(t, 1, released)
}

func TestScopeLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewScope("logged", nil, WithLogger(logging.NewZap(zap.New(core))))
	c := NewCache[node](s, "nodes", &fakeResolver{kinds: map[handle.Ref]Kind{0x10: kindLeaf}})

	_, err := c.GetOrCreate(0x10)
	require.NoError(t, err)
	_, err = c.GetOrCreate(0x10)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.Equal(t, 1, logs.FilterMessage("wrapper materialized").Len())
	closed := logs.FilterMessage("scope closed").All()
	require.Len(t, closed, 1)
	assert.Equal(t, "logged", closed[0].ContextMap()["scope"])
}
