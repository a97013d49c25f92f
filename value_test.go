package hcl1

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueConstructorsAndKind(t *testing.T) {
	assert.Equal(t, KindNull, Null().Kind())
	assert.Equal(t, KindBool, Bool(true).Kind())
	assert.Equal(t, KindInt, Int(5).Kind())
	assert.Equal(t, KindFloat, Float(5.0).Kind())
	assert.Equal(t, KindString, String("x").Kind())
	assert.Equal(t, KindList, List().Kind())
	assert.Equal(t, KindObject, Object().Kind())

	assert.True(t, Int(5).IsInt())
	assert.False(t, Int(5).IsFloat())
}

func TestAccessorsStrictKindMismatch(t *testing.T) {
	// Integer and Float never satisfy each other's accessor, even for
	// numerically identical values.
	_, err := Int(5).AsFloat()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrType))

	_, err = Float(5).AsInt()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrType))

	v, err := String("hi").AsString()
	require.NoError(t, err)
	assert.Equal(t, "hi", v)
}

func TestEqualStrictVariantTag(t *testing.T) {
	assert.False(t, Int(5).Equal(Float(5)))
	assert.True(t, Int(5).Equal(Int(5)))
	assert.True(t, Float(5).Equal(Float(5)))
}

func TestEqualListOrderMattersObjectOrderDoesnt(t *testing.T) {
	assert.False(t, List(Int(1), Int(2)).Equal(List(Int(2), Int(1))))
	assert.True(t, List(Int(1), Int(2)).Equal(List(Int(1), Int(2))))

	a := Object()
	require.NoError(t, a.SetChild("x", Int(1)))
	require.NoError(t, a.SetChild("y", Int(2)))
	b := Object()
	require.NoError(t, b.SetChild("y", Int(2)))
	require.NoError(t, b.SetChild("x", Int(1)))
	assert.True(t, a.Equal(b))
}

func TestPushMutatesSharedList(t *testing.T) {
	lst := List(Int(1))
	alias := lst
	require.NoError(t, lst.Push(Int(2)))

	items, err := alias.AsList()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[1].i)
}

func TestSetChildEmptyKeyRejected(t *testing.T) {
	obj := Object()
	err := obj.SetChild("", Int(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrType))
}

func TestCloneIsDeep(t *testing.T) {
	orig := Object()
	require.NoError(t, orig.SetChild("list", List(Int(1), Int(2))))

	clone := orig.Clone()
	origList, _ := orig.FindChild("list")
	require.NoError(t, origList.Push(Int(3)))

	cloneList, _ := clone.FindChild("list")
	items, err := cloneList.AsList()
	require.NoError(t, err)
	assert.Len(t, items, 2, "clone must not see mutations to the original")
}

func TestFindSetErase(t *testing.T) {
	root := Object()
	require.NoError(t, root.Set("a.b.c", Int(42)))

	v, ok := root.Find("a.b.c")
	require.True(t, ok)
	got, err := v.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)

	assert.True(t, root.Has("a.b"))
	assert.False(t, root.Has("a.b.d"))

	require.NoError(t, root.Erase("a.b.c"))
	assert.False(t, root.Has("a.b.c"))
}

func TestFindQuotedSegmentWithDot(t *testing.T) {
	root := Object()
	require.NoError(t, root.Set(`"a.b".c`, Int(1)))

	v, ok := root.Find(`"a.b".c`)
	require.True(t, ok)
	got, _ := v.AsInt()
	assert.Equal(t, int64(1), got)

	// The literal key "a.b" was not split into two segments.
	_, isObj := root.FindChild("a.b")
	assert.True(t, isObj)
}

func TestMergeRecursesOnSharedObjectKeys(t *testing.T) {
	a := Object()
	require.NoError(t, a.Set("x.y", Int(1)))
	require.NoError(t, a.Set("x.z", Int(2)))

	b := Object()
	require.NoError(t, b.Set("x.z", Int(99)))
	require.NoError(t, b.Set("w", String("new")))

	require.NoError(t, a.Merge(b))

	y, _ := a.Find("x.y")
	assert.Equal(t, int64(1), y.i)
	z, _ := a.Find("x.z")
	assert.Equal(t, int64(99), z.i)
	w, _ := a.Find("w")
	assert.Equal(t, "new", w.s)
}

func TestMergeRequiresObjects(t *testing.T) {
	err := Object().Merge(Int(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrType))
}
