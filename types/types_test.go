package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNominalEquality(t *testing.T) {
	a := NewStructType("A")
	a.AddField("x", PrimTypeInt)

	b := NewStructType("B")
	b.AddField("x", PrimTypeInt)

	assert.False(t, Equals(a, b), "structurally identical structs with different names")
	assert.True(t, Equals(a, a))
	assert.True(t, Equals(a, NewStructType("A")))
}

func TestPrimitiveEquality(t *testing.T) {
	assert.True(t, Equals(PrimTypeInt, PrimTypeInt))
	assert.False(t, Equals(PrimTypeInt, PrimTypeFloat))
	assert.False(t, Equals(PrimTypeInt, NewStructType("int")))
	assert.False(t, Equals(nil, PrimTypeInt))
}

func TestPrimitiveByName(t *testing.T) {
	for _, name := range []string{"int", "float", "bool", "char"} {
		pt, ok := PrimitiveByName(name)
		assert.True(t, ok)
		assert.Equal(t, name, pt.Repr())
	}

	_, ok := PrimitiveByName("unit")
	assert.False(t, ok)
}

func TestEnumVariants(t *testing.T) {
	e := NewEnumType("Number")
	assert.True(t, e.AddVariant("Integer", PrimTypeInt))
	assert.True(t, e.AddVariant("Float", PrimTypeFloat))
	assert.False(t, e.AddVariant("Integer", PrimTypeInt))

	v, tag, ok := e.GetVariantByName("Float")
	assert.True(t, ok)
	assert.Equal(t, 1, tag)
	assert.Equal(t, PrimTypeFloat, v.Payload)
}
