package lower

import (
	"wabbit/ir"
	"wabbit/report"
	"wabbit/types"
	"wabbit/util"
)

// valueType converts a Wabbit type into the IR value type used to hold it.
// Composite values are held by address.
func valueType(typ types.Type) ir.ValueType {
	switch v := typ.(type) {
	case types.PrimitiveType:
		switch v {
		case types.PrimTypeInt:
			return ir.I32
		case types.PrimTypeFloat:
			return ir.F64
		case types.PrimTypeChar:
			return ir.I8
		case types.PrimTypeBool:
			return ir.I1
		default:
			return ir.Void
		}
	case *types.StructType, *types.EnumType:
		return ir.I32
	case nil:
		return ir.Void
	}

	panic(report.ICE("no value type for `%s`", typ.Repr()))
}

// layout is the memory layout of a composite type.
type layout struct {
	// The offsets of each struct field or, for enums, the single offset of
	// the payload shared by all variants.
	offsets []int

	// The total size in bytes.
	size int
}

// structLayout returns the memory layout of a struct.  Fields are laid out in
// declaration order each aligned to its own size.
func (l *Lowerer) structLayout(st *types.StructType) *layout {
	if lo, ok := l.layouts[st.Name()]; ok {
		return lo
	}

	lo := &layout{}
	offset, maxAlign := 0, 1

	for _, field := range st.Fields {
		size := valueType(field.Type).Size()

		offset = util.Align(offset, size)
		lo.offsets = append(lo.offsets, offset)
		offset += size

		if size > maxAlign {
			maxAlign = size
		}
	}

	lo.size = util.Align(offset, maxAlign)
	l.layouts[st.Name()] = lo
	return lo
}

// enumLayout returns the memory layout of an enum: an `i32` tag at offset zero
// followed by a payload slot large enough for every variant's payload.
func (l *Lowerer) enumLayout(et *types.EnumType) *layout {
	if lo, ok := l.layouts[et.Name()]; ok {
		return lo
	}

	maxSize := 0
	for _, variant := range et.Variants {
		if variant.Payload != nil {
			if size := valueType(variant.Payload).Size(); size > maxSize {
				maxSize = size
			}
		}
	}

	lo := &layout{offsets: []int{ir.I32.Size()}, size: ir.I32.Size()}
	if maxSize > 0 {
		lo.offsets[0] = util.Align(ir.I32.Size(), maxSize)
		lo.size = util.Align(lo.offsets[0]+maxSize, maxSize)
	}

	l.layouts[et.Name()] = lo
	return lo
}
