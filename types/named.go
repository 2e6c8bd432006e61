package types

// NamedType is a user-declared type: a struct or an enum.
type NamedType interface {
	Type

	// Name returns the declared name of the type.
	Name() string
}

// NamedTypeBase is the base struct for all named types.
type NamedTypeBase struct {
	name string
}

func (nt *NamedTypeBase) equals(other Type) bool {
	if ont, ok := other.(NamedType); ok {
		return nt.name == ont.Name()
	}

	return false
}

func (nt *NamedTypeBase) Repr() string {
	return nt.name
}

func (nt *NamedTypeBase) Name() string {
	return nt.name
}

/* -------------------------------------------------------------------------- */

// StructType represents a structure type.
type StructType struct {
	NamedTypeBase

	// The list of fields of the struct in order.
	Fields []StructField

	// A mapping between field names and their index within the struct.
	Indices map[string]int
}

// StructField represents a field of a structure type.
type StructField struct {
	// The field's name.
	Name string

	// The field's type.
	Type Type
}

// NewStructType creates a new struct type with no fields.  The fields are
// added afterwards so that field types may refer to types declared later.
func NewStructType(name string) *StructType {
	return &StructType{
		NamedTypeBase: NamedTypeBase{name: name},
		Indices:       make(map[string]int),
	}
}

// AddField appends a field to the struct.  It returns false if a field by the
// same name already exists.
func (st *StructType) AddField(name string, typ Type) bool {
	if _, ok := st.Indices[name]; ok {
		return false
	}

	st.Indices[name] = len(st.Fields)
	st.Fields = append(st.Fields, StructField{Name: name, Type: typ})
	return true
}

// GetFieldByName returns the struct field corresponding to the given name if
// it exists in the struct.
func (st *StructType) GetFieldByName(name string) (StructField, bool) {
	if index, ok := st.Indices[name]; ok {
		return st.Fields[index], true
	}

	return StructField{}, false
}

/* -------------------------------------------------------------------------- */

// EnumType represents a tagged-union enumeration type.
type EnumType struct {
	NamedTypeBase

	// The list of variants in declaration order.  A variant's index is its tag.
	Variants []EnumVariant

	// A mapping between variant names and their index within the enum.
	Indices map[string]int
}

// EnumVariant is a single variant of an enum.
type EnumVariant struct {
	// The variant's name.
	Name string

	// The type of the variant's payload.  This is nil if the variant carries
	// no payload.
	Payload Type
}

// NewEnumType creates a new enum type with no variants.
func NewEnumType(name string) *EnumType {
	return &EnumType{
		NamedTypeBase: NamedTypeBase{name: name},
		Indices:       make(map[string]int),
	}
}

// AddVariant appends a variant to the enum.  It returns false if a variant by
// the same name already exists.
func (et *EnumType) AddVariant(name string, payload Type) bool {
	if _, ok := et.Indices[name]; ok {
		return false
	}

	et.Indices[name] = len(et.Variants)
	et.Variants = append(et.Variants, EnumVariant{Name: name, Payload: payload})
	return true
}

// GetVariantByName returns the variant and its tag if it exists.
func (et *EnumType) GetVariantByName(name string) (EnumVariant, int, bool) {
	if index, ok := et.Indices[name]; ok {
		return et.Variants[index], index, true
	}

	return EnumVariant{}, -1, false
}
