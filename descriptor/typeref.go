package descriptor

// RefKind identifies the category of a type reference.
type RefKind int

const (
	KindPrimitive RefKind = iota // built-in primitive
	KindClass                    // reference to a named class
	KindParam                    // generic parameter reference
	KindArray                    // ordered collection
	KindSet                      // unordered unique collection
	KindMap                      // key-value mapping
	KindNullable                 // nullability wrapper, composable with any kind
)

// String returns the string representation of the reference kind.
func (k RefKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindClass:
		return "Class"
	case KindParam:
		return "Param"
	case KindArray:
		return "Array"
	case KindSet:
		return "Set"
	case KindMap:
		return "Map"
	case KindNullable:
		return "Nullable"
	default:
		return "Unknown"
	}
}

// TypeRef is a possibly-nullable, possibly-generic description of a
// property's or argument's type. Implementations are the fixed set of
// reference structs in this package.
type TypeRef interface {
	Kind() RefKind
}

// PrimitiveKind enumerates the primitive reference kinds.
type PrimitiveKind int

const (
	Boolean PrimitiveKind = iota
	String
	Integer
	Float
	// Any is the implicit top type.
	Any
)

// Primitive is a primitive type reference.
type Primitive struct {
	P PrimitiveKind
}

func (*Primitive) Kind() RefKind { return KindPrimitive }

// ClassRef references a class descriptor by qualified name, with optional
// type arguments.
type ClassRef struct {
	Name      string
	Arguments []TypeRef
}

func (*ClassRef) Kind() RefKind { return KindClass }

// ParamRef references an enclosing generic parameter by name. Parameter
// names render verbatim; they are never treated as class references even
// when they shadow a real class name.
type ParamRef struct {
	Name string
}

func (*ParamRef) Kind() RefKind { return KindParam }

// ArrayRef is an ordered collection of Element.
type ArrayRef struct {
	Element TypeRef
}

func (*ArrayRef) Kind() RefKind { return KindArray }

// SetRef is a unique collection of Element. Rendered as an array unless
// native sets are enabled.
type SetRef struct {
	Element TypeRef
}

func (*SetRef) Kind() RefKind { return KindSet }

// MapRef is a key-value mapping.
type MapRef struct {
	Key   TypeRef
	Value TypeRef
}

func (*MapRef) Kind() RefKind { return KindMap }

// Nullable wraps any reference with nullability. Wrapping composes: a
// nullable array of nullable elements carries one wrapper at each level.
type Nullable struct {
	Inner TypeRef
}

func (*Nullable) Kind() RefKind { return KindNullable }

// Equal reports structural equality of two references. Used by the
// override-dedup mode to compare a property against its ancestor's
// declaration.
func Equal(a, b TypeRef) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch ar := a.(type) {
	case *Primitive:
		br, ok := b.(*Primitive)
		return ok && ar.P == br.P
	case *ClassRef:
		br, ok := b.(*ClassRef)
		if !ok || ar.Name != br.Name || len(ar.Arguments) != len(br.Arguments) {
			return false
		}
		for i := range ar.Arguments {
			if !Equal(ar.Arguments[i], br.Arguments[i]) {
				return false
			}
		}
		return true
	case *ParamRef:
		br, ok := b.(*ParamRef)
		return ok && ar.Name == br.Name
	case *ArrayRef:
		br, ok := b.(*ArrayRef)
		return ok && Equal(ar.Element, br.Element)
	case *SetRef:
		br, ok := b.(*SetRef)
		return ok && Equal(ar.Element, br.Element)
	case *MapRef:
		br, ok := b.(*MapRef)
		return ok && Equal(ar.Key, br.Key) && Equal(ar.Value, br.Value)
	case *Nullable:
		br, ok := b.(*Nullable)
		return ok && Equal(ar.Inner, br.Inner)
	default:
		return false
	}
}
