// Package descriptor defines the structural type model consumed by the
// generator: classes, properties, generic parameters, and type references.
//
// Descriptors are produced once per traversal by an extraction layer (see
// gosource) or built directly in tests, and are treated as immutable from
// then on. Two descriptors describe the same class iff their qualified
// names match.
package descriptor

// ClassKind distinguishes emittable declaration categories.
type ClassKind int

const (
	// KindStruct is an object type with named properties.
	KindStruct ClassKind = iota
	// KindEnum is a closed set of string variants.
	KindEnum
)

// Class describes one emittable type.
type Class struct {
	// Name is the qualified name, dot separated (e.g. "pulse.async.Job").
	// It is the class's identity for the lifetime of a traversal.
	Name string

	Kind ClassKind

	// Properties in declaration order. Struct kind only.
	Properties []Property

	// Supertypes are direct supertype references.
	Supertypes []TypeRef

	// TypeParameters are the declared generic parameters, in order.
	TypeParameters []TypeParameter

	// Variants are the enum member literals, in declaration order.
	// Enum kind only.
	Variants []string

	// NameOverride, when set, replaces the class's base identifier in all
	// rendered positions. An explicit settings-level rename still wins.
	NameOverride string

	// Comment is an optional doc comment carried into the declaration.
	Comment string
}

// BaseName returns the unqualified identifier of the class.
func (c *Class) BaseName() string {
	for i := len(c.Name) - 1; i >= 0; i-- {
		if c.Name[i] == '.' {
			return c.Name[i+1:]
		}
	}
	return c.Name
}

// Property describes one declared property of a struct class.
type Property struct {
	Name string
	Type TypeRef

	// Public properties are emitted; non-public ones are skipped.
	Public bool

	// Callable marks method-valued properties, excluded from emission.
	Callable bool

	// OverriddenFrom names the ancestor class that already declares this
	// property with an identical type, or is empty. Used by the
	// override-dedup mode.
	OverriddenFrom string

	// Comment is an optional doc comment carried into the declaration.
	Comment string
}

// TypeParameter describes one declared generic parameter.
type TypeParameter struct {
	Name string

	// Bounds are the upper-bound references. Empty means unconstrained.
	Bounds []TypeRef
}

// Describer is the input boundary of the engine: all structural knowledge
// enters through it. Implementations must return an error, not a partial
// descriptor, when a class cannot be described; the traversal aborts on it.
type Describer interface {
	DescribeClass(name string) (*Class, error)
}

// DescriberFunc adapts a function to the Describer interface.
type DescriberFunc func(name string) (*Class, error)

// DescribeClass calls f.
func (f DescriberFunc) DescribeClass(name string) (*Class, error) {
	return f(name)
}

// IsSubtype reports whether the class or any of its transitive supertypes
// has the given qualified name. Lookup failures terminate the walk on that
// branch; a predicate should not fail a traversal.
func IsSubtype(c *Class, anchor string, d Describer) bool {
	return isSubtype(c, anchor, d, make(map[string]bool))
}

func isSubtype(c *Class, anchor string, d Describer, seen map[string]bool) bool {
	if c == nil || seen[c.Name] {
		return false
	}
	seen[c.Name] = true
	if c.Name == anchor {
		return true
	}
	for _, sup := range c.Supertypes {
		ref, ok := sup.(*ClassRef)
		if !ok {
			continue
		}
		if ref.Name == anchor {
			return true
		}
		parent, err := d.DescribeClass(ref.Name)
		if err != nil {
			continue
		}
		if isSubtype(parent, anchor, d, seen) {
			return true
		}
	}
	return false
}
