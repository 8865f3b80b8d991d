// Package typescript renders class descriptors as TypeScript declarations.
//
// The Generator walks the transitive closure of classes reachable from a
// set of roots and emits one interface or enum declaration per class. The
// traversal is single-threaded; one Generator owns its visited set and
// output exclusively, distinct Generators are fully independent.
package typescript

// Void tokens for the nullable union member. Mutually exclusive spellings
// of "no value".
const (
	VoidNull      = "null"
	VoidUndefined = "undefined"
)

// Settings configures a Generator. The zero value plus DefaultSettings
// covers the common case; tests and the CLI override individual fields.
type Settings struct {
	// IntType is the token emitted for integer references.
	IntType string

	// VoidType is the token unioned onto nullable renders, VoidNull or
	// VoidUndefined.
	VoidType string

	// MapTypes maps class qualified names to replacement text emitted
	// verbatim, without recursing into the class. Nullability still
	// composes around the replacement.
	MapTypes map[string]string

	// RenameTypes maps class qualified names to target-side names. Module
	// mode requires rendered names to be unique across emitted classes;
	// renames are the way to break base-name collisions between
	// namespaces.
	RenameTypes map[string]string

	// IgnoredSuperclasses are excluded from extends clauses and are not
	// traversed through supertype edges. A class in this set reached as a
	// property type is still emitted.
	IgnoredSuperclasses map[string]bool

	// NeverEmit permanently excludes classes from emission on any path
	// (container-like classes the extraction layer could not fold away).
	NeverEmit map[string]bool

	// InterfacePrefix is prepended to non-enum class names not listed in
	// IgnoredSuperclasses (e.g. "I" for IFoo-style naming).
	InterfacePrefix string

	// DedupOverrides omits properties whose OverriddenFrom ancestor is
	// visible through a non-ignored supertype and declares an identical
	// name and type.
	DedupOverrides bool

	// EnumAsConst emits enums as a named enum construct instead of a
	// union of string literals.
	EnumAsConst bool

	// UseNativeSets renders set references as Set<T> instead of arrays.
	UseNativeSets bool

	// Export prefixes flat declarations with the export keyword. Module
	// units always export.
	Export bool

	// Transformers is the ordered customization pipeline applied during
	// emission.
	Transformers []Transformer
}

// DefaultSettings returns the baseline configuration: numbers for
// integers, null for absent values, no remapping.
func DefaultSettings() Settings {
	return Settings{
		IntType:  "number",
		VoidType: VoidNull,
	}
}

func (s *Settings) intType() string {
	if s.IntType == "" {
		return "number"
	}
	return s.IntType
}

func (s *Settings) voidType() string {
	if s.VoidType == "" {
		return VoidNull
	}
	return s.VoidType
}
