package gosource

import (
	"go/types"
	"strings"

	"github.com/teranos/declgen/descriptor"
)

// wellKnown maps qualified names of common library types straight to
// descriptor references, instead of extracting them as classes.
var wellKnown = map[string]descriptor.TypeRef{
	"time.Time":       &descriptor.Primitive{P: descriptor.String}, // RFC3339 string
	"time.Duration":   &descriptor.Primitive{P: descriptor.Integer},
	"json.RawMessage": &descriptor.Primitive{P: descriptor.Any},
}

// qualifiedName derives the class identity for a named type: the package
// path with slashes folded to dots, plus the type name.
func qualifiedName(obj *types.TypeName) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return strings.ReplaceAll(obj.Pkg().Path(), "/", ".") + "." + obj.Name()
}

// convertType translates a go/types type into a descriptor reference.
// Pointers become nullable wrappers; unrecognized shapes degrade to the
// top type rather than failing extraction.
func (x *extractor) convertType(t types.Type) descriptor.TypeRef {
	switch u := t.(type) {
	case *types.Pointer:
		return &descriptor.Nullable{Inner: x.convertType(u.Elem())}

	case *types.Basic:
		return convertBasic(u)

	case *types.Slice:
		return &descriptor.ArrayRef{Element: x.convertType(u.Elem())}

	case *types.Array:
		return &descriptor.ArrayRef{Element: x.convertType(u.Elem())}

	case *types.Map:
		return &descriptor.MapRef{
			Key:   x.convertType(u.Key()),
			Value: x.convertType(u.Elem()),
		}

	case *types.TypeParam:
		return &descriptor.ParamRef{Name: u.Obj().Name()}

	case *types.Named:
		return x.convertNamed(u)

	case *types.Alias:
		return x.convertType(types.Unalias(u))

	case *types.Interface:
		// interface{} and friends carry no structure
		return &descriptor.Primitive{P: descriptor.Any}

	default:
		return &descriptor.Primitive{P: descriptor.Any}
	}
}

func convertBasic(b *types.Basic) descriptor.TypeRef {
	info := b.Info()
	switch {
	case info&types.IsBoolean != 0:
		return &descriptor.Primitive{P: descriptor.Boolean}
	case info&types.IsString != 0:
		return &descriptor.Primitive{P: descriptor.String}
	case info&types.IsInteger != 0:
		return &descriptor.Primitive{P: descriptor.Integer}
	case info&types.IsFloat != 0:
		return &descriptor.Primitive{P: descriptor.Float}
	default:
		return &descriptor.Primitive{P: descriptor.Any}
	}
}

func (x *extractor) convertNamed(named *types.Named) descriptor.TypeRef {
	obj := named.Obj()
	qname := qualifiedName(obj)

	if pkg := obj.Pkg(); pkg != nil {
		if ref, ok := wellKnown[pkg.Name()+"."+obj.Name()]; ok {
			return ref
		}
	}

	// Named types whose package is outside the load set still become
	// class references; the registry fails loudly if they are reached.
	x.noteNamed(named)

	ref := &descriptor.ClassRef{Name: qname}
	if args := named.TypeArgs(); args != nil {
		for i := 0; i < args.Len(); i++ {
			ref.Arguments = append(ref.Arguments, x.convertType(args.At(i)))
		}
	}
	return ref
}

// convertTypeParams extracts the declared generic parameters of a named
// type. Constraints that are plain interface{} stay unconstrained.
func (x *extractor) convertTypeParams(named *types.Named) []descriptor.TypeParameter {
	tparams := named.TypeParams()
	if tparams == nil || tparams.Len() == 0 {
		return nil
	}
	out := make([]descriptor.TypeParameter, 0, tparams.Len())
	for i := 0; i < tparams.Len(); i++ {
		tp := tparams.At(i)
		param := descriptor.TypeParameter{Name: tp.Obj().Name()}
		if iface, ok := tp.Constraint().Underlying().(*types.Interface); ok && !iface.Empty() {
			if named, ok := tp.Constraint().(*types.Named); ok {
				param.Bounds = []descriptor.TypeRef{x.convertNamed(named)}
			}
		}
		out = append(out, param)
	}
	return out
}
