package typescript

import (
	"strings"

	"github.com/teranos/declgen/descriptor"
	"github.com/teranos/declgen/errors"
)

// sentinelType is emitted for references the formatter cannot classify.
// Degrading to a token keeps one bad reference from failing a traversal.
const sentinelType = "unknown"

// topType substitutes for a missing container element/key/value argument.
const topType = "any"

// formatted is the result of rendering one type reference. isUnion records
// whether the text is a union at its top level, so container renders can
// parenthesize exactly when needed.
type formatted struct {
	text    string
	isUnion bool
}

func plain(text string) formatted { return formatted{text: text} }

// format renders a type reference to TypeScript text. Every class identity
// encountered on the way (other than ones intercepted by a direct mapping)
// is reported to the walker as a discovered dependency.
func (g *Generator) format(ref descriptor.TypeRef) (formatted, error) {
	if ref == nil {
		// Malformed container references arrive here; substitute the
		// implicit top type rather than failing.
		return plain(topType), nil
	}

	switch r := ref.(type) {
	case *descriptor.Nullable:
		inner, err := g.format(r.Inner)
		if err != nil {
			return formatted{}, err
		}
		return formatted{
			text:    inner.text + " | " + g.settings.voidType(),
			isUnion: true,
		}, nil

	case *descriptor.Primitive:
		return plain(g.primitiveToken(r.P)), nil

	case *descriptor.ParamRef:
		// Parameter names are verbatim, never class lookups.
		return plain(r.Name), nil

	case *descriptor.ArrayRef:
		return g.formatSequence(r.Element, false)

	case *descriptor.SetRef:
		return g.formatSequence(r.Element, true)

	case *descriptor.MapRef:
		return g.formatMap(r)

	case *descriptor.ClassRef:
		return g.formatClassRef(r)

	default:
		return plain(sentinelType), nil
	}
}

func (g *Generator) primitiveToken(p descriptor.PrimitiveKind) string {
	switch p {
	case descriptor.Boolean:
		return "boolean"
	case descriptor.String:
		return "string"
	case descriptor.Integer:
		return g.settings.intType()
	case descriptor.Float:
		return "number"
	case descriptor.Any:
		return "any"
	default:
		return sentinelType
	}
}

// formatSequence renders arrays and sets. The element text is
// parenthesized only when its own rendering is a union, disambiguating
// (X | null)[] from X | null[].
func (g *Generator) formatSequence(element descriptor.TypeRef, isSet bool) (formatted, error) {
	elem, err := g.format(element)
	if err != nil {
		return formatted{}, err
	}
	if isSet && g.settings.UseNativeSets {
		return plain("Set<" + elem.text + ">"), nil
	}
	if elem.isUnion {
		return plain("(" + elem.text + ")[]"), nil
	}
	return plain(elem.text + "[]"), nil
}

func (g *Generator) formatMap(r *descriptor.MapRef) (formatted, error) {
	value, err := g.format(r.Value)
	if err != nil {
		return formatted{}, err
	}

	// A map keyed by an enum renders as a mapped type over the enum's
	// members instead of a generic index signature.
	if keyRef, ok := r.Key.(*descriptor.ClassRef); ok {
		if _, mapped := g.settings.MapTypes[keyRef.Name]; !mapped {
			cls, err := g.describe(keyRef.Name)
			if err != nil {
				return formatted{}, err
			}
			if cls.Kind == descriptor.KindEnum {
				g.discover(cls)
				return plain("{ [key in " + g.renderName(cls) + "]: " + value.text + " }"), nil
			}
		}
	}

	key, err := g.format(r.Key)
	if err != nil {
		return formatted{}, err
	}
	return plain("{ [key: " + key.text + "]: " + value.text + " }"), nil
}

func (g *Generator) formatClassRef(r *descriptor.ClassRef) (formatted, error) {
	// Direct mappings replace the rendering entirely, no recursion and no
	// discovery. A mapping that is itself a union still parenthesizes
	// correctly inside containers.
	if text, ok := g.settings.MapTypes[r.Name]; ok {
		return formatted{text: text, isUnion: strings.Contains(text, "|")}, nil
	}

	cls, err := g.describe(r.Name)
	if err != nil {
		return formatted{}, errors.Wrapf(err, "cannot describe %s", r.Name)
	}
	g.discover(cls)

	name := g.renderName(cls)
	if len(r.Arguments) == 0 {
		return plain(name), nil
	}

	args := make([]string, len(r.Arguments))
	for i, arg := range r.Arguments {
		f, err := g.format(arg)
		if err != nil {
			return formatted{}, err
		}
		args[i] = f.text
	}
	return plain(name + "<" + strings.Join(args, ", ") + ">"), nil
}

// renderName resolves the target-side name of a class: explicit remapping
// first, then the descriptor's own override, then the base identifier.
// The interface prefix applies to struct classes only, and never to names
// listed as ignored superclasses.
func (g *Generator) renderName(cls *descriptor.Class) string {
	if name, ok := g.settings.RenameTypes[cls.Name]; ok {
		return name
	}
	name := cls.NameOverride
	if name == "" {
		name = cls.BaseName()
	}
	if g.settings.InterfacePrefix != "" &&
		cls.Kind != descriptor.KindEnum &&
		!g.settings.IgnoredSuperclasses[cls.Name] {
		name = g.settings.InterfacePrefix + name
	}
	return name
}
