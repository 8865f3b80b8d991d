package typescript

import (
	"fmt"
	"strings"

	"github.com/teranos/declgen/descriptor"
)

// emitClass renders one class descriptor as a single declaration.
func (g *Generator) emitClass(cls *descriptor.Class) (string, error) {
	var sb strings.Builder
	writeDocComment(&sb, cls.Comment, "")

	if cls.Kind == descriptor.KindEnum {
		g.emitEnum(&sb, cls)
	} else if err := g.emitInterface(&sb, cls); err != nil {
		return "", err
	}
	text := sb.String()
	if g.settings.Export {
		text = "export " + text
	}
	return text, nil
}

// emitEnum renders a union-of-string-literals type, or a named enum
// construct when EnumAsConst is set. Variants keep declaration order.
func (g *Generator) emitEnum(sb *strings.Builder, cls *descriptor.Class) {
	name := g.renderName(cls)

	if !g.settings.EnumAsConst {
		if len(cls.Variants) == 0 {
			sb.WriteString("type " + name + " = never;")
			return
		}
		literals := make([]string, len(cls.Variants))
		for i, v := range cls.Variants {
			literals[i] = fmt.Sprintf("%q", v)
		}
		sb.WriteString("type " + name + " = " + strings.Join(literals, " | ") + ";")
		return
	}

	sb.WriteString("enum " + name + " {\n")
	for _, v := range cls.Variants {
		member := strings.ToUpper(v)
		if !isIdentifier(member) {
			member = fmt.Sprintf("%q", member)
		}
		fmt.Fprintf(sb, "  %s = %q,\n", member, v)
	}
	sb.WriteString("}")
}

func (g *Generator) emitInterface(sb *strings.Builder, cls *descriptor.Class) error {
	sb.WriteString("interface " + g.renderName(cls))

	clause, err := g.typeParamClause(cls)
	if err != nil {
		return err
	}
	sb.WriteString(clause)

	supertypes, err := g.extendsClause(cls)
	if err != nil {
		return err
	}
	if len(supertypes) > 0 {
		sb.WriteString(" extends " + strings.Join(supertypes, ", "))
	}

	sb.WriteString(" {\n")

	props := g.selectProperties(cls)
	for _, prop := range props {
		name := g.applyRenames(prop.Name, prop, cls)
		ref := g.applyRetypes(prop.Type, prop, cls)
		f, err := g.format(ref)
		if err != nil {
			return err
		}
		writeDocComment(sb, prop.Comment, "  ")
		fmt.Fprintf(sb, "  %s: %s;\n", name, f.text)
	}

	sb.WriteString("}")
	return nil
}

// typeParamClause renders <Name extends B1 & B2, ...>. Bounds equal to the
// implicit top type are dropped; a parameter left without bounds renders
// bare. Formatting the bounds discovers their classes.
func (g *Generator) typeParamClause(cls *descriptor.Class) (string, error) {
	if len(cls.TypeParameters) == 0 {
		return "", nil
	}
	params := make([]string, len(cls.TypeParameters))
	for i, tp := range cls.TypeParameters {
		var bounds []string
		for _, bound := range tp.Bounds {
			f, err := g.format(bound)
			if err != nil {
				return "", err
			}
			if f.text == topType {
				continue
			}
			bounds = append(bounds, f.text)
		}
		if len(bounds) == 0 {
			params[i] = tp.Name
		} else {
			params[i] = tp.Name + " extends " + strings.Join(bounds, " & ")
		}
	}
	return "<" + strings.Join(params, ", ") + ">", nil
}

// extendsClause formats the non-ignored supertypes, deduplicated. Ignored
// superclasses are skipped before formatting, so they are neither listed
// nor traversed through this edge.
func (g *Generator) extendsClause(cls *descriptor.Class) ([]string, error) {
	var supertypes []string
	seen := make(map[string]bool)
	for _, sup := range cls.Supertypes {
		if ref, ok := sup.(*descriptor.ClassRef); ok && g.settings.IgnoredSuperclasses[ref.Name] {
			continue
		}
		f, err := g.format(sup)
		if err != nil {
			return nil, err
		}
		if f.text == topType || seen[f.text] {
			continue
		}
		seen[f.text] = true
		supertypes = append(supertypes, f.text)
	}
	return supertypes, nil
}

// selectProperties applies the default visibility rules, the override
// dedup mode, and the pipeline's property filters, preserving declaration
// order.
func (g *Generator) selectProperties(cls *descriptor.Class) []descriptor.Property {
	props := make([]descriptor.Property, 0, len(cls.Properties))
	for _, prop := range cls.Properties {
		if !prop.Public || prop.Callable {
			continue
		}
		if g.settings.DedupOverrides && g.shadowedByAncestor(cls, prop) {
			continue
		}
		props = append(props, prop)
	}
	return g.applyFilters(props, cls)
}

// shadowedByAncestor reports whether the property re-declares, with an
// identical name and type, a property of an ancestor that stays visible
// through the extends chain. Ancestors reachable only through ignored
// superclasses do not shadow: their extends entry is gone, so the subtype
// must keep its own copy.
func (g *Generator) shadowedByAncestor(cls *descriptor.Class, prop descriptor.Property) bool {
	if prop.OverriddenFrom == "" {
		return false
	}
	ancestor, found := g.findAncestor(cls, prop.OverriddenFrom, make(map[string]bool))
	if !found {
		return false
	}
	for _, ap := range ancestor.Properties {
		if ap.Name == prop.Name && ap.Public && !ap.Callable && descriptor.Equal(ap.Type, prop.Type) {
			return true
		}
	}
	return false
}

// findAncestor walks the supertype closure through non-ignored edges only.
func (g *Generator) findAncestor(cls *descriptor.Class, name string, seen map[string]bool) (*descriptor.Class, bool) {
	if seen[cls.Name] {
		return nil, false
	}
	seen[cls.Name] = true
	for _, sup := range cls.Supertypes {
		ref, ok := sup.(*descriptor.ClassRef)
		if !ok || g.settings.IgnoredSuperclasses[ref.Name] {
			continue
		}
		parent, err := g.describe(ref.Name)
		if err != nil {
			continue
		}
		if parent.Name == name {
			return parent, true
		}
		if found, ok := g.findAncestor(parent, name, seen); ok {
			return found, true
		}
	}
	return nil, false
}

func writeDocComment(sb *strings.Builder, comment, indent string) {
	if comment == "" {
		return
	}
	sb.WriteString(indent + "/** " + comment + " */\n")
}
