package typescript

import "github.com/teranos/declgen/descriptor"

// Transformer is one stage of the customization pipeline. Each hook is
// optional; a nil hook behaves as identity. Stages run in pipeline order
// and each receives the previous stage's output, so later stages see the
// cumulative effect of earlier ones.
type Transformer struct {
	// FilterProperties replaces the property list before emission.
	FilterProperties func(props []descriptor.Property, cls *descriptor.Class) []descriptor.Property

	// RenameProperty replaces a surviving property's emitted name.
	RenameProperty func(name string, prop descriptor.Property, cls *descriptor.Class) string

	// RetypeProperty replaces a surviving property's emitted type.
	RetypeProperty func(ref descriptor.TypeRef, prop descriptor.Property, cls *descriptor.Class) descriptor.TypeRef
}

// OnlyWhen scopes a transformer to classes matched by the predicate;
// outside it every hook falls through to identity. Combine with
// descriptor.IsSubtype to anchor a stage to a subtype hierarchy.
func OnlyWhen(pred func(cls *descriptor.Class) bool, inner Transformer) Transformer {
	return Transformer{
		FilterProperties: func(props []descriptor.Property, cls *descriptor.Class) []descriptor.Property {
			if inner.FilterProperties == nil || !pred(cls) {
				return props
			}
			return inner.FilterProperties(props, cls)
		},
		RenameProperty: func(name string, prop descriptor.Property, cls *descriptor.Class) string {
			if inner.RenameProperty == nil || !pred(cls) {
				return name
			}
			return inner.RenameProperty(name, prop, cls)
		},
		RetypeProperty: func(ref descriptor.TypeRef, prop descriptor.Property, cls *descriptor.Class) descriptor.TypeRef {
			if inner.RetypeProperty == nil || !pred(cls) {
				return ref
			}
			return inner.RetypeProperty(ref, prop, cls)
		},
	}
}

// applyFilters runs every stage's property filter in pipeline order.
func (g *Generator) applyFilters(props []descriptor.Property, cls *descriptor.Class) []descriptor.Property {
	for _, t := range g.settings.Transformers {
		if t.FilterProperties != nil {
			props = t.FilterProperties(props, cls)
		}
	}
	return props
}

// applyRenames runs every stage's rename hook in pipeline order.
func (g *Generator) applyRenames(name string, prop descriptor.Property, cls *descriptor.Class) string {
	for _, t := range g.settings.Transformers {
		if t.RenameProperty != nil {
			name = t.RenameProperty(name, prop, cls)
		}
	}
	return name
}

// applyRetypes runs every stage's retype hook in pipeline order.
func (g *Generator) applyRetypes(ref descriptor.TypeRef, prop descriptor.Property, cls *descriptor.Class) descriptor.TypeRef {
	for _, t := range g.settings.Transformers {
		if t.RetypeProperty != nil {
			ref = t.RetypeProperty(ref, prop, cls)
		}
	}
	return ref
}
