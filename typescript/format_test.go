package typescript

import (
	"testing"

	"github.com/teranos/declgen/descriptor"
	"github.com/teranos/declgen/errors"
)

// mapDescriber backs tests with a fixed descriptor set.
func mapDescriber(classes ...*descriptor.Class) descriptor.Describer {
	m := make(map[string]*descriptor.Class, len(classes))
	for _, cls := range classes {
		m[cls.Name] = cls
	}
	return descriptor.DescriberFunc(func(name string) (*descriptor.Class, error) {
		if cls, ok := m[name]; ok {
			return cls, nil
		}
		return nil, errors.Newf("unknown class %s", name)
	})
}

func str() descriptor.TypeRef     { return &descriptor.Primitive{P: descriptor.String} }
func integer() descriptor.TypeRef { return &descriptor.Primitive{P: descriptor.Integer} }

func nullable(inner descriptor.TypeRef) descriptor.TypeRef {
	return &descriptor.Nullable{Inner: inner}
}

var (
	widgetClass = &descriptor.Class{
		Name: "demo.Widget",
		Kind: descriptor.KindStruct,
		Properties: []descriptor.Property{
			{Name: "name", Type: str(), Public: true},
			{Name: "value", Type: integer(), Public: true},
		},
	}
	colorEnum = &descriptor.Class{
		Name:     "demo.Color",
		Kind:     descriptor.KindEnum,
		Variants: []string{"red", "green"},
	}
)

// badRef simulates a reference kind the formatter cannot classify.
type badRef struct{}

func (badRef) Kind() descriptor.RefKind { return descriptor.RefKind(99) }

func TestFormat(t *testing.T) {
	tests := []struct {
		name      string
		ref       descriptor.TypeRef
		settings  func(*Settings)
		want      string
		wantUnion bool
	}{
		{
			name: "boolean primitive",
			ref:  &descriptor.Primitive{P: descriptor.Boolean},
			want: "boolean",
		},
		{
			name: "integer uses configured token",
			ref:  integer(),
			settings: func(s *Settings) {
				s.IntType = "bigint"
			},
			want: "bigint",
		},
		{
			name: "float",
			ref:  &descriptor.Primitive{P: descriptor.Float},
			want: "number",
		},
		{
			name:      "nullable string",
			ref:       nullable(str()),
			want:      "string | null",
			wantUnion: true,
		},
		{
			name: "nullable with undefined void token",
			ref:  nullable(str()),
			settings: func(s *Settings) {
				s.VoidType = VoidUndefined
			},
			want:      "string | undefined",
			wantUnion: true,
		},
		{
			name: "array of plain element has no parens",
			ref:  &descriptor.ArrayRef{Element: str()},
			want: "string[]",
		},
		{
			name: "array of union element is parenthesized",
			ref:  &descriptor.ArrayRef{Element: nullable(str())},
			want: "(string | null)[]",
		},
		{
			name:      "nullable array of nullable elements unions at both levels",
			ref:       nullable(&descriptor.ArrayRef{Element: nullable(str())}),
			want:      "(string | null)[] | null",
			wantUnion: true,
		},
		{
			name: "set renders as array by default",
			ref:  &descriptor.SetRef{Element: str()},
			want: "string[]",
		},
		{
			name: "set renders natively when configured",
			ref:  &descriptor.SetRef{Element: str()},
			settings: func(s *Settings) {
				s.UseNativeSets = true
			},
			want: "Set<string>",
		},
		{
			name: "map with primitive key",
			ref:  &descriptor.MapRef{Key: str(), Value: integer()},
			want: "{ [key: string]: number }",
		},
		{
			name: "map keyed by enum uses mapped type",
			ref:  &descriptor.MapRef{Key: &descriptor.ClassRef{Name: "demo.Color"}, Value: str()},
			want: "{ [key in Color]: string }",
		},
		{
			name: "generic parameter renders verbatim",
			ref:  &descriptor.ParamRef{Name: "T"},
			want: "T",
		},
		{
			name: "class reference",
			ref:  &descriptor.ClassRef{Name: "demo.Widget"},
			want: "Widget",
		},
		{
			name: "class reference with arguments",
			ref: &descriptor.ClassRef{
				Name:      "demo.Widget",
				Arguments: []descriptor.TypeRef{str(), nullable(integer())},
			},
			want: "Widget<string, number | null>",
		},
		{
			name: "direct mapping replaces rendering",
			ref:  &descriptor.ClassRef{Name: "java.time.LocalDate"},
			settings: func(s *Settings) {
				s.MapTypes = map[string]string{"java.time.LocalDate": "string"}
			},
			want: "string",
		},
		{
			name: "direct mapping composes nullability",
			ref:  nullable(&descriptor.ClassRef{Name: "java.time.LocalDate"}),
			settings: func(s *Settings) {
				s.MapTypes = map[string]string{"java.time.LocalDate": "string"}
			},
			want:      "string | null",
			wantUnion: true,
		},
		{
			name: "union-shaped mapping parenthesizes inside arrays",
			ref:  &descriptor.ArrayRef{Element: &descriptor.ClassRef{Name: "demo.Either"}},
			settings: func(s *Settings) {
				s.MapTypes = map[string]string{"demo.Either": "string | number"}
			},
			want: "(string | number)[]",
		},
		{
			name: "missing container element substitutes top type",
			ref:  &descriptor.ArrayRef{Element: nil},
			want: "any[]",
		},
		{
			name: "unclassifiable reference degrades to sentinel",
			ref:  badRef{},
			want: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			if tt.settings != nil {
				tt.settings(&settings)
			}
			g := NewGenerator(mapDescriber(widgetClass, colorEnum), settings)

			got, err := g.format(tt.ref)
			if err != nil {
				t.Fatalf("format() error: %v", err)
			}
			if got.text != tt.want {
				t.Errorf("format() = %q, want %q", got.text, tt.want)
			}
			if got.isUnion != tt.wantUnion {
				t.Errorf("format() isUnion = %v, want %v", got.isUnion, tt.wantUnion)
			}
		})
	}
}

func TestFormatUnknownClassFails(t *testing.T) {
	g := NewGenerator(mapDescriber(), DefaultSettings())

	_, err := g.format(&descriptor.ClassRef{Name: "demo.Missing"})
	if err == nil {
		t.Fatal("expected describer failure to surface, got nil")
	}
}

func TestFormatDiscoversClasses(t *testing.T) {
	g := NewGenerator(mapDescriber(widgetClass, colorEnum), DefaultSettings())
	g.current = "demo.Owner"

	if _, err := g.format(&descriptor.ArrayRef{Element: &descriptor.ClassRef{Name: "demo.Widget"}}); err != nil {
		t.Fatalf("format() error: %v", err)
	}
	if !g.deps["demo.Owner"]["demo.Widget"] {
		t.Error("expected demo.Widget recorded as dependency of demo.Owner")
	}
	if len(g.pending) != 1 || g.pending[0].Name != "demo.Widget" {
		t.Error("expected demo.Widget queued for traversal")
	}
}

func TestFormatMappedClassIsNotDiscovered(t *testing.T) {
	settings := DefaultSettings()
	settings.MapTypes = map[string]string{"demo.Widget": "unknown"}
	g := NewGenerator(mapDescriber(widgetClass), settings)
	g.current = "demo.Owner"

	if _, err := g.format(&descriptor.ClassRef{Name: "demo.Widget"}); err != nil {
		t.Fatalf("format() error: %v", err)
	}
	if len(g.pending) != 0 {
		t.Error("mapped class must not be queued for traversal")
	}
}
