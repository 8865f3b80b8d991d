package descriptor

import "testing"

func TestBaseName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"pulse.async.Job", "Job"},
		{"demo.Widget", "Widget"},
		{"Widget", "Widget"},
		{"", ""},
	}
	for _, tt := range tests {
		c := &Class{Name: tt.name}
		if got := c.BaseName(); got != tt.want {
			t.Errorf("BaseName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	str := &Primitive{P: String}
	tests := []struct {
		name string
		a, b TypeRef
		want bool
	}{
		{"same primitive", str, &Primitive{P: String}, true},
		{"different primitive", str, &Primitive{P: Integer}, false},
		{"primitive vs class", str, &ClassRef{Name: "demo.A"}, false},
		{"same class", &ClassRef{Name: "demo.A"}, &ClassRef{Name: "demo.A"}, true},
		{"different class", &ClassRef{Name: "demo.A"}, &ClassRef{Name: "demo.B"}, false},
		{
			"same class arguments",
			&ClassRef{Name: "demo.Pair", Arguments: []TypeRef{str, &Primitive{P: Integer}}},
			&ClassRef{Name: "demo.Pair", Arguments: []TypeRef{&Primitive{P: String}, &Primitive{P: Integer}}},
			true,
		},
		{
			"argument count mismatch",
			&ClassRef{Name: "demo.Pair", Arguments: []TypeRef{str}},
			&ClassRef{Name: "demo.Pair"},
			false,
		},
		{"same param", &ParamRef{Name: "T"}, &ParamRef{Name: "T"}, true},
		{"different param", &ParamRef{Name: "T"}, &ParamRef{Name: "U"}, false},
		{"same array", &ArrayRef{Element: str}, &ArrayRef{Element: &Primitive{P: String}}, true},
		{"array vs set", &ArrayRef{Element: str}, &SetRef{Element: str}, false},
		{
			"same map",
			&MapRef{Key: str, Value: &Primitive{P: Integer}},
			&MapRef{Key: &Primitive{P: String}, Value: &Primitive{P: Integer}},
			true,
		},
		{
			"map value mismatch",
			&MapRef{Key: str, Value: str},
			&MapRef{Key: str, Value: &Primitive{P: Integer}},
			false,
		},
		{"same nullable", &Nullable{Inner: str}, &Nullable{Inner: &Primitive{P: String}}, true},
		{"nullable vs bare", &Nullable{Inner: str}, str, false},
		{"both nil", nil, nil, true},
		{"nil vs value", nil, str, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func testDescriber(classes ...*Class) Describer {
	m := make(map[string]*Class, len(classes))
	for _, c := range classes {
		m[c.Name] = c
	}
	return DescriberFunc(func(name string) (*Class, error) {
		return m[name], nil
	})
}

func TestIsSubtype(t *testing.T) {
	base := &Class{Name: "demo.Base"}
	mid := &Class{Name: "demo.Mid", Supertypes: []TypeRef{&ClassRef{Name: "demo.Base"}}}
	leaf := &Class{Name: "demo.Leaf", Supertypes: []TypeRef{&ClassRef{Name: "demo.Mid"}}}
	other := &Class{Name: "demo.Other"}
	d := testDescriber(base, mid, leaf, other)

	tests := []struct {
		cls    *Class
		anchor string
		want   bool
	}{
		{base, "demo.Base", true},
		{mid, "demo.Base", true},
		{leaf, "demo.Base", true},
		{leaf, "demo.Mid", true},
		{other, "demo.Base", false},
		{base, "demo.Leaf", false},
		{nil, "demo.Base", false},
	}
	for _, tt := range tests {
		if got := IsSubtype(tt.cls, tt.anchor, d); got != tt.want {
			name := "<nil>"
			if tt.cls != nil {
				name = tt.cls.Name
			}
			t.Errorf("IsSubtype(%s, %q) = %v, want %v", name, tt.anchor, got, tt.want)
		}
	}
}

func TestIsSubtypeCyclicGraph(t *testing.T) {
	a := &Class{Name: "demo.A", Supertypes: []TypeRef{&ClassRef{Name: "demo.B"}}}
	b := &Class{Name: "demo.B", Supertypes: []TypeRef{&ClassRef{Name: "demo.A"}}}
	d := testDescriber(a, b)

	if IsSubtype(a, "demo.Missing", d) {
		t.Error("expected cyclic walk to terminate with false")
	}
	if !IsSubtype(a, "demo.B", d) {
		t.Error("expected demo.A to be a subtype of demo.B")
	}
}
