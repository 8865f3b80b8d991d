// Package gosource extracts class descriptors from Go packages.
//
// It is the descriptor-extraction collaborator in front of the generation
// engine: all introspection happens here, the engine only consumes the
// immutable descriptors. Extraction rules:
//
//   - exported struct types become struct classes; embedded structs become
//     supertypes; pointer fields become nullable references
//   - exported named string types with const values become enum classes
//   - json tags drive property naming; `json:"-"` fields stay non-public
//   - doc comments are carried onto classes and properties
package gosource

import (
	"go/ast"
	"go/constant"
	"go/types"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/teranos/declgen/descriptor"
	"github.com/teranos/declgen/errors"
	"github.com/teranos/declgen/logger"
)

// Registry holds extracted descriptors and implements descriptor.Describer.
type Registry struct {
	classes map[string]*descriptor.Class
	roots   []string
}

// DescribeClass returns the descriptor for a qualified class name. Unknown
// classes are a hard error; the engine cannot traverse past them.
func (r *Registry) DescribeClass(name string) (*descriptor.Class, error) {
	cls, ok := r.classes[name]
	if !ok {
		return nil, errors.Newf("no descriptor extracted for class %s", name)
	}
	return cls, nil
}

// Roots returns the qualified names of all classes declared directly in
// the loaded packages, sorted.
func (r *Registry) Roots() []string {
	return r.roots
}

// Load loads the Go packages matching the patterns and extracts
// descriptors for every exported type, plus every named type they
// reference. Loader and type-check failures abort extraction.
func Load(patterns ...string) (*Registry, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedTypes |
			packages.NeedSyntax | packages.NeedTypesInfo | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load packages")
	}
	for _, pkg := range pkgs {
		for _, pkgErr := range pkg.Errors {
			return nil, errors.Newf("package %s: %s", pkg.PkgPath, pkgErr.Msg)
		}
	}

	x := &extractor{
		classes:   make(map[string]*descriptor.Class),
		extracted: make(map[string]bool),
		docs:      collectDocs(pkgs),
	}

	var roots []string
	for _, pkg := range pkgs {
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			obj, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !obj.Exported() || obj.IsAlias() {
				continue
			}
			named, ok := obj.Type().(*types.Named)
			if !ok {
				continue
			}
			if x.extractNamed(named) {
				roots = append(roots, qualifiedName(obj))
			}
		}
	}

	// Conversion notes cross-package named references; extract them too so
	// the walker never dead-ends on a reachable class.
	for len(x.pending) > 0 {
		named := x.pending[0]
		x.pending = x.pending[1:]
		x.extractNamed(named)
	}

	sort.Strings(roots)
	logger.Logger.Debugw("extracted descriptors",
		"classes", len(x.classes), "roots", len(roots))
	return &Registry{classes: x.classes, roots: roots}, nil
}

type extractor struct {
	classes   map[string]*descriptor.Class
	extracted map[string]bool
	pending   []*types.Named
	docs      docIndex
}

// noteNamed queues a named type referenced during conversion for its own
// extraction pass.
func (x *extractor) noteNamed(named *types.Named) {
	if x.extracted[qualifiedName(named.Obj())] {
		return
	}
	x.pending = append(x.pending, named)
}

// extractNamed builds a class descriptor for a named type. Returns false
// for shapes that do not map to a class (non-struct, non-enum).
func (x *extractor) extractNamed(named *types.Named) bool {
	qname := qualifiedName(named.Obj())
	if x.extracted[qname] {
		return x.classes[qname] != nil
	}
	x.extracted[qname] = true

	switch u := named.Underlying().(type) {
	case *types.Struct:
		x.classes[qname] = x.extractStruct(qname, named, u)
		return true
	case *types.Basic:
		if u.Info()&types.IsString != 0 {
			if cls := x.extractEnum(qname, named); cls != nil {
				x.classes[qname] = cls
				return true
			}
		}
	}
	return false
}

func (x *extractor) extractStruct(qname string, named *types.Named, s *types.Struct) *descriptor.Class {
	cls := &descriptor.Class{
		Name:           qname,
		Kind:           descriptor.KindStruct,
		TypeParameters: x.convertTypeParams(named),
		Comment:        x.docs.typeComment(qname),
	}

	for i := 0; i < s.NumFields(); i++ {
		f := s.Field(i)
		if f.Embedded() {
			if ref, ok := x.convertType(f.Type()).(*descriptor.ClassRef); ok {
				cls.Supertypes = append(cls.Supertypes, ref)
				continue
			}
		}

		name, skip, optional := jsonName(s.Tag(i), f.Name())
		ref := x.convertType(f.Type())
		if optional {
			if _, nullable := ref.(*descriptor.Nullable); !nullable {
				ref = &descriptor.Nullable{Inner: ref}
			}
		}
		cls.Properties = append(cls.Properties, descriptor.Property{
			Name:    name,
			Type:    ref,
			Public:  f.Exported() && !skip,
			Comment: x.docs.fieldComment(qname, f.Name()),
		})
	}

	// Methods surface as callable properties; the emitter excludes them.
	for i := 0; i < named.NumMethods(); i++ {
		m := named.Method(i)
		cls.Properties = append(cls.Properties, descriptor.Property{
			Name:     m.Name(),
			Type:     &descriptor.Primitive{P: descriptor.Any},
			Public:   m.Exported(),
			Callable: true,
		})
	}
	return cls
}

// extractEnum collects the string constants declared with the named type
// as enum variants. A string type without constants is not an enum.
func (x *extractor) extractEnum(qname string, named *types.Named) *descriptor.Class {
	pkg := named.Obj().Pkg()
	if pkg == nil {
		return nil
	}
	var consts []*types.Const
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || !types.Identical(c.Type(), named) {
			continue
		}
		if c.Val().Kind() == constant.String {
			consts = append(consts, c)
		}
	}
	if len(consts) == 0 {
		return nil
	}
	// Scope names come back alphabetized; variants must keep declaration
	// order, so re-sort by source position.
	sort.Slice(consts, func(i, j int) bool { return consts[i].Pos() < consts[j].Pos() })
	variants := make([]string, len(consts))
	for i, c := range consts {
		variants[i] = constant.StringVal(c.Val())
	}
	return &descriptor.Class{
		Name:     qname,
		Kind:     descriptor.KindEnum,
		Variants: variants,
		Comment:  x.docs.typeComment(qname),
	}
}

// jsonName resolves the emitted property name from a struct tag.
func jsonName(tag, fieldName string) (name string, skip, optional bool) {
	name = fieldName
	jsonTag := reflect.StructTag(tag).Get("json")
	if jsonTag == "" {
		return name, false, false
	}
	parts := strings.Split(jsonTag, ",")
	if parts[0] == "-" && len(parts) == 1 {
		return name, true, false
	}
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			optional = true
		}
	}
	return name, false, optional
}

// docIndex maps qualified type names and their fields to doc comments.
type docIndex struct {
	typeDocs  map[string]string
	fieldDocs map[string]map[string]string
}

func (d docIndex) typeComment(qname string) string {
	return d.typeDocs[qname]
}

func (d docIndex) fieldComment(qname, field string) string {
	return d.fieldDocs[qname][field]
}

// collectDocs walks the loaded syntax trees and indexes type and field doc
// comments. Doc comments before a field win over inline comments after it.
func collectDocs(pkgs []*packages.Package) docIndex {
	docs := docIndex{
		typeDocs:  make(map[string]string),
		fieldDocs: make(map[string]map[string]string),
	}
	for _, pkg := range pkgs {
		pkgQual := strings.ReplaceAll(pkg.PkgPath, "/", ".")
		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				gen, ok := decl.(*ast.GenDecl)
				if !ok {
					continue
				}
				for _, spec := range gen.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					qname := pkgQual + "." + ts.Name.Name
					if doc := docText(ts.Doc); doc != "" {
						docs.typeDocs[qname] = doc
					} else if doc := docText(gen.Doc); doc != "" {
						docs.typeDocs[qname] = doc
					}
					if st, ok := ts.Type.(*ast.StructType); ok {
						docs.fieldDocs[qname] = fieldComments(st)
					}
				}
			}
		}
	}
	return docs
}

func fieldComments(st *ast.StructType) map[string]string {
	comments := make(map[string]string)
	for _, field := range st.Fields.List {
		text := docText(field.Doc)
		if text == "" && field.Comment != nil && len(field.Comment.List) > 0 {
			text = cleanCommentText(field.Comment.List[0].Text)
		}
		if text == "" {
			continue
		}
		for _, name := range field.Names {
			comments[name.Name] = text
		}
	}
	return comments
}

func docText(group *ast.CommentGroup) string {
	if group == nil {
		return ""
	}
	var lines []string
	for _, comment := range group.List {
		if text := cleanCommentText(comment.Text); text != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, " ")
}

// cleanCommentText removes comment markers and trims whitespace.
func cleanCommentText(text string) string {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	return strings.TrimSpace(text)
}
