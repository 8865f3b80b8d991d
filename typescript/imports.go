package typescript

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/teranos/declgen"
	"github.com/teranos/declgen/descriptor"
	"github.com/teranos/declgen/errors"
)

// UnitPath derives the output unit path for a class: the namespace path
// plus the class name, e.g. "pulse.async.Job" -> "pulse/async/Job".
func UnitPath(qualifiedName string) string {
	return strings.ReplaceAll(qualifiedName, ".", "/")
}

// Units partitions a generation result into one output unit per class.
// Each unit's text is its declaration prefixed by one import line per
// distinct directly-referenced class, pointing at that class's own unit.
// Returned map is keyed by unit path (no extension).
//
// Import specifiers and the barrel index key on rendered names, so two
// emitted classes rendering to the same name would collide; Units fails
// instead, pointing at Settings.RenameTypes.
func (g *Generator) Units(res *declgen.Result) (map[string]string, error) {
	if err := g.checkRenderedNames(res); err != nil {
		return nil, err
	}

	units := make(map[string]string, len(res.Definitions))
	for name, text := range res.Definitions {
		unitPath := UnitPath(name)

		var imports []string
		for _, dep := range res.Dependencies[name] {
			if _, emitted := res.Definitions[dep]; !emitted {
				continue
			}
			cls, err := g.describe(dep)
			if err != nil {
				return nil, errors.Wrapf(err, "cannot resolve import %s for %s", dep, name)
			}
			imports = append(imports, fmt.Sprintf("import { %s } from '%s';",
				g.renderName(cls), relativeImport(path.Dir(unitPath), UnitPath(dep))))
		}
		sort.Strings(imports)

		var sb strings.Builder
		for _, line := range imports {
			sb.WriteString(line + "\n")
		}
		if len(imports) > 0 {
			sb.WriteString("\n")
		}
		if !strings.HasPrefix(text, "export ") {
			sb.WriteString("export ")
		}
		sb.WriteString(text)
		sb.WriteString("\n")
		units[unitPath] = sb.String()
	}
	return units, nil
}

// checkRenderedNames rejects results where two emitted classes share a
// rendered name.
func (g *Generator) checkRenderedNames(res *declgen.Result) error {
	byRendered := make(map[string]string, len(res.Definitions))
	for _, name := range res.Names() {
		cls, err := g.describe(name)
		if err != nil {
			return errors.Wrapf(err, "cannot resolve unit %s", name)
		}
		rendered := g.renderName(cls)
		if prev, ok := byRendered[rendered]; ok {
			return errors.Newf("classes %s and %s both render as %s; set a rename to keep imports unambiguous",
				prev, name, rendered)
		}
		byRendered[rendered] = name
	}
	return nil
}

// BarrelIndex creates the barrel export re-exporting every unit, sorted by
// unit path for deterministic output.
func (g *Generator) BarrelIndex(res *declgen.Result) string {
	var sb strings.Builder
	sb.WriteString("/* eslint-disable */\n")
	sb.WriteString("// Auto-generated barrel export - re-exports all generated declarations\n\n")

	for _, name := range res.Names() {
		cls, err := g.describe(name)
		if err != nil {
			continue
		}
		// A named enum construct is a value export; everything else is
		// type-only.
		keyword := "export type"
		if g.settings.EnumAsConst && cls.Kind == descriptor.KindEnum {
			keyword = "export"
		}
		sb.WriteString(fmt.Sprintf("%s { %s } from './%s';\n",
			keyword, g.renderName(cls), UnitPath(name)))
	}
	return sb.String()
}

// relativeImport computes the import specifier from one unit directory to
// another unit path, using ./ for siblings and ../ to climb.
func relativeImport(fromDir, toPath string) string {
	var from []string
	if fromDir != "." && fromDir != "" {
		from = strings.Split(fromDir, "/")
	}
	to := strings.Split(toPath, "/")

	common := 0
	for common < len(from) && common < len(to)-1 && from[common] == to[common] {
		common++
	}

	var parts []string
	for range from[common:] {
		parts = append(parts, "..")
	}
	if len(parts) == 0 {
		parts = append(parts, ".")
	}
	parts = append(parts, to[common:]...)
	return strings.Join(parts, "/")
}
