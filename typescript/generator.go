package typescript

import (
	"sort"

	"github.com/teranos/declgen"
	"github.com/teranos/declgen/descriptor"
	"github.com/teranos/declgen/errors"
	"github.com/teranos/declgen/logger"
)

// Generator walks a class graph and emits one declaration per reachable
// class. It owns its visited set and output exclusively; create a new
// Generator per traversal and do not share one across goroutines.
type Generator struct {
	settings  Settings
	describer descriptor.Describer

	visited map[string]bool
	queued  map[string]bool
	pending []*descriptor.Class

	// current is the class whose declaration is being emitted; discovered
	// references are recorded as its direct dependencies.
	current string
	deps    map[string]map[string]bool

	// classes caches Describer results so a class is described once per
	// traversal.
	classes map[string]*descriptor.Class

	result *declgen.Result
}

// NewGenerator returns a Generator reading descriptors from d.
func NewGenerator(d descriptor.Describer, settings Settings) *Generator {
	return &Generator{
		settings:  settings,
		describer: d,
		visited:   make(map[string]bool),
		queued:    make(map[string]bool),
		deps:      make(map[string]map[string]bool),
		classes:   make(map[string]*descriptor.Class),
		result:    declgen.NewResult(),
	}
}

// Generate emits declarations for the given root classes and the
// transitive closure of classes they reference. Visiting the same roots
// again returns the same result; the visited set only grows, so traversal
// terminates even on cyclic graphs.
func (g *Generator) Generate(roots ...string) (*declgen.Result, error) {
	for _, root := range roots {
		cls, err := g.describe(root)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot describe root class %s", root)
		}
		g.enqueue(cls)
	}

	for len(g.pending) > 0 {
		cls := g.pending[0]
		g.pending = g.pending[1:]
		if err := g.visit(cls); err != nil {
			return nil, err
		}
	}

	for name, set := range g.deps {
		names := make([]string, 0, len(set))
		for dep := range set {
			names = append(names, dep)
		}
		sort.Strings(names)
		g.result.Dependencies[name] = names
	}
	return g.result, nil
}

// visit emits the declaration for one class on first sight. Idempotent:
// revisits and classes in the never-emit set are no-ops.
func (g *Generator) visit(cls *descriptor.Class) error {
	if g.visited[cls.Name] || g.settings.NeverEmit[cls.Name] {
		return nil
	}
	g.visited[cls.Name] = true
	logger.Logger.Debugw("emitting class", "class", cls.Name)

	g.current = cls.Name
	text, err := g.emitClass(cls)
	g.current = ""
	if err != nil {
		return errors.Wrapf(err, "cannot emit %s", cls.Name)
	}
	g.result.Definitions[cls.Name] = text
	return nil
}

// discover is the formatter's report channel: every class reference
// rendered while emitting the current class lands here, both as a direct
// dependency and as a traversal candidate.
func (g *Generator) discover(cls *descriptor.Class) {
	if g.settings.NeverEmit[cls.Name] {
		return
	}
	if g.current != "" && g.current != cls.Name {
		set, ok := g.deps[g.current]
		if !ok {
			set = make(map[string]bool)
			g.deps[g.current] = set
		}
		set[cls.Name] = true
	}
	g.enqueue(cls)
}

func (g *Generator) enqueue(cls *descriptor.Class) {
	if g.visited[cls.Name] || g.queued[cls.Name] {
		return
	}
	g.queued[cls.Name] = true
	g.pending = append(g.pending, cls)
}

// describe resolves a class through the Describer, caching per traversal.
// A Describer failure is a hard error: the engine cannot continue without
// the descriptor.
func (g *Generator) describe(name string) (*descriptor.Class, error) {
	if cls, ok := g.classes[name]; ok {
		return cls, nil
	}
	cls, err := g.describer.DescribeClass(name)
	if err != nil {
		return nil, err
	}
	if cls == nil {
		return nil, errors.Newf("describer returned no descriptor for %s", name)
	}
	g.classes[name] = cls
	return cls, nil
}
