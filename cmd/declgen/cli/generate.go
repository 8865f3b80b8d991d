// Package cli wires the declgen command line.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/declgen"
	"github.com/teranos/declgen/errors"
	"github.com/teranos/declgen/gosource"
	"github.com/teranos/declgen/logger"
	"github.com/teranos/declgen/typescript"
)

var (
	flagOutput     string
	flagConfig     string
	flagModule     bool
	flagPrefix     string
	flagIntType    string
	flagVoidType   string
	flagEnumConst  bool
	flagNativeSets bool
	flagExport     bool
	flagRoots      []string
	flagJSONLogs   bool
	flagVerbose    bool
)

// RootCmd is the declgen command.
var RootCmd = &cobra.Command{
	Use:   "declgen [packages...]",
	Short: "Generate TypeScript declarations from Go types",
	Long: `Generate TypeScript interface and enum declarations from Go packages.

declgen loads the given Go packages, extracts structural descriptors for
their exported types, and emits one declaration per reachable class.

It handles:
  - Struct types → interfaces (embedded structs → extends clauses)
  - Named string types with consts → union types or enums
  - JSON tags for property naming
  - Pointer types and omitempty as nullable unions
  - Generic type parameters with bounds
  - Cross-class references, including cyclic ones

Examples:
  declgen ./...                              # All packages to stdout
  declgen -o types.ts ./api                  # Flat file
  declgen --module -o web/src/types ./...    # One file per class + index
  declgen --prefix I --void-type undefined ./api`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	RootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file (flat) or directory (module mode); default stdout")
	RootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "TOML settings file")
	RootCmd.Flags().BoolVarP(&flagModule, "module", "m", false, "Emit one unit per class with import lines")
	RootCmd.Flags().StringVar(&flagPrefix, "prefix", "", "Name prefix for non-enum classes (e.g. I)")
	RootCmd.Flags().StringVar(&flagIntType, "int-type", "number", "Token emitted for integer types")
	RootCmd.Flags().StringVar(&flagVoidType, "void-type", typescript.VoidNull, "Token for absent values: null or undefined")
	RootCmd.Flags().BoolVar(&flagEnumConst, "enum-const", false, "Emit enums as named enum constructs")
	RootCmd.Flags().BoolVar(&flagNativeSets, "native-sets", false, "Render sets as Set<T> instead of arrays")
	RootCmd.Flags().BoolVar(&flagExport, "export", false, "Prefix flat declarations with export")
	RootCmd.Flags().StringSliceVar(&flagRoots, "roots", nil, "Root classes (default: every exported type in the loaded packages)")
	RootCmd.Flags().BoolVar(&flagJSONLogs, "json-logs", false, "Structured JSON log output")
	RootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := logger.Initialize(flagJSONLogs, flagVerbose); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	settings, roots, err := buildSettings(cmd)
	if err != nil {
		return err
	}

	registry, err := gosource.Load(args...)
	if err != nil {
		return errors.Wrap(err, "failed to extract descriptors")
	}
	if len(roots) == 0 {
		roots = registry.Roots()
	}
	if len(roots) == 0 {
		return errors.New("no root classes found in the loaded packages")
	}

	gen := typescript.NewGenerator(registry, settings)
	result, err := gen.Generate(roots...)
	if err != nil {
		return errors.Wrap(err, "generation failed")
	}

	if flagModule {
		return writeUnits(gen, result)
	}
	return writeFlat(result)
}

func writeFlat(result *declgen.Result) error {
	text := strings.Join(result.Distinct(), "\n\n") + "\n"
	if flagOutput == "" {
		fmt.Print(text)
		return nil
	}
	if dir := filepath.Dir(flagOutput); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "failed to create output directory")
		}
	}
	if err := os.WriteFile(flagOutput, []byte(text), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", flagOutput)
	}
	fmt.Printf("✓ Generated %s (%d declarations)\n", flagOutput, len(result.Definitions))
	return nil
}

func writeUnits(gen *typescript.Generator, result *declgen.Result) error {
	if flagOutput == "" {
		return errors.New("--module requires --output to name the unit directory")
	}

	units, err := gen.Units(result)
	if err != nil {
		return errors.Wrap(err, "failed to render units")
	}
	for unitPath, text := range units {
		outPath := filepath.Join(flagOutput, unitPath+".ts")
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return errors.Wrap(err, "failed to create output directory")
		}
		if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
			return errors.Wrapf(err, "failed to write %s", outPath)
		}
	}

	indexPath := filepath.Join(flagOutput, "index.ts")
	if err := os.WriteFile(indexPath, []byte(gen.BarrelIndex(result)), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", indexPath)
	}
	fmt.Printf("✓ Generated %s (%d units)\n", flagOutput, len(units))
	return nil
}
