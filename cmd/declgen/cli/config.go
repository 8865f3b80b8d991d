package cli

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/teranos/declgen/errors"
	"github.com/teranos/declgen/typescript"
)

// fileSettings is the TOML settings file shape. Every field is optional;
// flags set explicitly on the command line win over the file.
type fileSettings struct {
	IntType             string            `toml:"int_type"`
	VoidType            string            `toml:"void_type"`
	Prefix              string            `toml:"prefix"`
	EnumAsConst         bool              `toml:"enum_as_const"`
	NativeSets          bool              `toml:"native_sets"`
	Export              bool              `toml:"export"`
	DedupOverrides      bool              `toml:"dedup_overrides"`
	MapTypes            map[string]string `toml:"map_types"`
	RenameTypes         map[string]string `toml:"rename_types"`
	IgnoredSuperclasses []string          `toml:"ignored_superclasses"`
	NeverEmit           []string          `toml:"never_emit"`
	Roots               []string          `toml:"roots"`
}

// buildSettings merges defaults, the optional TOML file, and command-line
// flags into the generator settings plus the configured roots.
func buildSettings(cmd *cobra.Command) (typescript.Settings, []string, error) {
	settings := typescript.DefaultSettings()
	var roots []string

	if flagConfig != "" {
		var fs fileSettings
		if _, err := toml.DecodeFile(flagConfig, &fs); err != nil {
			return settings, nil, errors.Wrapf(err, "failed to read config %s", flagConfig)
		}
		if fs.IntType != "" {
			settings.IntType = fs.IntType
		}
		if fs.VoidType != "" {
			settings.VoidType = fs.VoidType
		}
		settings.InterfacePrefix = fs.Prefix
		settings.EnumAsConst = fs.EnumAsConst
		settings.UseNativeSets = fs.NativeSets
		settings.Export = fs.Export
		settings.DedupOverrides = fs.DedupOverrides
		settings.MapTypes = fs.MapTypes
		settings.RenameTypes = fs.RenameTypes
		settings.IgnoredSuperclasses = toSet(fs.IgnoredSuperclasses)
		settings.NeverEmit = toSet(fs.NeverEmit)
		roots = fs.Roots
	}

	flags := cmd.Flags()
	if flags.Changed("int-type") {
		settings.IntType = flagIntType
	}
	if flags.Changed("void-type") {
		settings.VoidType = flagVoidType
	}
	if flags.Changed("prefix") {
		settings.InterfacePrefix = flagPrefix
	}
	if flags.Changed("enum-const") {
		settings.EnumAsConst = flagEnumConst
	}
	if flags.Changed("native-sets") {
		settings.UseNativeSets = flagNativeSets
	}
	if flags.Changed("export") {
		settings.Export = flagExport
	}
	if len(flagRoots) > 0 {
		roots = flagRoots
	}

	if settings.VoidType != typescript.VoidNull && settings.VoidType != typescript.VoidUndefined {
		return settings, nil, errors.Newf("invalid void type %q (supported: %s, %s)",
			settings.VoidType, typescript.VoidNull, typescript.VoidUndefined)
	}
	return settings, roots, nil
}

func toSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
