package fileconf

import (
	"maps"
	"slices"
	"strings"
)

// FieldSetting describes one leaf of a configuration value as the override
// phase sees it.
type FieldSetting struct {
	Path      string // Dot-separated member path (e.g. "server.port")
	EnvVar    string // Variable that targets the leaf (e.g. "CONFIG_SERVER_PORT")
	Kind      Kind   // Kind of the leaf in the value tree
	Reachable bool   // Whether EnvVar actually resolves to this leaf
}

// Overridable reports whether an override can change the leaf.
func (s FieldSetting) Overridable() bool {
	return s.Reachable && s.Kind.Scalar()
}

// Settings returns every leaf of cfg's value tree, sorted by path. Objects are
// walked, everything else (including arrays and nulls) is a leaf. prefix is
// the variable prefix, DefaultPrefix when empty.
//
// A leaf is unreachable when a segment of its path contains an underscore or
// an upper-case letter: override keys are lower-cased and split on every
// underscore, so no variable name can produce that path.
func Settings(cfg any, prefix string) []FieldSetting {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	tree, err := Tree(cfg)
	if err != nil {
		return nil
	}
	obj, ok := tree.(map[string]any)
	if !ok {
		return nil
	}

	var settings []FieldSetting
	collectSettings(obj, nil, prefix, &settings)
	return settings
}

// collectSettings recursively walks objects and collects their leaves
func collectSettings(obj map[string]any, path []string, prefix string, settings *[]FieldSetting) {
	for _, key := range slices.Sorted(maps.Keys(obj)) {
		fieldPath := append(slices.Clip(path), key)
		if child, ok := obj[key].(map[string]any); ok && len(child) > 0 {
			collectSettings(child, fieldPath, prefix, settings)
			continue
		}

		*settings = append(*settings, FieldSetting{
			Path:      strings.Join(fieldPath, "."),
			EnvVar:    prefix + strings.ToUpper(strings.Join(fieldPath, "_")),
			Kind:      KindOf(obj[key]),
			Reachable: reachable(fieldPath),
		})
	}
}

func reachable(path []string) bool {
	for _, seg := range path {
		if seg == "" || strings.Contains(seg, "_") || strings.ToLower(seg) != seg {
			return false
		}
	}
	return true
}

// FilterSettings returns settings matching the given predicate function
func FilterSettings(settings []FieldSetting, predicate func(FieldSetting) bool) []FieldSetting {
	var filtered []FieldSetting
	for _, setting := range settings {
		if predicate(setting) {
			filtered = append(filtered, setting)
		}
	}
	return filtered
}

// OverridableFields returns the leaves an environment variable can change.
func OverridableFields(cfg any, prefix string) []FieldSetting {
	return FilterSettings(Settings(cfg, prefix), FieldSetting.Overridable)
}

// UnreachableFields returns the leaves no environment variable can reach
// because of how their names split.
func UnreachableFields(cfg any, prefix string) []FieldSetting {
	return FilterSettings(Settings(cfg, prefix), func(s FieldSetting) bool {
		return !s.Reachable
	})
}
