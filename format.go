package fileconf

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DecodeFunc decodes data into v, which is always a non-nil pointer.
type DecodeFunc func(data []byte, v any) error

// Format is a configuration file format selected by file extension.
type Format struct {
	Name   string
	Decode DecodeFunc
}

var (
	formatsMu sync.RWMutex
	// registry of formats keyed by lower-case extension without the dot
	formats = make(map[string]Format)
)

// RegisterFormat makes a format available to Load for the given extensions.
// Extensions are matched case-insensitively, with or without a leading dot.
// Registering an extension again replaces the previous format.
// Call this in your init() or main() before Load.
func RegisterFormat(f Format, exts ...string) {
	formatsMu.Lock()
	defer formatsMu.Unlock()
	for _, ext := range exts {
		formats[normalizeExt(ext)] = f
	}
}

// FormatFor returns the format registered for the extension of path.
// Content is never inspected.
func FormatFor(path string) (Format, bool) {
	ext := normalizeExt(filepath.Ext(path))
	if ext == "" {
		return Format{}, false
	}
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	f, ok := formats[ext]
	return f, ok
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func init() {
	RegisterFormat(Format{Name: "json", Decode: json.Unmarshal}, "json")
	RegisterFormat(Format{Name: "toml", Decode: toml.Unmarshal}, "toml")
	RegisterFormat(Format{Name: "yaml", Decode: yaml.Unmarshal}, "yaml", "yml")
}
