package fileconf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Kind is the structural kind of a node in a value tree.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Scalar reports whether leaves of this kind accept overrides.
func (k Kind) Scalar() bool {
	return k == KindBool || k == KindNumber || k == KindString
}

// KindOf returns the kind of a value tree node. Trees are the shapes produced
// by encoding/json when decoding into an any: map[string]any, []any, string,
// json.Number or float64, bool and nil.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case json.Number, float64:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindInvalid
	}
}

// Tree converts cfg into a value tree by encoding it as JSON and decoding the
// result with UseNumber, so member names are the JSON names of cfg's fields
// and integers keep their full precision.
func Tree(cfg any) (any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", cfg, err)
	}
	return decodeTree(data)
}

func decodeTree(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	return tree, nil
}

// Slot addresses a single node inside a value tree so it can be replaced in
// place. A Slot is either the root itself or a member of an object.
type Slot struct {
	root   *any
	parent map[string]any
	key    string
}

// Value returns the node currently stored in the slot.
func (s Slot) Value() any {
	if s.parent != nil {
		return s.parent[s.key]
	}
	return *s.root
}

// Set replaces the node stored in the slot.
func (s Slot) Set(v any) {
	if s.parent != nil {
		s.parent[s.key] = v
		return
	}
	*s.root = v
}

// Resolve walks root along path and returns the slot at its end. An empty
// path resolves to the root. Every segment must name a member of an object;
// anything else (a missing member, or an array or scalar with segments left
// over) is reported as not found. Resolve never creates nodes.
func Resolve(root *any, path []string) (Slot, bool) {
	if root == nil {
		return Slot{}, false
	}
	if len(path) == 0 {
		return Slot{root: root}, true
	}

	obj, ok := (*root).(map[string]any)
	if !ok {
		return Slot{}, false
	}
	for i, seg := range path {
		next, exists := obj[seg]
		if !exists {
			return Slot{}, false
		}
		if i == len(path)-1 {
			return Slot{parent: obj, key: seg}, true
		}
		if obj, ok = next.(map[string]any); !ok {
			return Slot{}, false
		}
	}
	return Slot{}, false
}

// resolveFold walks root like Resolve but matches member names without
// regard to case. It returns the path as spelled in the tree.
func resolveFold(root any, path []string) ([]string, bool) {
	matched := make([]string, 0, len(path))
	node := root
	for _, seg := range path {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		keys := slices.Sorted(maps.Keys(obj))
		i := slices.IndexFunc(keys, func(key string) bool {
			return strings.EqualFold(key, seg)
		})
		if i < 0 {
			return nil, false
		}
		key := keys[i]
		matched = append(matched, key)
		node = obj[key]
	}
	if len(matched) == 0 {
		return nil, false
	}
	return matched, true
}
