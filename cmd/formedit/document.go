package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml"

	"github.com/wippyai/formcodec/value"
)

type format int

const (
	formatYAML format = iota
	formatJSON
	formatTOML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".json":
		return formatJSON, nil
	case ".toml":
		return formatTOML, nil
	}
	return 0, fmt.Errorf("unknown document format %q (want .yaml, .yml, .json or .toml)", filepath.Ext(path))
}

func loadDocument(path string) (value.Value, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	doc, err := decodeDocument(data, f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return value.FromAny(doc)
}

// decodeDocument parses data keeping mapping key order. JSON goes through
// the YAML parser, which accepts it and preserves object order.
func decodeDocument(data []byte, f format) (any, error) {
	switch f {
	case formatTOML:
		tree, err := toml.LoadBytes(data)
		if err != nil {
			return nil, err
		}
		return fromTOML(tree), nil
	default:
		var doc any
		if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
			return nil, err
		}
		return fromYAML(doc), nil
	}
}

func fromYAML(x any) any {
	switch v := x.(type) {
	case yaml.MapSlice:
		obj := make(value.Object, 0, len(v))
		for _, it := range v {
			k, ok := it.Key.(string)
			if !ok {
				return fromYAMLMap(v)
			}
			obj = append(obj, value.Member{Key: k, Value: fromYAML(it.Value)})
		}
		return obj
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = fromYAML(e)
		}
		return out
	case time.Time:
		return v.Format(time.RFC3339)
	}
	return x
}

// fromYAMLMap handles mappings with non-string keys.
func fromYAMLMap(ms yaml.MapSlice) map[any]any {
	m := make(map[any]any, len(ms))
	for _, it := range ms {
		m[fromYAML(it.Key)] = fromYAML(it.Value)
	}
	return m
}

// fromTOML orders keys by their position in the source.
func fromTOML(tree *toml.Tree) value.Object {
	keys := tree.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		pi := tree.GetPositionPath([]string{keys[i]})
		pj := tree.GetPositionPath([]string{keys[j]})
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Col < pj.Col
	})

	obj := make(value.Object, 0, len(keys))
	for _, k := range keys {
		obj = append(obj, value.Member{Key: k, Value: fromTOMLValue(tree.GetPath([]string{k}))})
	}
	return obj
}

func fromTOMLValue(x any) any {
	switch v := x.(type) {
	case *toml.Tree:
		return fromTOML(v)
	case []*toml.Tree:
		out := make([]any, len(v))
		for i, t := range v {
			out[i] = fromTOML(t)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = fromTOMLValue(e)
		}
		return out
	case time.Time:
		return v.Format(time.RFC3339)
	case toml.LocalDate, toml.LocalDateTime, toml.LocalTime:
		return fmt.Sprint(v)
	}
	return x
}

func writeDocument(path string, doc any) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	data, err := encodeDocument(doc, f)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func encodeDocument(doc any, f format) ([]byte, error) {
	switch f {
	case formatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case formatTOML:
		m, ok := toTOML(doc).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("TOML documents must be tables, got %T", doc)
		}
		tree, err := toml.TreeFromMap(m)
		if err != nil {
			return nil, err
		}
		s, err := tree.ToTomlString()
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	default:
		return yaml.Marshal(toYAML(doc))
	}
}

func toYAML(x any) any {
	switch v := x.(type) {
	case value.Object:
		ms := make(yaml.MapSlice, len(v))
		for i, m := range v {
			ms[i] = yaml.MapItem{Key: m.Key, Value: toYAML(m.Value)}
		}
		return ms
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = toYAML(e)
		}
		return out
	}
	return x
}

// toTOML converts objects to maps. TOML has no null, so absent values are
// left out.
func toTOML(x any) any {
	switch v := x.(type) {
	case value.Object:
		m := make(map[string]any, len(v))
		for _, mem := range v {
			if mem.Value == nil {
				continue
			}
			m[mem.Key] = toTOML(mem.Value)
		}
		return m
	case []any:
		tables := make([]map[string]any, 0, len(v))
		for _, e := range v {
			t, ok := toTOML(e).(map[string]any)
			if !ok {
				break
			}
			tables = append(tables, t)
		}
		if len(v) > 0 && len(tables) == len(v) {
			return tables
		}
		out := make([]any, 0, len(v))
		for _, e := range v {
			if e != nil {
				out = append(out, toTOML(e))
			}
		}
		return out
	}
	return x
}
