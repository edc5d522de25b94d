package gomap

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// StructTagKey is the struct tag key read by this package.
const StructTagKey = "yaml"

// ParseStructTag parses a struct tag string and returns a map of key-value pairs.
// Handles comma-separated values: `yaml:"field=name,optional,omitempty"`
// Supports quoted values with spaces: `yaml:"field='a key'"`
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)
	if tag == "" {
		return result, nil
	}
	var parts []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false

	for i := 0; i < len(tag); i++ {
		char := tag[i]
		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			current.WriteByte(char)
		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			current.WriteByte(char)
		case char == ',' && !inSingleQuote && !inDoubleQuote:
			if part := strings.TrimSpace(current.String()); part != "" {
				parts = append(parts, part)
			}
			current.Reset()
		default:
			current.WriteByte(char)
		}
	}
	if inSingleQuote || inDoubleQuote {
		return nil, fmt.Errorf("invalid tag: unterminated quote in %q", tag)
	}
	if part := strings.TrimSpace(current.String()); part != "" {
		parts = append(parts, part)
	}

	for _, part := range parts {
		if idx := strings.Index(part, "="); idx >= 0 {
			key := strings.TrimSpace(part[:idx])
			value := strings.TrimSpace(part[idx+1:])
			if key == "" {
				return nil, fmt.Errorf("invalid tag: empty key in %q", part)
			}
			result[key] = unquoteValue(value)
		} else {
			// a flag
			result[part] = ""
		}
	}
	return result, nil
}

// unquoteValue removes surrounding single or double quotes from a value.
func unquoteValue(value string) string {
	if len(value) >= 2 {
		if (value[0] == '\'' && value[len(value)-1] == '\'') || (value[0] == '"' && value[len(value)-1] == '"') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

// fieldInfo describes one encodable struct field.
type fieldInfo struct {
	Name  string
	Index []int
	Type  reflect.Type
	// Rename is the field= value, empty if the key strategy applies.
	Rename    string
	Optional  bool
	OmitEmpty bool
}

func (f *fieldInfo) key(ks KeyStrategy) string {
	if f.Rename != "" {
		return f.Rename
	}
	return ks(f.Name)
}

var fieldCache sync.Map // reflect.Type -> []fieldInfo or error

type fieldsResult struct {
	fields []fieldInfo
	err    error
}

// structFields lists the exported fields of t, flattening embedded
// structs, in declaration order.
func structFields(t reflect.Type) ([]fieldInfo, error) {
	if r, ok := fieldCache.Load(t); ok {
		fr := r.(fieldsResult)
		return fr.fields, fr.err
	}
	var fields []fieldInfo
	err := collectFields(t, nil, &fields)
	fieldCache.Store(t, fieldsResult{fields: fields, err: err})
	return fields, err
}

func collectFields(t reflect.Type, index []int, out *[]fieldInfo) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		idx := append(append([]int(nil), index...), i)
		raw, hasTag := f.Tag.Lookup(StructTagKey)
		if raw == "-" {
			continue
		}
		parsed, err := ParseStructTag(raw)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", t, f.Name, err)
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct && !hasFieldRename(parsed, hasTag) {
			if err := collectFields(f.Type, idx, out); err != nil {
				return err
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		_, optional := parsed["optional"]
		_, omitEmpty := parsed["omitempty"]
		*out = append(*out, fieldInfo{
			Name:      f.Name,
			Index:     idx,
			Type:      f.Type,
			Rename:    parsed["field"],
			Optional:  optional || nilable(f.Type.Kind()),
			OmitEmpty: omitEmpty,
		})
	}
	return nil
}

func hasFieldRename(parsed map[string]string, hasTag bool) bool {
	if !hasTag {
		return false
	}
	return parsed["field"] != ""
}

func nilable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	}
	return false
}

// declaresKey reports whether struct type t has a field keyed key under ks.
func declaresKey(t reflect.Type, ks KeyStrategy, key string) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	fields, err := structFields(t)
	if err != nil {
		return false
	}
	for i := range fields {
		if fields[i].key(ks) == key {
			return true
		}
	}
	return false
}
