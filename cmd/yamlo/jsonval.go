package main

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/signadot/yamlir/construct"
	"github.com/signadot/yamlir/encode"
	"github.com/signadot/yamlir/ir"
	"github.com/signadot/yamlir/represent"
)

// jsonValue converts a constructed value into one encoding/json and
// expr can work with. Mappings get string keys, ordered maps and pairs
// become lists of single entry objects, sets become sorted lists and
// non-finite floats become their YAML text.
func jsonValue(v any) any {
	switch x := v.(type) {
	case map[any]any:
		res := make(map[string]any, len(x))
		for k, val := range x {
			res[jsonKey(k)] = jsonValue(val)
		}
		return res
	case []any:
		res := make([]any, len(x))
		for i := range x {
			res[i] = jsonValue(x[i])
		}
		return res
	case construct.OrderedMap:
		return pairList(x)
	case construct.Pairs:
		return pairList(x)
	case construct.Set:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return keys
	case float64:
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return represent.FormatFloat(x, 64)
		}
	}
	return v
}

func pairList(ps []ir.Pair[any, any]) []any {
	res := make([]any, len(ps))
	for i := range ps {
		res[i] = map[string]any{jsonKey(ps[i].Key): jsonValue(ps[i].Value)}
	}
	return res
}

// jsonKey renders a mapping key as an object key. Collection keys are
// written as YAML text.
func jsonKey(k any) string {
	switch x := k.(type) {
	case string:
		return x
	case nil:
		return "null"
	case *ir.Node:
		return encode.MustString(x)
	}
	return fmt.Sprint(k)
}

// toJSON constructs n and marshals its value as JSON.
func toJSON(n *ir.Node) ([]byte, error) {
	v, err := construct.Default.Value(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonValue(v))
}
