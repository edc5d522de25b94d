// Package represent turns Go values into ir.Node trees, the inverse of
// package construct.
//
// Scalars get an explicit tag and canonical text: floats use the
// shortest text that parses back to the same bits, and strings that
// would otherwise resolve to another type are single quoted. Go maps are
// emitted with keys in ir.Compare order so output does not depend on map
// iteration order.
package represent

import (
	"encoding/base64"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/signadot/yamlir/construct"
	"github.com/signadot/yamlir/ir"
	"github.com/signadot/yamlir/ir/tag"
	"github.com/signadot/yamlir/resolve"
)

// Representable is implemented by values that build their own node.
type Representable interface {
	RepresentYAML(r *Representer) (*ir.Node, error)
}

// Representer is stateless and safe for concurrent use.
type Representer struct {
	// Resolver decides which strings need quoting; nil means
	// resolve.Default.
	Resolver resolve.Resolver
}

// Default uses resolve.Default.
var Default = &Representer{}

// Represent builds the node for v with the Default representer.
func Represent(v any) (*ir.Node, error) {
	return Default.Represent(v)
}

func (r *Representer) resolver() resolve.Resolver {
	if r.Resolver == nil {
		return resolve.Default
	}
	return r.Resolver
}

func (r *Representer) Represent(v any) (*ir.Node, error) {
	if v == nil {
		return NullNode(), nil
	}
	return r.Value(reflect.ValueOf(v))
}

// Value is Represent for a reflect.Value.
func (r *Representer) Value(v reflect.Value) (*ir.Node, error) {
	if !v.IsValid() {
		return NullNode(), nil
	}
	if v.CanInterface() {
		switch x := v.Interface().(type) {
		case *ir.Node:
			if x == nil {
				return NullNode(), nil
			}
			return x, nil
		case Representable:
			if v.Kind() == reflect.Pointer && v.IsNil() {
				return NullNode(), nil
			}
			return x.RepresentYAML(r)
		case time.Time:
			return Timestamp(x), nil
		case []byte:
			if x == nil {
				return NullNode(), nil
			}
			return Binary(x), nil
		case construct.OrderedMap:
			return r.pairList(tag.OMap, x)
		case construct.Pairs:
			return r.pairList(tag.Pairs, x)
		case construct.Set:
			return r.set(x), nil
		}
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return NullNode(), nil
		}
		return r.Value(v.Elem())
	case reflect.Bool:
		return Bool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(v.Uint()), nil
	case reflect.Float32:
		return float(v.Float(), 32), nil
	case reflect.Float64:
		return float(v.Float(), 64), nil
	case reflect.String:
		return r.String(v.String()), nil
	case reflect.Slice:
		if v.IsNil() {
			return NullNode(), nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return Binary(v.Bytes()), nil
		}
		return r.seq(v)
	case reflect.Array:
		return r.seq(v)
	case reflect.Map:
		if v.IsNil() {
			return NullNode(), nil
		}
		return r.mapping(v)
	}
	return nil, &UnsupportedError{Type: v.Type()}
}

// UnsupportedError reports a Go value with no YAML representation.
type UnsupportedError struct {
	Type reflect.Type
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("cannot represent value of type %s", e.Type)
}

func NullNode() *ir.Node {
	return ir.NewTaggedScalar("null", tag.Null, ir.PlainStyle)
}

func Bool(b bool) *ir.Node {
	return ir.NewTaggedScalar(strconv.FormatBool(b), tag.Bool, ir.PlainStyle)
}

func Int(i int64) *ir.Node {
	return ir.NewTaggedScalar(strconv.FormatInt(i, 10), tag.Int, ir.PlainStyle)
}

func Uint(u uint64) *ir.Node {
	return ir.NewTaggedScalar(strconv.FormatUint(u, 10), tag.Int, ir.PlainStyle)
}

func Float(f float64) *ir.Node {
	return float(f, 64)
}

// FormatFloat returns the canonical text of f: the shortest decimal that
// parses back to f, always with a '.' or an exponent, or one of .inf,
// -.inf and .nan.
func FormatFloat(f float64, bitSize int) string {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	}
	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func float(f float64, bitSize int) *ir.Node {
	return ir.NewTaggedScalar(FormatFloat(f, bitSize), tag.Float, ir.PlainStyle)
}

// String represents s as a str scalar, single quoted when the resolver
// would read its plain text as something else.
func (r *Representer) String(s string) *ir.Node {
	style := ir.PlainStyle
	if r.resolver().ResolveScalar(s) != tag.Str {
		style = ir.SingleQuotedStyle
	}
	return ir.NewTaggedScalar(s, tag.Str, style)
}

func Binary(b []byte) *ir.Node {
	return ir.NewTaggedScalar(base64.StdEncoding.EncodeToString(b), tag.Binary, ir.PlainStyle)
}

func Timestamp(t time.Time) *ir.Node {
	return ir.NewTaggedScalar(t.Format(time.RFC3339Nano), tag.Timestamp, ir.PlainStyle)
}

func (r *Representer) seq(v reflect.Value) (*ir.Node, error) {
	items := make([]*ir.Node, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		n, err := r.Value(v.Index(i))
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		items = append(items, n)
	}
	return ir.NewSequence(items...).WithTag(tag.Seq), nil
}

func (r *Representer) mapping(v reflect.Value) (*ir.Node, error) {
	pairs := make([]ir.NodePair, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		k, err := r.Value(iter.Key())
		if err != nil {
			return nil, fmt.Errorf("key %v: %w", iter.Key(), err)
		}
		val, err := r.Value(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("%v: %w", iter.Key(), err)
		}
		pairs = append(pairs, ir.NewPair(k, val))
	}
	SortPairs(pairs)
	return ir.NewMapping(pairs...).WithTag(tag.Map), nil
}

// SortPairs orders pairs by key with ir.Compare, keeping the original
// order of equal keys.
func SortPairs(pairs []ir.NodePair) {
	slices.SortStableFunc(pairs, func(a, b ir.NodePair) int {
		return ir.Compare(a.Key, b.Key)
	})
}

func (r *Representer) pairList(name tag.Name, ps []ir.Pair[any, any]) (*ir.Node, error) {
	items := make([]*ir.Node, 0, len(ps))
	for i := range ps {
		k, err := r.Represent(ps[i].Key)
		if err != nil {
			return nil, fmt.Errorf("[%d] key: %w", i, err)
		}
		v, err := r.Represent(ps[i].Value)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		items = append(items, ir.NewMapping(ir.NewPair(k, v)).WithTag(tag.Map))
	}
	return ir.NewSequence(items...).WithTag(name), nil
}

func (r *Representer) set(s construct.Set) *ir.Node {
	pairs := make([]ir.NodePair, 0, len(s))
	for k := range s {
		pairs = append(pairs, ir.NewPair(r.String(k), NullNode()))
	}
	SortPairs(pairs)
	return ir.NewMapping(pairs...).WithTag(tag.Set)
}
