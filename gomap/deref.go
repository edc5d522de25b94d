package gomap

import (
	"reflect"

	"github.com/signadot/yamlir/debug"
	"github.com/signadot/yamlir/ir"
)

// Dereferencer maps anchors to values already decoded in the current
// document.
//
// The decoder calls Dereference before decoding a node that carries an
// anchor it has already seen on that same node; a value assignable to
// the requested type is used as is. After a fresh decode it calls
// Register. EndDocument is called when a decode call finishes, and must
// drop every registration.
type Dereferencer interface {
	Dereference(a ir.Anchor, t reflect.Type) (reflect.Value, bool)
	Register(a ir.Anchor, v reflect.Value)
	EndDocument()
}

// AnchorCache is the reference Dereferencer: one value per anchor, the
// latest registration winning. It is not safe for concurrent use.
type AnchorCache struct {
	values map[ir.Anchor]reflect.Value
}

func NewAnchorCache() *AnchorCache {
	return &AnchorCache{values: map[ir.Anchor]reflect.Value{}}
}

func (c *AnchorCache) Dereference(a ir.Anchor, t reflect.Type) (reflect.Value, bool) {
	v, ok := c.values[a]
	if !ok || !v.Type().AssignableTo(t) {
		return reflect.Value{}, false
	}
	return v, true
}

// Register stores a copy of v, so later changes to the location v was
// read from do not show through.
func (c *AnchorCache) Register(a ir.Anchor, v reflect.Value) {
	cp := reflect.New(v.Type()).Elem()
	cp.Set(v)
	c.values[a] = cp
	if debug.Alias() {
		debug.Logf("deref", "register &%s as %s", a, v.Type())
	}
}

func (c *AnchorCache) EndDocument() {
	clear(c.values)
}

// Len reports the number of registered anchors.
func (c *AnchorCache) Len() int { return len(c.values) }
