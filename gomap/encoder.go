package gomap

import (
	"bytes"
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/signadot/yamlir/construct"
	"github.com/signadot/yamlir/debug"
	"github.com/signadot/yamlir/encode"
	"github.com/signadot/yamlir/ir"
	"github.com/signadot/yamlir/ir/tag"
	"github.com/signadot/yamlir/represent"
)

var (
	marshalerType     = reflect.TypeFor[Marshaler]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	representableType = reflect.TypeFor[represent.Representable]()
)

// Encode encodes v as one YAML document.
func Encode(v any, opts ...EncodeOption) ([]byte, error) {
	cfg := newEncodeConfig(opts)
	n, err := encodeNode(cfg, v)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if err := encode.Encode(n, buf, cfg.encodeOptions...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeString is Encode returning a string.
func EncodeString(v any, opts ...EncodeOption) (string, error) {
	d, err := Encode(v, opts...)
	if err != nil {
		return "", err
	}
	return string(d), nil
}

// EncodeNode builds the node for v without emitting it. Options
// forwarded to package encode are ignored.
func EncodeNode(v any, opts ...EncodeOption) (*ir.Node, error) {
	return encodeNode(newEncodeConfig(opts), v)
}

func encodeNode(cfg *encodeConfig, v any) (*ir.Node, error) {
	return newEncodeState(cfg, &represent.Representer{Resolver: cfg.resolver}).encode(reflect.ValueOf(v), nil)
}

func newEncodeState(cfg *encodeConfig, rep *represent.Representer) *encodeState {
	return &encodeState{
		cfg:     cfg,
		rep:     rep,
		emitted: map[ir.Anchor]*ir.Node{},
		active:  map[visit]bool{},
	}
}

// encodeState is the state of one encode call.
type encodeState struct {
	cfg *encodeConfig
	rep *represent.Representer
	// emitted holds the node written under each anchor in this call.
	emitted map[ir.Anchor]*ir.Node
	// active holds the references currently being encoded.
	active map[visit]bool
}

// visit identifies a pointer, map or slice by type and address.
type visit struct {
	typ reflect.Type
	ptr uintptr
	len int
}

func visitOf(v reflect.Value) (visit, bool) {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map:
		if v.IsNil() {
			return visit{}, false
		}
		return visit{typ: v.Type(), ptr: v.Pointer()}, true
	case reflect.Slice:
		if v.IsNil() || v.Len() == 0 {
			return visit{}, false
		}
		return visit{typ: v.Type(), ptr: v.Pointer(), len: v.Len()}, true
	}
	return visit{}, false
}

// withoutAliaser is a state that encodes like st but never aliases.
func (st *encodeState) withoutAliaser() *encodeState {
	cfg := *st.cfg
	cfg.aliaser = nil
	return newEncodeState(&cfg, st.rep)
}

// Encoder gives Marshaler implementations a keyed, unkeyed or single
// value view to build their node with. Only one view may be taken.
type Encoder struct {
	st     *encodeState
	path   Path
	keyed  *KeyedEncoder
	unkey  *UnkeyedEncoder
	single *SingleEncoder
	anchor ir.Anchor
	tag    tag.Name
}

func (e *Encoder) Path() Path            { return e.path }
func (e *Encoder) UserInfo() map[any]any { return e.st.cfg.userInfo }

// SetAnchor puts an anchor on the produced node.
func (e *Encoder) SetAnchor(a ir.Anchor) { e.anchor = a }

// SetTag gives the produced node an explicit tag.
func (e *Encoder) SetTag(t tag.Name) { e.tag = t }

func (e *Encoder) viewTaken(want string) error {
	if e.keyed == nil && e.unkey == nil && e.single == nil {
		return nil
	}
	return &MarshalError{Path: e.path, Message: "encoder view already taken, cannot take " + want}
}

// Keyed returns a mapping view.
func (e *Encoder) Keyed() (*KeyedEncoder, error) {
	if e.keyed != nil {
		return e.keyed, nil
	}
	if err := e.viewTaken("keyed"); err != nil {
		return nil, err
	}
	e.keyed = &KeyedEncoder{e: e}
	return e.keyed, nil
}

// Unkeyed returns a sequence view.
func (e *Encoder) Unkeyed() (*UnkeyedEncoder, error) {
	if e.unkey != nil {
		return e.unkey, nil
	}
	if err := e.viewTaken("unkeyed"); err != nil {
		return nil, err
	}
	e.unkey = &UnkeyedEncoder{e: e}
	return e.unkey, nil
}

// Single returns a single value view.
func (e *Encoder) Single() (*SingleEncoder, error) {
	if e.single != nil {
		return e.single, nil
	}
	if err := e.viewTaken("single"); err != nil {
		return nil, err
	}
	e.single = &SingleEncoder{e: e}
	return e.single, nil
}

// finish builds the node of the taken view, null if none was taken.
func (e *Encoder) finish() *ir.Node {
	var n *ir.Node
	switch {
	case e.keyed != nil:
		pairs := make([]ir.NodePair, 0, len(e.keyed.entries))
		for _, ent := range e.keyed.entries {
			pairs = append(pairs, ir.NewPair(e.st.rep.String(ent.key), ent.value()))
		}
		n = ir.NewMapping(pairs...).WithTag(tag.Map)
	case e.unkey != nil:
		items := make([]*ir.Node, 0, len(e.unkey.entries))
		for _, ent := range e.unkey.entries {
			items = append(items, ent.value())
		}
		n = ir.NewSequence(items...).WithTag(tag.Seq)
	case e.single != nil && e.single.node != nil:
		n = e.single.node
	default:
		n = represent.NullNode()
	}
	if e.anchor != "" {
		n.Anchor = e.anchor
	}
	if e.tag != "" {
		n.WithTag(e.tag)
	}
	return n
}

type entry struct {
	key    string
	node   *ir.Node
	nested *Encoder
}

func (ent *entry) value() *ir.Node {
	if ent.nested != nil {
		return ent.nested.finish()
	}
	return ent.node
}

// KeyedEncoder appends mapping entries in call order.
type KeyedEncoder struct {
	e       *Encoder
	entries []entry
}

func (k *KeyedEncoder) Encode(key string, v any) error {
	n, err := k.e.st.encode(reflect.ValueOf(v), k.e.path.Key(key))
	if err != nil {
		return err
	}
	k.entries = append(k.entries, entry{key: key, node: n})
	return nil
}

// Nested returns an Encoder for the value under key.
func (k *KeyedEncoder) Nested(key string) *Encoder {
	ne := &Encoder{st: k.e.st, path: k.e.path.Key(key)}
	k.entries = append(k.entries, entry{key: key, nested: ne})
	return ne
}

// UnkeyedEncoder appends sequence items in call order.
type UnkeyedEncoder struct {
	e       *Encoder
	entries []entry
}

func (u *UnkeyedEncoder) Len() int { return len(u.entries) }

func (u *UnkeyedEncoder) Encode(v any) error {
	n, err := u.e.st.encode(reflect.ValueOf(v), u.e.path.Index(len(u.entries)))
	if err != nil {
		return err
	}
	u.entries = append(u.entries, entry{node: n})
	return nil
}

func (u *UnkeyedEncoder) Nested() *Encoder {
	ne := &Encoder{st: u.e.st, path: u.e.path.Index(len(u.entries))}
	u.entries = append(u.entries, entry{nested: ne})
	return ne
}

// SingleEncoder holds one value.
type SingleEncoder struct {
	e    *Encoder
	node *ir.Node
}

func (s *SingleEncoder) Encode(v any) error {
	n, err := s.e.st.encode(reflect.ValueOf(v), s.e.path)
	if err != nil {
		return err
	}
	s.node = n
	return nil
}

func (s *SingleEncoder) EncodeNull() {
	s.node = represent.NullNode()
}

// encode builds the node for v, consulting the aliaser for composite
// values. A value reached again while it is still being encoded is
// written as an alias when the aliaser anchored it, and is an error
// otherwise.
func (st *encodeState) encode(v reflect.Value, path Path) (*ir.Node, error) {
	if v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return represent.NullNode(), nil
		}
		v = v.Elem()
	}
	var a Aliasing
	if al := st.cfg.aliaser; al != nil && composite(v) {
		a = al.Alias(v.Interface())
		if debug.Bridge() {
			debug.Logf("bridge", "encode %s %s %s", path, a.Op, a.Anchor)
		}
		if a.Op == AliasOp {
			if n, ok := st.emitted[a.Anchor]; ok {
				return n, nil
			}
			a.Op = AnchorOp
		}
	}
	if k, ok := visitOf(v); ok {
		if st.active[k] {
			return nil, &MarshalError{Path: path, Message: fmt.Sprintf("circular reference through %s", v.Type())}
		}
		st.active[k] = true
		defer delete(st.active, k)
	}
	if a.Op != AnchorOp {
		return st.encodeFresh(v, path)
	}
	// The anchored node is registered before its contents so a cycle
	// back to it finds it.
	anchored := &ir.Node{}
	st.emitted[a.Anchor] = anchored
	n, err := st.encodeFresh(v, path)
	if err != nil {
		delete(st.emitted, a.Anchor)
		return nil, err
	}
	*anchored = *n
	anchored.Anchor = a.Anchor
	return anchored, nil
}

// composite reports whether v is a value the aliaser decides on.
// Scalars, time.Time and text marshaled values never alias.
func composite(v reflect.Value) bool {
	if !v.IsValid() || !v.CanInterface() {
		return false
	}
	t := v.Type()
	if t == nodeType || t == timeType {
		return false
	}
	if t.Implements(marshalerType) {
		return !(v.Kind() == reflect.Pointer && v.IsNil())
	}
	if t.Implements(textMarshalerType) {
		return false
	}
	switch v.Kind() {
	case reflect.Struct, reflect.Array:
		return true
	case reflect.Map, reflect.Pointer:
		return !v.IsNil()
	case reflect.Slice:
		return !v.IsNil() && t.Elem().Kind() != reflect.Uint8
	}
	return false
}

func (st *encodeState) encodeFresh(v reflect.Value, path Path) (*ir.Node, error) {
	if !v.IsValid() {
		return represent.NullNode(), nil
	}
	n, err := st.encodeValue(v, path)
	if err != nil {
		return nil, err
	}
	if v.CanInterface() {
		if p, ok := v.Interface().(AnchorProvider); ok && !isNilPointer(v) {
			if a := p.YAMLAnchor(); a != "" {
				n.Anchor = a
			}
		}
		if p, ok := v.Interface().(TagProvider); ok && !isNilPointer(v) {
			if t := p.YAMLTag(); t != "" {
				n.WithTag(t)
			}
		}
	}
	return n, nil
}

func isNilPointer(v reflect.Value) bool {
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func (st *encodeState) encodeValue(v reflect.Value, path Path) (*ir.Node, error) {
	t := v.Type()
	if v.CanInterface() {
		if t == nodeType {
			if v.IsNil() {
				return represent.NullNode(), nil
			}
			return v.Interface().(*ir.Node), nil
		}
		if isNilPointer(v) {
			return represent.NullNode(), nil
		}
		m, ok := v.Interface().(Marshaler)
		if !ok && v.CanAddr() {
			m, ok = v.Addr().Interface().(Marshaler)
		}
		if ok {
			e := &Encoder{st: st, path: path}
			if err := m.MarshalYAML(e); err != nil {
				return nil, err
			}
			return e.finish(), nil
		}
		if t == timeType {
			return represent.Timestamp(v.Interface().(time.Time)), nil
		}
		if t.Implements(textMarshalerType) {
			text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
			if err != nil {
				return nil, &MarshalError{Path: path, Err: err}
			}
			return st.rep.String(string(text)), nil
		}
		if t.Implements(representableType) {
			n, err := v.Interface().(represent.Representable).RepresentYAML(st.rep)
			if err != nil {
				return nil, &MarshalError{Path: path, Err: err}
			}
			return n, nil
		}
		switch v.Interface().(type) {
		case construct.OrderedMap, construct.Pairs, construct.Set:
			return st.represent(v, path)
		}
	}
	switch v.Kind() {
	case reflect.Pointer:
		return st.encodeFresh(v.Elem(), path)
	case reflect.Interface:
		return st.encode(v, path)
	case reflect.Slice:
		if v.IsNil() {
			return represent.NullNode(), nil
		}
		if t.Elem().Kind() == reflect.Uint8 {
			return represent.Binary(v.Bytes()), nil
		}
		return st.encodeSeq(v, path)
	case reflect.Array:
		return st.encodeSeq(v, path)
	case reflect.Map:
		if v.IsNil() {
			return represent.NullNode(), nil
		}
		return st.encodeMap(v, path)
	case reflect.Struct:
		return st.encodeStruct(v, path)
	}
	return st.represent(v, path)
}

// represent hands leaf values to the representer.
func (st *encodeState) represent(v reflect.Value, path Path) (*ir.Node, error) {
	n, err := st.rep.Value(v)
	if err != nil {
		return nil, &MarshalError{Path: path, Message: fmt.Sprintf("cannot encode value of type %s", v.Type()), Err: err}
	}
	return n, nil
}

func (st *encodeState) encodeSeq(v reflect.Value, path Path) (*ir.Node, error) {
	items := make([]*ir.Node, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		n, err := st.encode(v.Index(i), path.Index(i))
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return ir.NewSequence(items...).WithTag(tag.Seq), nil
}

type mapEntry struct {
	key, val reflect.Value
	path     Path
	node     *ir.Node
}

// encodeMap writes entries in key order. Keys are ordered on their
// unaliased nodes, so the aliaser sees entries in the same order on
// every call.
func (st *encodeState) encodeMap(v reflect.Value, path Path) (*ir.Node, error) {
	sorter := st
	if st.cfg.aliaser != nil {
		sorter = st.withoutAliaser()
	}
	entries := make([]mapEntry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		e := mapEntry{key: iter.Key(), val: iter.Value(), path: path.Key(fmt.Sprint(iter.Key().Interface()))}
		k, err := sorter.encode(e.key, e.path)
		if err != nil {
			return nil, err
		}
		e.node = k
		entries = append(entries, e)
	}
	slices.SortStableFunc(entries, func(a, b mapEntry) int {
		return ir.Compare(a.node, b.node)
	})
	pairs := make([]ir.NodePair, 0, len(entries))
	for _, e := range entries {
		k := e.node
		if sorter != st {
			var err error
			if k, err = st.encode(e.key, e.path); err != nil {
				return nil, err
			}
		}
		val, err := st.encode(e.val, e.path)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ir.NewPair(k, val))
	}
	return ir.NewMapping(pairs...).WithTag(tag.Map), nil
}

func (st *encodeState) encodeStruct(v reflect.Value, path Path) (*ir.Node, error) {
	fields, err := structFields(v.Type())
	if err != nil {
		return nil, &MarshalError{Path: path, Err: err}
	}
	pairs := make([]ir.NodePair, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		fv := v.FieldByIndex(f.Index)
		if f.OmitEmpty && fv.IsZero() {
			continue
		}
		key := f.key(st.cfg.keys)
		n, err := st.encode(fv, path.Key(key))
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ir.NewPair(st.rep.String(key), n))
	}
	return ir.NewMapping(pairs...).WithTag(tag.Map), nil
}
