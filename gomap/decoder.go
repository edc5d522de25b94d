package gomap

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"slices"
	"time"

	"github.com/signadot/yamlir/construct"
	"github.com/signadot/yamlir/debug"
	"github.com/signadot/yamlir/ir"
	"github.com/signadot/yamlir/ir/tag"
	"github.com/signadot/yamlir/parse"
)

var (
	nodeType            = reflect.TypeFor[*ir.Node]()
	timeType            = reflect.TypeFor[time.Time]()
	unmarshalerType     = reflect.TypeFor[Unmarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// Decode parses the first document of d and decodes it into v, which
// must be a non-nil pointer. An empty input decodes as null.
func Decode(d []byte, v any, opts ...DecodeOption) error {
	cfg := newDecodeConfig(opts)
	popts := cfg.parseOptions
	if cfg.resolver != nil {
		popts = append(slices.Clip(popts), parse.ParseResolver(cfg.resolver))
	}
	n, err := parse.Parse(d, popts...)
	if err != nil {
		return err
	}
	if n == nil {
		n = ir.Null()
	}
	return decodeNode(cfg, n, v)
}

// DecodeString is Decode for a string.
func DecodeString(s string, v any, opts ...DecodeOption) error {
	return Decode([]byte(s), v, opts...)
}

// DecodeNode decodes an already composed node into v.
func DecodeNode(n *ir.Node, v any, opts ...DecodeOption) error {
	return decodeNode(newDecodeConfig(opts), n, v)
}

func decodeNode(cfg *decodeConfig, n *ir.Node, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrInvalidTarget
	}
	st := &decodeState{
		cfg:     cfg,
		cctx:    cfg.ctor.NewContext(),
		anchors: map[ir.Anchor]*ir.Node{},
	}
	if cfg.deref != nil {
		defer cfg.deref.EndDocument()
	}
	return st.decode(n, rv.Elem(), nil)
}

// decodeState is the state of one decode call.
type decodeState struct {
	cfg *decodeConfig
	// cctx is shared by the whole call so that aliased nodes decoded into
	// untyped targets construct to the same Go map or slice.
	cctx *construct.Context
	// anchors maps each anchor to the node currently owning it.
	anchors map[ir.Anchor]*ir.Node
}

// Decoder gives Unmarshaler implementations access to the node being
// decoded through keyed, unkeyed and single value views.
type Decoder struct {
	st   *decodeState
	node *ir.Node
	path Path
}

func (d *Decoder) Node() *ir.Node        { return d.node }
func (d *Decoder) Path() Path            { return d.path }
func (d *Decoder) UserInfo() map[any]any { return d.st.cfg.userInfo }

// Decode decodes the node into v with the reflective rules. Calling it
// from UnmarshalYAML with the receiver itself recurses forever.
func (d *Decoder) Decode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrInvalidTarget
	}
	return d.st.decode(d.node, rv.Elem(), d.path)
}

// Keyed views the node as a mapping, with merge keys flattened.
func (d *Decoder) Keyed() (*KeyedDecoder, error) {
	if !d.node.IsMapping() {
		return nil, mismatch(d.path, "mapping", d.node)
	}
	pairs, err := d.st.cfg.ctor.Flatten(d.node)
	if err != nil {
		return nil, &DataCorruptedError{Path: d.path, Mark: d.node.Mark, Err: err}
	}
	return &KeyedDecoder{d: d, pairs: pairs}, nil
}

// Unkeyed views the node as a sequence.
func (d *Decoder) Unkeyed() (*UnkeyedDecoder, error) {
	if !d.node.IsSequence() {
		return nil, mismatch(d.path, "sequence", d.node)
	}
	return &UnkeyedDecoder{d: d, items: d.node.Items}, nil
}

// Single views the node as a scalar.
func (d *Decoder) Single() (*SingleDecoder, error) {
	if !d.node.IsScalar() {
		return nil, mismatch(d.path, "scalar", d.node)
	}
	return &SingleDecoder{d: d}, nil
}

// KeyedDecoder reads mapping entries by key. When a key occurs more than
// once the last occurrence wins.
type KeyedDecoder struct {
	d     *Decoder
	pairs []ir.NodePair
}

func (k *KeyedDecoder) Path() Path { return k.d.path }

// Keys lists the distinct scalar keys in the order of first occurrence.
func (k *KeyedDecoder) Keys() []string {
	seen := map[string]bool{}
	var res []string
	for i := range k.pairs {
		key := k.pairs[i].Key
		if !key.IsScalar() || seen[key.Text] {
			continue
		}
		seen[key.Text] = true
		res = append(res, key.Text)
	}
	return res
}

func (k *KeyedDecoder) lookup(key string) *ir.Node {
	for i := len(k.pairs) - 1; i >= 0; i-- {
		p := &k.pairs[i]
		if p.Key.IsScalar() && p.Key.Text == key {
			return p.Value
		}
	}
	return nil
}

func (k *KeyedDecoder) Contains(key string) bool {
	return k.lookup(key) != nil
}

// Decode decodes the value under key into v.
func (k *KeyedDecoder) Decode(key string, v any) error {
	ok, err := k.DecodeIfPresent(key, v)
	if err != nil {
		return err
	}
	if !ok {
		return &KeyNotFoundError{Path: k.d.path, Key: key, Mark: k.d.node.Mark}
	}
	return nil
}

// DecodeIfPresent is like Decode but reports a missing key as false.
func (k *KeyedDecoder) DecodeIfPresent(key string, v any) (bool, error) {
	n := k.lookup(key)
	if n == nil {
		return false, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false, ErrInvalidTarget
	}
	return true, k.d.st.decode(n, rv.Elem(), k.d.path.Key(key))
}

// Nested returns a Decoder for the value under key.
func (k *KeyedDecoder) Nested(key string) (*Decoder, error) {
	n := k.lookup(key)
	if n == nil {
		return nil, &KeyNotFoundError{Path: k.d.path, Key: key, Mark: k.d.node.Mark}
	}
	return &Decoder{st: k.d.st, node: n, path: k.d.path.Key(key)}, nil
}

// Anchor is the anchor of the mapping node, if any.
func (k *KeyedDecoder) Anchor() ir.Anchor { return k.d.node.Anchor }

// Tag is the explicit tag of the mapping node, if it has one.
func (k *KeyedDecoder) Tag() (tag.Name, bool) {
	if !k.d.node.HasExplicitTag() {
		return "", false
	}
	return k.d.node.Tag(), true
}

// UnkeyedDecoder reads sequence items in order.
type UnkeyedDecoder struct {
	d     *Decoder
	items []*ir.Node
	idx   int
}

func (u *UnkeyedDecoder) Len() int      { return len(u.items) }
func (u *UnkeyedDecoder) IsAtEnd() bool { return u.idx >= len(u.items) }

// Index is the index of the next item.
func (u *UnkeyedDecoder) Index() int { return u.idx }

// Decode decodes the next item into v.
func (u *UnkeyedDecoder) Decode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return ErrInvalidTarget
	}
	if u.IsAtEnd() {
		return &ValueNotFoundError{Path: u.d.path.Index(u.idx), Expected: rv.Elem().Type().String(), Mark: u.d.node.Mark}
	}
	i := u.idx
	u.idx++
	return u.d.st.decode(u.items[i], rv.Elem(), u.d.path.Index(i))
}

// Nested returns a Decoder for the next item.
func (u *UnkeyedDecoder) Nested() (*Decoder, error) {
	if u.IsAtEnd() {
		return nil, &ValueNotFoundError{Path: u.d.path.Index(u.idx), Expected: "value", Mark: u.d.node.Mark}
	}
	i := u.idx
	u.idx++
	return &Decoder{st: u.d.st, node: u.items[i], path: u.d.path.Index(i)}, nil
}

// SingleDecoder reads a scalar as a typed value.
type SingleDecoder struct {
	d *Decoder
}

func (s *SingleDecoder) IsNull() bool { return s.d.node.IsNull() }

// Value is the constructed value of the scalar.
func (s *SingleDecoder) Value() (any, error) {
	return s.d.st.scalarValue(s.d.node, s.d.path)
}

func (s *SingleDecoder) String() (string, error) {
	return s.d.node.Text, nil
}

func (s *SingleDecoder) Bool() (bool, error) {
	var b bool
	err := s.d.Decode(&b)
	return b, err
}

func (s *SingleDecoder) Int() (int64, error) {
	var i int64
	err := s.d.Decode(&i)
	return i, err
}

func (s *SingleDecoder) Uint() (uint64, error) {
	var u uint64
	err := s.d.Decode(&u)
	return u, err
}

func (s *SingleDecoder) Float() (float64, error) {
	var f float64
	err := s.d.Decode(&f)
	return f, err
}

// Decode decodes the scalar into v.
func (s *SingleDecoder) Decode(v any) error { return s.d.Decode(v) }

func mismatch(path Path, expected string, n *ir.Node) *TypeMismatchError {
	return &TypeMismatchError{Path: path, Expected: expected, Found: describe(n), Mark: n.Mark}
}

func describe(n *ir.Node) string {
	switch n.Kind {
	case ir.MappingKind:
		return "mapping"
	case ir.SequenceKind:
		return "sequence"
	}
	return "scalar " + n.Tag().Short()
}

// decode decodes n into the settable v, sharing values between aliases
// when a Dereferencer is configured.
func (st *decodeState) decode(n *ir.Node, v reflect.Value, path Path) error {
	if debug.Bridge() {
		debug.Logf("bridge", "decode %s into %s", path, v.Type())
	}
	deref := st.cfg.deref
	if deref == nil || n.Anchor == "" {
		return st.decodeFresh(n, v, path)
	}
	owner, seen := st.anchors[n.Anchor]
	if seen && owner == n {
		if dv, ok := deref.Dereference(n.Anchor, v.Type()); ok {
			v.Set(dv)
			return nil
		}
	}
	if err := st.decodeFresh(n, v, path); err != nil {
		return err
	}
	if !seen || owner != n {
		st.anchors[n.Anchor] = n
		deref.Register(n.Anchor, v)
	}
	return nil
}

func (st *decodeState) decodeFresh(n *ir.Node, v reflect.Value, path Path) error {
	if v.Type() == nodeType {
		v.Set(reflect.ValueOf(n))
		return nil
	}
	if v.Kind() == reflect.Pointer {
		if n.IsNull() {
			v.SetZero()
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		return st.decodeFresh(n, v.Elem(), path)
	}
	if err := st.decodeValue(n, v, path); err != nil {
		return err
	}
	st.receive(n, v)
	return nil
}

// receive passes the anchor and explicit tag of n to targets asking for
// them, unless the target declares a field under the reserved key.
func (st *decodeState) receive(n *ir.Node, v reflect.Value) {
	if !v.CanAddr() {
		return
	}
	pv := v.Addr().Interface()
	if r, ok := pv.(AnchorReceiver); ok && n.Anchor != "" && !declaresKey(v.Type(), st.cfg.keys, AnchorKey) {
		r.SetYAMLAnchor(n.Anchor)
	}
	if r, ok := pv.(TagReceiver); ok && n.HasExplicitTag() && !declaresKey(v.Type(), st.cfg.keys, TagKey) {
		r.SetYAMLTag(n.Tag())
	}
}

func (st *decodeState) decodeValue(n *ir.Node, v reflect.Value, path Path) error {
	if v.CanAddr() {
		pt := v.Addr().Type()
		if pt.Implements(unmarshalerType) {
			d := &Decoder{st: st, node: n, path: path}
			return v.Addr().Interface().(Unmarshaler).UnmarshalYAML(d)
		}
		if v.Type() != timeType && pt.Implements(textUnmarshalerType) {
			if !n.IsScalar() {
				return mismatch(path, "scalar", n)
			}
			if err := v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(n.Text)); err != nil {
				return &DataCorruptedError{Path: path, Mark: n.Mark, Err: err}
			}
			return nil
		}
	}
	if n.IsNull() {
		v.SetZero()
		return nil
	}
	if v.Type() == timeType {
		return st.decodeTime(n, v, path)
	}
	switch v.Kind() {
	case reflect.Interface:
		return st.decodeAny(n, v, path)
	case reflect.Bool:
		val, err := st.typedScalar(n, path, tag.Bool)
		if err != nil {
			return err
		}
		v.SetBool(val.(bool))
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return st.decodeInt(n, v, path)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return st.decodeUint(n, v, path)
	case reflect.Float32, reflect.Float64:
		return st.decodeFloat(n, v, path)
	case reflect.String:
		if !n.IsScalar() {
			return mismatch(path, "scalar", n)
		}
		v.SetString(n.Text)
		return nil
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 && n.IsScalar() {
			return st.decodeBytes(n, v, path)
		}
		return st.decodeSlice(n, v, path)
	case reflect.Array:
		return st.decodeArray(n, v, path)
	case reflect.Map:
		return st.decodeMap(n, v, path)
	case reflect.Struct:
		return st.decodeStruct(n, v, path)
	}
	return &TypeMismatchError{Path: path, Expected: v.Type().String(), Found: describe(n), Mark: n.Mark}
}

// scalarValue constructs the value of a scalar node.
func (st *decodeState) scalarValue(n *ir.Node, path Path) (any, error) {
	if !n.IsScalar() {
		return nil, mismatch(path, "scalar", n)
	}
	val, err := st.cfg.ctor.Value(n)
	if err != nil {
		return nil, &DataCorruptedError{Path: path, Mark: n.Mark, Err: err}
	}
	return val, nil
}

// typedScalar is scalarValue for a node that must resolve to want. A
// plain scalar whose tag was inferred is read with the grammar of want
// instead, so schemas that resolve less than the target kind accepts
// still decode. An explicit tag must match.
func (st *decodeState) typedScalar(n *ir.Node, path Path, want tag.Name) (any, error) {
	if !n.IsScalar() {
		return nil, mismatch(path, want.Short(), n)
	}
	if n.Tag() == want {
		return st.scalarValue(n, path)
	}
	if n.HasExplicitTag() || !n.ScalarStyle.IsPlain() {
		return nil, mismatch(path, want.Short(), n)
	}
	val, ok := leafValue(n.Text, want)
	if !ok {
		return nil, mismatch(path, want.Short(), n)
	}
	if debug.Bridge() {
		debug.Logf("bridge", "%s read %q as %s", path, n.Text, want.Short())
	}
	return val, nil
}

func leafValue(text string, want tag.Name) (any, bool) {
	switch want {
	case tag.Bool:
		return construct.ParseBool(text)
	case tag.Int:
		if i, ok := construct.ParseInt(text); ok {
			return i, true
		}
		return construct.ParseUint(text)
	case tag.Float:
		return construct.ParseFloat(text)
	}
	return nil, false
}

func outOfRange(path Path, n *ir.Node, v reflect.Value) *TypeMismatchError {
	return &TypeMismatchError{
		Path:     path,
		Expected: v.Type().String(),
		Found:    fmt.Sprintf("%s out of range", n.Text),
		Mark:     n.Mark,
	}
}

func (st *decodeState) decodeInt(n *ir.Node, v reflect.Value, path Path) error {
	val, err := st.typedScalar(n, path, tag.Int)
	if err != nil {
		return err
	}
	var i int64
	switch x := val.(type) {
	case int64:
		i = x
	case uint64:
		return outOfRange(path, n, v)
	}
	if v.OverflowInt(i) {
		return outOfRange(path, n, v)
	}
	v.SetInt(i)
	return nil
}

func (st *decodeState) decodeUint(n *ir.Node, v reflect.Value, path Path) error {
	val, err := st.typedScalar(n, path, tag.Int)
	if err != nil {
		return err
	}
	var u uint64
	switch x := val.(type) {
	case int64:
		if x < 0 {
			return outOfRange(path, n, v)
		}
		u = uint64(x)
	case uint64:
		u = x
	}
	if v.OverflowUint(u) {
		return outOfRange(path, n, v)
	}
	v.SetUint(u)
	return nil
}

// decodeFloat accepts !!float and !!int scalars. Infinities are kept, a
// finite value too large for the target is out of range.
func (st *decodeState) decodeFloat(n *ir.Node, v reflect.Value, path Path) error {
	want := tag.Float
	if n.IsScalar() && n.Tag() == tag.Int {
		want = tag.Int
	}
	val, err := st.typedScalar(n, path, want)
	if err != nil {
		return err
	}
	var f float64
	switch x := val.(type) {
	case float64:
		f = x
	case int64:
		f = float64(x)
	case uint64:
		f = float64(x)
	}
	if !math.IsInf(f, 0) && v.OverflowFloat(f) {
		return outOfRange(path, n, v)
	}
	v.SetFloat(f)
	return nil
}

func (st *decodeState) decodeTime(n *ir.Node, v reflect.Value, path Path) error {
	val, err := st.typedScalar(n, path, tag.Timestamp)
	if err != nil {
		return err
	}
	v.Set(reflect.ValueOf(val.(time.Time)))
	return nil
}

// decodeBytes reads !!binary as base64 and !!str as raw text.
func (st *decodeState) decodeBytes(n *ir.Node, v reflect.Value, path Path) error {
	switch n.Tag() {
	case tag.Binary:
		val, err := st.scalarValue(n, path)
		if err != nil {
			return err
		}
		v.SetBytes(val.([]byte))
	case tag.Str:
		v.SetBytes([]byte(n.Text))
	default:
		return mismatch(path, tag.Binary.Short(), n)
	}
	return nil
}

func (st *decodeState) decodeAny(n *ir.Node, v reflect.Value, path Path) error {
	if v.NumMethod() != 0 {
		return &TypeMismatchError{Path: path, Expected: v.Type().String(), Found: describe(n), Mark: n.Mark}
	}
	val, ok := st.cctx.Construct(n)
	if !ok {
		err := st.cctx.Err()
		if err == nil {
			err = &construct.NoValueError{Tag: n.Tag(), Text: n.Text, Mark: n.Mark}
		}
		return &DataCorruptedError{Path: path, Mark: n.Mark, Err: err}
	}
	if val == nil {
		v.SetZero()
		return nil
	}
	v.Set(reflect.ValueOf(val))
	return nil
}

func (st *decodeState) decodeSlice(n *ir.Node, v reflect.Value, path Path) error {
	if !n.IsSequence() {
		return mismatch(path, "sequence", n)
	}
	res := reflect.MakeSlice(v.Type(), len(n.Items), len(n.Items))
	for i, item := range n.Items {
		if err := st.decode(item, res.Index(i), path.Index(i)); err != nil {
			return err
		}
	}
	v.Set(res)
	return nil
}

func (st *decodeState) decodeArray(n *ir.Node, v reflect.Value, path Path) error {
	if !n.IsSequence() {
		return mismatch(path, "sequence", n)
	}
	if len(n.Items) > v.Len() {
		return &TypeMismatchError{
			Path:     path,
			Expected: fmt.Sprintf("sequence of at most %d items", v.Len()),
			Found:    fmt.Sprintf("sequence of %d items", len(n.Items)),
			Mark:     n.Mark,
		}
	}
	for i := 0; i < v.Len(); i++ {
		if i >= len(n.Items) {
			return &ValueNotFoundError{Path: path.Index(i), Expected: v.Type().Elem().String(), Mark: n.Mark}
		}
		if err := st.decode(n.Items[i], v.Index(i), path.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (st *decodeState) decodeMap(n *ir.Node, v reflect.Value, path Path) error {
	if !n.IsMapping() {
		return mismatch(path, "mapping", n)
	}
	pairs, err := st.cfg.ctor.Flatten(n)
	if err != nil {
		return &DataCorruptedError{Path: path, Mark: n.Mark, Err: err}
	}
	mt := v.Type()
	res := reflect.MakeMapWithSize(mt, len(pairs))
	for i := range pairs {
		p := &pairs[i]
		kp := path.Key(keyText(p.Key, i))
		kv := reflect.New(mt.Key()).Elem()
		if err := st.decode(p.Key, kv, kp); err != nil {
			return err
		}
		if kv.Kind() == reflect.Interface && !kv.IsNil() && !kv.Elem().Type().Comparable() {
			return &TypeMismatchError{Path: kp, Expected: "comparable key", Found: describe(p.Key), Mark: p.Key.Mark}
		}
		vv := reflect.New(mt.Elem()).Elem()
		if err := st.decode(p.Value, vv, kp); err != nil {
			return err
		}
		res.SetMapIndex(kv, vv)
	}
	v.Set(res)
	return nil
}

func keyText(k *ir.Node, i int) string {
	if k.IsScalar() {
		return k.Text
	}
	return fmt.Sprintf("{%d}", i)
}

func (st *decodeState) decodeStruct(n *ir.Node, v reflect.Value, path Path) error {
	fields, err := structFields(v.Type())
	if err != nil {
		return &DataCorruptedError{Path: path, Mark: n.Mark, Err: err}
	}
	d := &Decoder{st: st, node: n, path: path}
	kd, err := d.Keyed()
	if err != nil {
		return err
	}
	for i := range fields {
		f := &fields[i]
		key := f.key(st.cfg.keys)
		fn := kd.lookup(key)
		if fn == nil {
			if !f.Optional {
				return &KeyNotFoundError{Path: path, Key: key, Mark: n.Mark}
			}
			continue
		}
		if err := st.decode(fn, v.FieldByIndex(f.Index), path.Key(key)); err != nil {
			return err
		}
	}
	return nil
}
