package gomap

import (
	"github.com/signadot/yamlir/ir"
	"github.com/signadot/yamlir/ir/tag"
)

// Reserved keys. A struct that declares a field under one of these keys
// receives the mapping's value for that key like any other field, and
// the corresponding receiver interface is not called.
const (
	AnchorKey = "yamlAnchor"
	TagKey    = "yamlTag"
)

// AnchorReceiver is implemented by decode targets that want the anchor
// of the node they were decoded from.
type AnchorReceiver interface {
	SetYAMLAnchor(ir.Anchor)
}

// TagReceiver is implemented by decode targets that want the explicit
// tag of the node they were decoded from.
type TagReceiver interface {
	SetYAMLTag(tag.Name)
}

// AnchorProvider is implemented by values that name their own anchor.
type AnchorProvider interface {
	YAMLAnchor() ir.Anchor
}

// TagProvider is implemented by values that carry an explicit tag.
type TagProvider interface {
	YAMLTag() tag.Name
}

// Unmarshaler is implemented by types that decode themselves through the
// Decoder containers.
type Unmarshaler interface {
	UnmarshalYAML(d *Decoder) error
}

// Marshaler is implemented by types that encode themselves through the
// Encoder containers.
type Marshaler interface {
	MarshalYAML(e *Encoder) error
}
