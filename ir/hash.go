package ir

import (
	"encoding/binary"
	"hash/maphash"
)

var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit structural hash of the node, consistent with
// Equal within one process. It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}
	var h maphash.Hash
	h.SetSeed(hashSeed)
	h.WriteByte(byte(n.Kind))

	var b [8]byte
	switch n.Kind {
	case ScalarKind:
		h.WriteString(string(n.Tag()))
		h.WriteByte(0)
		h.WriteString(n.Text)
	case SequenceKind:
		for _, v := range n.Items {
			binary.LittleEndian.PutUint64(b[:], v.Hash())
			h.Write(b[:])
		}
	case MappingKind:
		for i := range n.Pairs {
			binary.LittleEndian.PutUint64(b[:], n.Pairs[i].Key.Hash())
			h.Write(b[:])
			binary.LittleEndian.PutUint64(b[:], n.Pairs[i].Value.Hash())
			h.Write(b[:])
		}
	}
	return h.Sum64()
}
