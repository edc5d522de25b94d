package construct

import (
	"fmt"

	"github.com/signadot/yamlir/ir"
	"github.com/signadot/yamlir/ir/tag"
)

// MergeError reports a merge key whose value is neither a mapping nor a
// sequence of mappings.
type MergeError struct {
	Kind ir.Kind
	Mark *ir.Mark
}

func (e *MergeError) Error() string {
	msg := fmt.Sprintf("merge value must be a mapping or a sequence of mappings, got %s", e.Kind)
	if e.Mark != nil {
		msg += " at " + e.Mark.String()
	}
	return msg
}

// Flatten returns the pairs of mapping n with merge keys expanded.
//
// Every pair whose key resolves to the merge tag is removed. Its value,
// a mapping or a sequence of mappings, is flattened recursively and its
// pairs are placed ahead of the local pairs, so that when the result is
// read last-wins the local keys override merged ones. Sequence entries
// are placed in reverse order so earlier entries override later ones.
// Keys resolving to the value tag (=) are replaced by copies tagged str.
func Flatten(n *ir.Node) ([]ir.NodePair, error) {
	return Default.flatten(n)
}

// Flatten is like the package-level Flatten but honors LenientMerge.
func (c *Constructor) Flatten(n *ir.Node) ([]ir.NodePair, error) {
	return c.flatten(n)
}

func (c *Constructor) flatten(n *ir.Node) ([]ir.NodePair, error) {
	pairs := n.Mapping()
	var merged, local []ir.NodePair
	for i := range pairs {
		p := pairs[i]
		switch p.Key.Tag() {
		case tag.Merge:
			mp, err := c.mergePairs(p.Value)
			if err != nil {
				return nil, err
			}
			merged = append(merged, mp...)
		case tag.Value:
			local = append(local, ir.NodePair{Key: p.Key.Retagged(tag.Str), Value: p.Value})
		default:
			local = append(local, p)
		}
	}
	if merged == nil {
		return local, nil
	}
	return append(merged, local...), nil
}

func (c *Constructor) mergePairs(v *ir.Node) ([]ir.NodePair, error) {
	switch v.Kind {
	case ir.MappingKind:
		return c.flatten(v)
	case ir.SequenceKind:
		var res []ir.NodePair
		for i := len(v.Items) - 1; i >= 0; i-- {
			item := v.Items[i]
			if item.Kind != ir.MappingKind {
				if c.lenient {
					continue
				}
				return nil, &MergeError{Kind: item.Kind, Mark: item.Mark}
			}
			sub, err := c.flatten(item)
			if err != nil {
				return nil, err
			}
			res = append(res, sub...)
		}
		return res, nil
	}
	if c.lenient {
		return nil, nil
	}
	return nil, &MergeError{Kind: v.Kind, Mark: v.Mark}
}
