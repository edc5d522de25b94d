package ir

import (
	"github.com/signadot/yamlir/ir/tag"
	"github.com/signadot/yamlir/resolve"
)

// Tag is a node's type identity. An explicit tag is resolved from the
// start; an implicit one carries the resolver that will decide it.
type Tag struct {
	name     tag.Name
	resolver resolve.Resolver
	resolved bool
	explicit bool
}

func ExplicitTag(name tag.Name) Tag {
	return Tag{name: name, resolved: true, explicit: true}
}

// ImplicitTag is an unresolved tag. A nil resolver means resolve.Default.
func ImplicitTag(r resolve.Resolver) Tag {
	return Tag{resolver: r}
}

func (t Tag) Resolved() bool { return t.resolved }
func (t Tag) Explicit() bool { return t.explicit }

// Name returns the tag name and panics if the tag is unresolved.
func (t Tag) Name() tag.Name {
	if !t.resolved {
		contractPanic("Tag.Name", "tag not resolved")
	}
	return t.name
}

// Resolver is the resolver an implicit tag was (or will be) resolved with.
func (t Tag) Resolver() resolve.Resolver {
	if t.resolver == nil {
		return resolve.Default
	}
	return t.resolver
}

// Equal compares two resolved tags by name. Comparing an unresolved tag
// is a contract violation and panics.
func (t Tag) Equal(o Tag) bool {
	if !t.resolved || !o.resolved {
		contractPanic("Tag.Equal", "comparison of unresolved tags")
	}
	return t.name == o.name
}

func (t Tag) String() string {
	if !t.resolved {
		return "?"
	}
	return t.name.Short()
}
