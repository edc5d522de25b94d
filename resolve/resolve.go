// Package resolve decides the implicit tag of plain scalars.
//
// Three schemas are provided, in increasing order of how much they infer:
//
//   - Failsafe: every scalar is a str.
//   - JSON: exact JSON literals only (null, true, false, -?[0-9]+, decimals,
//     and the .inf/-.inf/.nan tokens).
//   - Core: the default. Case variants of null and bool, 0o/0x integers,
//     signed .inf/.nan floats, plus the YAML 1.1 merge (<<), value (=) and
//     timestamp types.
//
// Resolvers only see the text of plain scalars. Quoted and block scalars
// always resolve to str and collections to map or seq; that part of the
// decision belongs to the node model (see ir.Node.Tag).
//
// A Resolver must be pure: the same text always yields the same tag, with
// no dependence on earlier calls. Every resolver in this package is
// immutable and safe for concurrent use.
package resolve

import (
	"fmt"

	"github.com/grafana/regexp"

	"github.com/signadot/yamlir/ir/tag"
)

// Resolver resolves the implicit tag of a plain scalar.
type Resolver interface {
	ResolveScalar(text string) tag.Name
}

// Rule maps scalars matching Pattern to Tag.
type Rule struct {
	Tag     tag.Name
	Pattern *regexp.Regexp
}

// Schema is a Resolver made of ordered rules; the first matching rule wins
// and unmatched scalars are str.
type Schema struct {
	name  string
	rules []Rule
}

// NewSchema builds a schema from rules, tried in order.
func NewSchema(name string, rules ...Rule) *Schema {
	return &Schema{name: name, rules: append([]Rule(nil), rules...)}
}

func (s *Schema) Name() string { return s.name }

// Rules returns a copy of the schema rules.
func (s *Schema) Rules() []Rule {
	return append([]Rule(nil), s.rules...)
}

// With returns a new schema with extra rules appended after the existing ones.
func (s *Schema) With(name string, rules ...Rule) *Schema {
	all := append(s.Rules(), rules...)
	return &Schema{name: name, rules: all}
}

func (s *Schema) ResolveScalar(text string) tag.Name {
	for i := range s.rules {
		if s.rules[i].Pattern.MatchString(text) {
			return s.rules[i].Tag
		}
	}
	return tag.Str
}

func (s *Schema) String() string { return s.name }

var (
	coreNull      = regexp.MustCompile(`^(?:~|null|Null|NULL|)$`)
	coreBool      = regexp.MustCompile(`^(?:true|True|TRUE|false|False|FALSE)$`)
	coreInt       = regexp.MustCompile(`^(?:[-+]?[0-9]+|0o[0-7]+|0x[0-9a-fA-F]+)$`)
	coreFloat     = regexp.MustCompile(`^(?:[-+]?(?:\.[0-9]+|[0-9]+(?:\.[0-9]*)?)(?:[eE][-+]?[0-9]+)?|[-+]?\.(?:inf|Inf|INF)|\.(?:nan|NaN|NAN))$`)
	coreMerge     = regexp.MustCompile(`^<<$`)
	coreValue     = regexp.MustCompile(`^=$`)
	coreTimestamp = regexp.MustCompile(`^[0-9]{4}-[0-9]{1,2}-[0-9]{1,2}(?:(?:[Tt]|[ \t]+)[0-9]{1,2}:[0-9]{2}:[0-9]{2}(?:\.[0-9]*)?(?:[ \t]*(?:Z|[-+][0-9]{1,2}(?::[0-9]{2})?))?)?$`)

	jsonNull  = regexp.MustCompile(`^null$`)
	jsonBool  = regexp.MustCompile(`^(?:true|false)$`)
	jsonInt   = regexp.MustCompile(`^-?[0-9]+$`)
	jsonFloat = regexp.MustCompile(`^(?:-?[0-9]+(?:\.[0-9]*)?(?:[eE][-+]?[0-9]+)?|\.inf|-\.inf|\.nan)$`)
)

var (
	// Failsafe never infers anything but str.
	Failsafe = NewSchema("failsafe")

	// JSON matches exact JSON literals only.
	JSON = NewSchema("json",
		Rule{Tag: tag.Null, Pattern: jsonNull},
		Rule{Tag: tag.Bool, Pattern: jsonBool},
		Rule{Tag: tag.Int, Pattern: jsonInt},
		Rule{Tag: tag.Float, Pattern: jsonFloat},
	)

	// Core is the default schema.
	Core = NewSchema("core",
		Rule{Tag: tag.Null, Pattern: coreNull},
		Rule{Tag: tag.Bool, Pattern: coreBool},
		Rule{Tag: tag.Int, Pattern: coreInt},
		Rule{Tag: tag.Float, Pattern: coreFloat},
		Rule{Tag: tag.Merge, Pattern: coreMerge},
		Rule{Tag: tag.Value, Pattern: coreValue},
		Rule{Tag: tag.Timestamp, Pattern: coreTimestamp},
	)
)

// Default is the resolver used when none is configured.
var Default Resolver = Core

// ByName returns one of the builtin schemas.
func ByName(name string) (*Schema, error) {
	switch name {
	case "failsafe":
		return Failsafe, nil
	case "json":
		return JSON, nil
	case "core", "":
		return Core, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
}
