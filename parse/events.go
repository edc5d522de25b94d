package parse

import (
	"reflect"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"

	"github.com/signadot/yamlir/compose"
	"github.com/signadot/yamlir/ir"
)

// Events parses d and returns its event stream.
func Events(d []byte) ([]compose.Event, error) {
	f, err := parser.ParseBytes(d, 0)
	if err != nil {
		return nil, err
	}
	w := &walker{}
	w.emit(compose.Event{Type: compose.StreamStart})
	for _, doc := range f.Docs {
		if doc == nil {
			continue
		}
		m := markOf(doc.Start)
		w.emit(compose.Event{Type: compose.DocumentStart, Mark: m})
		if doc.Body != nil {
			if err := w.node(doc.Body, props{}); err != nil {
				return nil, err
			}
		}
		w.emit(compose.Event{Type: compose.DocumentEnd, Mark: m})
	}
	w.emit(compose.Event{Type: compose.StreamEnd})
	return w.events, nil
}

type walker struct {
	events []compose.Event
}

// props are the anchor and tag collected from wrapper nodes.
type props struct {
	anchor string
	tag    string
	mark   *ir.Mark
}

func (w *walker) emit(e compose.Event) {
	w.events = append(w.events, e)
}

func (w *walker) scalar(text string, style ir.ScalarStyle, p props, tk *token.Token) {
	w.emit(compose.Event{
		Type:   compose.Scalar,
		Anchor: p.anchor,
		Tag:    p.tag,
		Text:   text,
		Style:  style,
		Mark:   p.markOr(tk),
	})
}

func (w *walker) node(n ast.Node, p props) error {
	if isNil(n) {
		w.scalar("", ir.PlainStyle, p, nil)
		return nil
	}
	switch x := n.(type) {
	case *ast.AnchorNode:
		p.anchor = tokenText(x.Name)
		p.setMark(x.Start)
		return w.node(x.Value, p)
	case *ast.TagNode:
		if x.Start != nil {
			p.tag = x.Start.Value
		}
		p.setMark(x.Start)
		return w.node(x.Value, p)
	case *ast.AliasNode:
		w.emit(compose.Event{Type: compose.Alias, Anchor: tokenText(x.Value), Mark: markOf(x.Start)})
		return nil
	case *ast.StringNode:
		w.scalar(x.Value, styleOf(x.Token), p, x.Token)
	case *ast.LiteralNode:
		style := ir.LiteralStyle
		if x.Start != nil && x.Start.Type == token.FoldedType {
			style = ir.FoldedStyle
		}
		text := ""
		if x.Value != nil {
			text = x.Value.Value
		}
		w.scalar(text, style, p, x.Start)
	case *ast.NullNode:
		w.scalar(rawText(x.Token), ir.PlainStyle, p, x.Token)
	case *ast.BoolNode:
		w.scalar(rawText(x.Token), ir.PlainStyle, p, x.Token)
	case *ast.IntegerNode:
		w.scalar(rawText(x.Token), ir.PlainStyle, p, x.Token)
	case *ast.FloatNode:
		w.scalar(rawText(x.Token), ir.PlainStyle, p, x.Token)
	case *ast.InfinityNode:
		w.scalar(rawText(x.Token), ir.PlainStyle, p, x.Token)
	case *ast.NanNode:
		w.scalar(rawText(x.Token), ir.PlainStyle, p, x.Token)
	case *ast.MergeKeyNode:
		w.scalar("<<", ir.PlainStyle, p, x.Token)
	case *ast.MappingKeyNode:
		return w.node(x.Value, p)
	case *ast.MappingNode:
		return w.mapping(x.Values, x.IsFlowStyle, p, x.Start)
	case *ast.MappingValueNode:
		// A lone pair is a one entry block mapping.
		return w.mapping([]*ast.MappingValueNode{x}, false, p, x.GetToken())
	case *ast.SequenceNode:
		style := ir.BlockStyle
		if x.IsFlowStyle {
			style = ir.FlowStyle
		}
		w.emit(compose.Event{
			Type:            compose.SequenceStart,
			Anchor:          p.anchor,
			Tag:             p.tag,
			CollectionStyle: style,
			Mark:            p.markOr(x.Start),
		})
		for _, v := range x.Values {
			if err := w.node(v, props{}); err != nil {
				return err
			}
		}
		w.emit(compose.Event{Type: compose.SequenceEnd})
	default:
		return &NodeError{Mark: markOf(n.GetToken()), Type: n.Type().String(), Err: ErrUnsupported}
	}
	return nil
}

func (w *walker) mapping(values []*ast.MappingValueNode, flow bool, p props, start *token.Token) error {
	style := ir.BlockStyle
	if flow {
		style = ir.FlowStyle
	}
	w.emit(compose.Event{
		Type:            compose.MappingStart,
		Anchor:          p.anchor,
		Tag:             p.tag,
		CollectionStyle: style,
		Mark:            p.markOr(start),
	})
	for _, mv := range values {
		if mv == nil {
			continue
		}
		if err := w.node(mv.Key, props{}); err != nil {
			return err
		}
		if err := w.node(mv.Value, props{}); err != nil {
			return err
		}
	}
	w.emit(compose.Event{Type: compose.MappingEnd})
	return nil
}

func (p *props) setMark(tk *token.Token) {
	if p.mark == nil && tk != nil && tk.Position != nil {
		m := markOf(tk)
		p.mark = &m
	}
}

func (p props) markOr(tk *token.Token) ir.Mark {
	if p.mark != nil {
		return *p.mark
	}
	return markOf(tk)
}

func markOf(tk *token.Token) ir.Mark {
	if tk == nil || tk.Position == nil {
		return ir.Mark{}
	}
	return ir.Mark{Line: tk.Position.Line, Column: tk.Position.Column}
}

func styleOf(tk *token.Token) ir.ScalarStyle {
	if tk == nil {
		return ir.PlainStyle
	}
	switch tk.Type {
	case token.SingleQuoteType:
		return ir.SingleQuotedStyle
	case token.DoubleQuoteType:
		return ir.DoubleQuotedStyle
	}
	return ir.PlainStyle
}

func rawText(tk *token.Token) string {
	if tk == nil {
		return ""
	}
	return tk.Value
}

func tokenText(n ast.Node) string {
	if isNil(n) {
		return ""
	}
	return rawText(n.GetToken())
}

// isNil catches both a nil interface and a typed nil pointer.
func isNil(n ast.Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
