package debug

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/signadot/yamlir/ir"
)

var (
	mu     sync.Mutex
	logger log.Logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
)

// SetLogger replaces the sink used by Logf and returns the previous one.
func SetLogger(l log.Logger) log.Logger {
	mu.Lock()
	defer mu.Unlock()
	prev := logger
	logger = l
	return prev
}

// Node is a one-line rendering of a node for log lines.
type Node struct{ *ir.Node }

func (n Node) String() string {
	x := n.Node
	if x == nil {
		return "<nil>"
	}
	s := x.Kind.String() + "(" + x.Tag().Short()
	if x.Anchor != "" {
		s += " &" + string(x.Anchor)
	}
	switch x.Kind {
	case ir.ScalarKind:
		s += " " + fmt.Sprintf("%q", x.Text)
	default:
		s += fmt.Sprintf(" len=%d", x.Len())
	}
	if x.Mark != nil {
		s += " @" + x.Mark.String()
	}
	return s + ")"
}

// Logf writes a debug-level logfmt line with the formatted message under
// "msg" and the component name under "c".
func Logf(component, msg string, args ...any) {
	for i := range args {
		if x, ok := args[i].(*ir.Node); ok {
			args[i] = Node{x}
		}
	}
	mu.Lock()
	l := logger
	mu.Unlock()
	_ = level.Debug(l).Log("c", component, "msg", fmt.Sprintf(msg, args...))
}
