package ir

import "strconv"

// Mark is a 1-based source position.
type Mark struct {
	Line   int
	Column int
}

func (m Mark) String() string {
	return strconv.Itoa(m.Line) + ":" + strconv.Itoa(m.Column)
}
