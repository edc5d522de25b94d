package ir

import (
	"strconv"
	"strings"
)

func keyPath(parent string, key *Node, i int) string {
	if key.Kind != ScalarKind {
		return parent + "{" + strconv.Itoa(i) + "}"
	}
	if plainPathKey(key.Text) {
		return parent + "." + key.Text
	}
	return parent + "[" + strconv.Quote(key.Text) + "]"
}

func indexPath(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}

func plainPathKey(s string) bool {
	if s == "" {
		return false
	}
	return !strings.ContainsAny(s, ".[]{}\"' \t\n")
}
