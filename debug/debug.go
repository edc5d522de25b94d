// Package debug holds switches for diagnostic output, read once from the
// environment at init.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Compose   bool
	Construct bool
	Alias     bool
	Bridge    bool
	Emit      bool
}

var d *debug

func init() {
	d = &debug{}
	d.Compose = boolEnv("YAMLIR_DEBUG_COMPOSE")
	d.Construct = boolEnv("YAMLIR_DEBUG_CONSTRUCT")
	d.Alias = boolEnv("YAMLIR_DEBUG_ALIAS")
	d.Bridge = boolEnv("YAMLIR_DEBUG_BRIDGE")
	d.Emit = boolEnv("YAMLIR_DEBUG_EMIT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Compose() bool {
	return d.Compose
}
func Construct() bool {
	return d.Construct
}
func Alias() bool {
	return d.Alias
}
func Bridge() bool {
	return d.Bridge
}
func Emit() bool {
	return d.Emit
}
