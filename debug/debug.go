// Package debug holds process wide debugging switches read from the
// environment at init.
package debug

import (
	"fmt"
	"io"
	"os"
	"strconv"

	json "github.com/goccy/go-json"
)

type debug struct {
	Load   bool
	Decode bool
	Encode bool
	Events bool
}

var d *debug

func init() {
	d = &debug{}
	d.Load = boolEnv("YML_DEBUG_LOAD")
	d.Decode = boolEnv("YML_DEBUG_DECODE")
	d.Encode = boolEnv("YML_DEBUG_ENCODE")
	d.Events = boolEnv("YML_DEBUG_EVENTS")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Load() bool {
	return d.Load
}
func Decode() bool {
	return d.Decode
}
func Encode() bool {
	return d.Encode
}
func Events() bool {
	return d.Events
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// LogAny writes v to stderr as a line of JSON.
func LogAny(v any) {
	logAny(os.Stderr, v)
}

func logAny(w io.Writer, v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(w, "%v\n", v)
		return
	}
	w.Write(append(d, '\n'))
}
