package domain

// Tracer receives the command lines and filesystem mutations of a build
// when tracing is enabled.
type Tracer interface {
	Trace(line string)
}

// TracerFunc adapts a function to Tracer.
type TracerFunc func(line string)

// Trace calls f(line).
func (f TracerFunc) Trace(line string) {
	f(line)
}

// NopTracer discards every line.
var NopTracer Tracer = TracerFunc(func(string) {})
