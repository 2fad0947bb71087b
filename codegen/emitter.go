package codegen

import (
	"bytes"
	"fmt"
	"strings"
)

// Emitter accumulates generated source text with indentation tracking.
// Methods return the emitter so emission sequences chain.
//
// The emitter makes no attempt to format its output beyond indentation;
// targets are responsible for emitting well-formed source.
type Emitter struct {
	buf    bytes.Buffer
	indent int
}

// NewEmitter returns an empty emitter indenting with tabs.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Line writes one line at the current indentation.
func (e *Emitter) Line(s string) *Emitter {
	if s != "" {
		e.buf.WriteString(strings.Repeat("\t", e.indent))
		e.buf.WriteString(s)
	}
	e.buf.WriteByte('\n')
	return e
}

// Linef writes one formatted line at the current indentation.
func (e *Emitter) Linef(format string, args ...any) *Emitter {
	return e.Line(fmt.Sprintf(format, args...))
}

// Blank writes an empty line.
func (e *Emitter) Blank() *Emitter {
	e.buf.WriteByte('\n')
	return e
}

// In increases the indentation level.
func (e *Emitter) In() *Emitter {
	e.indent++
	return e
}

// Out decreases the indentation level.
func (e *Emitter) Out() *Emitter {
	if e.indent > 0 {
		e.indent--
	}
	return e
}

// Block writes an opening line, runs body one level deeper, and closes
// with the given terminator ("}", "})", ...).
func (e *Emitter) Block(open string, body func(*Emitter), close string) *Emitter {
	e.Line(open)
	e.In()
	body(e)
	e.Out()
	return e.Line(close)
}

// Doc writes doc-comment lines above a declaration.
func (e *Emitter) Doc(lines []string) *Emitter {
	for _, l := range lines {
		if l == "" {
			e.Line("//")
			continue
		}
		e.Line("// " + l)
	}
	return e
}

// Len returns the number of bytes emitted so far.
func (e *Emitter) Len() int {
	return e.buf.Len()
}

// Bytes returns the emitted source. The slice aliases the emitter's
// buffer; callers that keep it must not emit further.
func (e *Emitter) Bytes() []byte {
	return e.buf.Bytes()
}

// String returns the emitted source as a string.
func (e *Emitter) String() string {
	return e.buf.String()
}

// Reset discards all emitted content and indentation state.
func (e *Emitter) Reset() {
	e.buf.Reset()
	e.indent = 0
}
