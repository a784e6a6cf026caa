package jsast

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const indentUnit = "  "

type printer struct {
	b     strings.Builder
	depth int
}

// Print renders e as JavaScript source. Non-empty arrays and objects are
// printed one element per line with trailing commas.
func Print(e Expr) string {
	var p printer
	e.print(&p)
	return p.b.String()
}

func (p *printer) newline() {
	p.b.WriteByte('\n')
	for i := 0; i < p.depth; i++ {
		p.b.WriteString(indentUnit)
	}
}

func (s String) print(p *printer) { p.b.WriteString(Quote(string(s), '"')) }
func (n Number) print(p *printer) { p.b.WriteString(string(n)) }
func (Null) print(p *printer) { p.b.WriteString("null") }

func (v Bool) print(p *printer) {
	if v {
		p.b.WriteString("true")
	} else {
		p.b.WriteString("false")
	}
}

func (a Array) print(p *printer) {
	if len(a) == 0 {
		p.b.WriteString("[]")
		return
	}
	p.b.WriteByte('[')
	p.depth++
	for _, e := range a {
		p.newline()
		e.print(p)
		p.b.WriteByte(',')
	}
	p.depth--
	p.newline()
	p.b.WriteByte(']')
}

func (o Object) print(p *printer) {
	if len(o) == 0 {
		p.b.WriteString("{}")
		return
	}
	p.b.WriteByte('{')
	p.depth++
	for _, prop := range o {
		p.newline()
		if IsIdentifier(prop.Key) {
			p.b.WriteString(prop.Key)
		} else {
			p.b.WriteString(Quote(prop.Key, '"'))
		}
		p.b.WriteString(": ")
		prop.Value.print(p)
		p.b.WriteByte(',')
	}
	p.depth--
	p.newline()
	p.b.WriteByte('}')
}

func (a Arrow) print(p *printer) {
	p.b.WriteString("() => ")
	if _, ok := a.Body.(Object); ok {
		// An object body needs parentheses or it parses as a block.
		p.b.WriteByte('(')
		a.Body.print(p)
		p.b.WriteByte(')')
		return
	}
	a.Body.print(p)
}

func (i Import) print(p *printer) {
	p.b.WriteString("import(")
	if i.Comment != "" && i.Chunk != "" {
		fmt.Fprintf(&p.b, "/* %s: %s */", i.Comment, Quote(i.Chunk, '"'))
	}
	p.b.WriteString(Quote(i.Specifier, '\''))
	p.b.WriteByte(')')
}

// Quote returns s as a JavaScript string literal delimited by q, which must
// be '"' or '\''.
func Quote(s string, q byte) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(q)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteByte(q)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == utf8.RuneError && size == 1:
			b.WriteString(`\uFFFD`)
		case r < 0x20, r == 0x7f, r == 0x2028, r == 0x2029:
			fmt.Fprintf(&b, `\u%04X`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
