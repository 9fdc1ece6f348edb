// Package classfiletest builds class files in memory for tests.
package classfiletest

import (
	"bytes"
	"encoding/binary"
)

// Access flags, untyped so they fit any uint16 flag parameter.
const (
	Public    = 0x0001
	Private   = 0x0002
	Protected = 0x0004
	Static    = 0x0008
	Final     = 0x0010
	Bridge    = 0x0040
	Varargs   = 0x0080
	Native    = 0x0100
	Interface = 0x0200
	Abstract  = 0x0400
	Synthetic = 0x1000
)

type method struct {
	flags      uint16
	name       string
	descriptor string
	params     []string
	deprecated bool
}

type MethodOption func(*method)

// ParamNames attaches a MethodParameters attribute.
func ParamNames(names ...string) MethodOption {
	return func(m *method) { m.params = names }
}

func Deprecated() MethodOption {
	return func(m *method) { m.deprecated = true }
}

type Builder struct {
	pool    bytes.Buffer
	count   uint16
	utf8    map[string]uint16
	classes map[string]uint16

	access  uint16
	name    string
	super   string
	fields  [][3]any
	methods []method
	longs   []int64
}

// New starts a public class extending java/lang/Object. name is in
// internal form.
func New(name string) *Builder {
	return &Builder{
		count:   1,
		utf8:    map[string]uint16{},
		classes: map[string]uint16{},
		access:  Public,
		name:    name,
		super:   "java/lang/Object",
	}
}

func (b *Builder) Access(flags uint16) *Builder {
	b.access = flags
	return b
}

func (b *Builder) Super(name string) *Builder {
	b.super = name
	return b
}

func (b *Builder) Field(flags uint16, name, descriptor string) *Builder {
	b.fields = append(b.fields, [3]any{flags, name, descriptor})
	return b
}

func (b *Builder) Method(flags uint16, name, descriptor string, opts ...MethodOption) *Builder {
	m := method{flags: flags, name: name, descriptor: descriptor}
	for _, opt := range opts {
		opt(&m)
	}
	b.methods = append(b.methods, m)
	return b
}

// Long adds a long constant, which takes two pool slots.
func (b *Builder) Long(v int64) *Builder {
	b.longs = append(b.longs, v)
	return b
}

func (b *Builder) utf8Index(s string) uint16 {
	if idx, ok := b.utf8[s]; ok {
		return idx
	}
	b.pool.WriteByte(1)
	b.u2(&b.pool, uint16(len(s)))
	b.pool.WriteString(s)
	idx := b.count
	b.count++
	b.utf8[s] = idx
	return idx
}

func (b *Builder) classIndex(name string) uint16 {
	if idx, ok := b.classes[name]; ok {
		return idx
	}
	nameIdx := b.utf8Index(name)
	b.pool.WriteByte(7)
	b.u2(&b.pool, nameIdx)
	idx := b.count
	b.count++
	b.classes[name] = idx
	return idx
}

func (b *Builder) u2(w *bytes.Buffer, v uint16) {
	_ = binary.Write(w, binary.BigEndian, v)
}

func (b *Builder) u4(w *bytes.Buffer, v uint32) {
	_ = binary.Write(w, binary.BigEndian, v)
}

// Bytes serializes the class. The constant pool is filled while the body
// is written, so call it once per builder.
func (b *Builder) Bytes() []byte {
	thisIdx := b.classIndex(b.name)
	var superIdx uint16
	if b.super != "" {
		superIdx = b.classIndex(b.super)
	}

	for _, v := range b.longs {
		b.pool.WriteByte(5)
		b.u4(&b.pool, uint32(uint64(v)>>32))
		b.u4(&b.pool, uint32(v))
		b.count += 2
	}

	var body bytes.Buffer
	b.u2(&body, b.access)
	b.u2(&body, thisIdx)
	b.u2(&body, superIdx)
	b.u2(&body, 0)

	b.u2(&body, uint16(len(b.fields)))
	for _, f := range b.fields {
		b.u2(&body, f[0].(uint16))
		b.u2(&body, b.utf8Index(f[1].(string)))
		b.u2(&body, b.utf8Index(f[2].(string)))
		b.u2(&body, 0)
	}

	b.u2(&body, uint16(len(b.methods)))
	for _, m := range b.methods {
		b.u2(&body, m.flags)
		b.u2(&body, b.utf8Index(m.name))
		b.u2(&body, b.utf8Index(m.descriptor))

		var attrs uint16
		var ab bytes.Buffer
		if m.params != nil {
			attrs++
			b.u2(&ab, b.utf8Index("MethodParameters"))
			b.u4(&ab, uint32(1+4*len(m.params)))
			ab.WriteByte(byte(len(m.params)))
			for _, p := range m.params {
				var idx uint16
				if p != "" {
					idx = b.utf8Index(p)
				}
				b.u2(&ab, idx)
				b.u2(&ab, 0)
			}
		}
		if m.deprecated {
			attrs++
			b.u2(&ab, b.utf8Index("Deprecated"))
			b.u4(&ab, 0)
		}
		b.u2(&body, attrs)
		body.Write(ab.Bytes())
	}
	b.u2(&body, 0)

	var out bytes.Buffer
	b.u4(&out, 0xCAFEBABE)
	b.u2(&out, 0)
	b.u2(&out, 61)
	b.u2(&out, b.count)
	out.Write(b.pool.Bytes())
	out.Write(body.Bytes())
	return out.Bytes()
}
