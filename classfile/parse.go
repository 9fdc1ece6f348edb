package classfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

type reader struct {
	r   io.Reader
	err error
}

func (r *reader) readU1() uint8 {
	if r.err != nil {
		return 0
	}
	var buf [1]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return buf[0]
}

func (r *reader) readU2() uint16 {
	if r.err != nil {
		return 0
	}
	var buf [2]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) readU4() uint32 {
	if r.err != nil {
		return 0
	}
	var buf [4]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

// readBytes grows its buffer as data arrives, so a corrupt length cannot
// force a large allocation up front.
func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	var buf bytes.Buffer
	read, err := io.CopyN(&buf, r.r, int64(n))
	if err == io.EOF && read < int64(n) {
		err = io.ErrUnexpectedEOF
	}
	r.err = err
	return buf.Bytes()
}

func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a class file. Fields and interfaces are consumed but not
// kept: binding generation only looks at the class name, its flags and
// its methods.
func Parse(rd io.Reader) (*ClassFile, error) {
	r := &reader{r: rd}

	magic := r.readU4()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", r.err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("invalid magic number: 0x%X (expected 0xCAFEBABE)", magic)
	}

	cf := &ClassFile{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read version: %w", r.err)
	}

	constantPoolCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read constant pool count: %w", r.err)
	}

	cf.ConstantPool = make(ConstantPool, constantPoolCount)
	for i := uint16(1); i < constantPoolCount; i++ {
		entry, wide, err := readConstant(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read constant pool entry %d: %w", i, err)
		}
		cf.ConstantPool[i] = entry
		if wide {
			i++
		}
	}

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = r.readU2()
	cf.SuperClass = r.readU2()

	interfacesCount := r.readU2()
	r.readBytes(int(interfacesCount) * 2)
	if r.err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", r.err)
	}

	fieldsCount := r.readU2()
	for i := uint16(0); i < fieldsCount; i++ {
		if _, err := readMember(r, cf.ConstantPool); err != nil {
			return nil, fmt.Errorf("failed to read field %d: %w", i, err)
		}
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read fields: %w", r.err)
	}

	methodsCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read methods count: %w", r.err)
	}

	cf.Methods = make([]MethodInfo, methodsCount)
	for i := uint16(0); i < methodsCount; i++ {
		method, err := readMember(r, cf.ConstantPool)
		if err != nil {
			return nil, fmt.Errorf("failed to read method %d: %w", i, err)
		}
		cf.Methods[i] = *method
	}

	attrs, err := readAttributes(r, cf.ConstantPool)
	if err != nil {
		return nil, fmt.Errorf("failed to read class attributes: %w", err)
	}
	cf.Attributes = attrs

	return cf, nil
}

// readConstant reads one constant pool entry. The second result reports
// whether the entry occupies two slots (long and double).
func readConstant(r *reader) (*Constant, bool, error) {
	tag := ConstantTag(r.readU1())
	if r.err != nil {
		return nil, false, r.err
	}

	c := &Constant{Tag: tag}
	switch tag {
	case ConstantUtf8:
		length := r.readU2()
		c.Utf8 = decodeModifiedUtf8(r.readBytes(int(length)))
	case ConstantClass, ConstantString, ConstantMethodType, ConstantModule, ConstantPackage:
		c.Index = r.readU2()
	case ConstantInteger, ConstantFloat:
		r.readU4()
	case ConstantLong, ConstantDouble:
		r.readU4()
		r.readU4()
		return c, true, r.err
	case ConstantFieldref, ConstantMethodref, ConstantInterfaceMethodref,
		ConstantNameAndType, ConstantDynamic, ConstantInvokeDynamic:
		c.Index = r.readU2()
		r.readU2()
	case ConstantMethodHandle:
		r.readU1()
		c.Index = r.readU2()
	default:
		return nil, false, fmt.Errorf("unknown constant pool tag: %d", tag)
	}
	return c, false, r.err
}

func readMember(r *reader, cp ConstantPool) (*MethodInfo, error) {
	member := &MethodInfo{
		AccessFlags:     AccessFlags(r.readU2()),
		NameIndex:       r.readU2(),
		DescriptorIndex: r.readU2(),
	}
	attrs, err := readAttributes(r, cp)
	if err != nil {
		return nil, err
	}
	member.Attributes = attrs
	return member, nil
}

func readAttributes(r *reader, cp ConstantPool) ([]AttributeInfo, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}

	attrs := make([]AttributeInfo, count)
	for i := uint16(0); i < count; i++ {
		nameIndex := r.readU2()
		length := r.readU4()
		info := r.readBytes(int(length))
		if r.err != nil {
			return nil, r.err
		}
		name := cp.GetUtf8(nameIndex)
		attrs[i] = AttributeInfo{
			Name:   name,
			Info:   info,
			Parsed: parseAttribute(name, info),
		}
	}
	return attrs, nil
}

func decodeModifiedUtf8(bytes []byte) string {
	runes := make([]rune, 0, len(bytes))
	i := 0
	for i < len(bytes) {
		b := bytes[i]
		switch {
		case b&0x80 == 0:
			runes = append(runes, rune(b))
			i++
		case b&0xE0 == 0xC0 && i+1 < len(bytes):
			runes = append(runes, rune(b&0x1F)<<6|rune(bytes[i+1]&0x3F))
			i += 2
		case b&0xF0 == 0xE0 && i+2 < len(bytes):
			r := rune(b&0x0F)<<12 | rune(bytes[i+1]&0x3F)<<6 | rune(bytes[i+2]&0x3F)
			if r >= 0xD800 && r <= 0xDBFF && i+5 < len(bytes) && bytes[i+3] == 0xED {
				low := rune(bytes[i+3]&0x0F)<<12 | rune(bytes[i+4]&0x3F)<<6 | rune(bytes[i+5]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					runes = append(runes, 0x10000+((r-0xD800)<<10)+(low-0xDC00))
					i += 6
					continue
				}
			}
			runes = append(runes, r)
			i += 3
		default:
			runes = append(runes, rune(b))
			i++
		}
	}
	return string(runes)
}
