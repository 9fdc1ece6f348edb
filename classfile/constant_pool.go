package classfile

// Constant is one constant pool slot. Only the parts needed to resolve
// names and descriptors are kept: the UTF-8 payload and the first index
// of reference entries (the name index of a Class entry).
type Constant struct {
	Tag   ConstantTag
	Utf8  string
	Index uint16
}

// ConstantPool is indexed from 1 like the class file format; slot 0 and
// the second slot of long/double entries are nil.
type ConstantPool []*Constant

func (cp ConstantPool) get(index uint16, tag ConstantTag) *Constant {
	if index == 0 || int(index) >= len(cp) {
		return nil
	}
	c := cp[index]
	if c == nil || c.Tag != tag {
		return nil
	}
	return c
}

func (cp ConstantPool) GetUtf8(index uint16) string {
	if c := cp.get(index, ConstantUtf8); c != nil {
		return c.Utf8
	}
	return ""
}

func (cp ConstantPool) GetClassName(index uint16) string {
	if c := cp.get(index, ConstantClass); c != nil {
		return cp.GetUtf8(c.Index)
	}
	return ""
}
