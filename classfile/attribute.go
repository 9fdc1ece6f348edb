package classfile

import "encoding/binary"

type MethodParametersAttribute struct {
	Parameters []MethodParameter
}

type MethodParameter struct {
	NameIndex   uint16
	AccessFlags AccessFlags
}

type DeprecatedAttribute struct{}

func parseAttribute(name string, info []byte) any {
	switch name {
	case "MethodParameters":
		return parseMethodParametersAttribute(info)
	case "Deprecated":
		return &DeprecatedAttribute{}
	}
	return nil
}

func parseMethodParametersAttribute(info []byte) *MethodParametersAttribute {
	if len(info) < 1 {
		return nil
	}

	count := int(info[0])
	if len(info) < 1+count*4 {
		return nil
	}

	mp := &MethodParametersAttribute{
		Parameters: make([]MethodParameter, count),
	}

	offset := 1
	for i := 0; i < count; i++ {
		mp.Parameters[i] = MethodParameter{
			NameIndex:   binary.BigEndian.Uint16(info[offset : offset+2]),
			AccessFlags: AccessFlags(binary.BigEndian.Uint16(info[offset+2 : offset+4])),
		}
		offset += 4
	}

	return mp
}
