package classfile

type MethodInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

func (m *MethodInfo) Name(cp ConstantPool) string {
	return cp.GetUtf8(m.NameIndex)
}

func (m *MethodInfo) Descriptor(cp ConstantPool) string {
	return cp.GetUtf8(m.DescriptorIndex)
}

func (m *MethodInfo) IsDeprecated() bool {
	return hasAttribute(m.Attributes, "Deprecated")
}

// ParameterNames returns the names recorded in the MethodParameters
// attribute, or nil when the class was compiled without -parameters.
// Unnamed entries are returned as empty strings.
func (m *MethodInfo) ParameterNames(cp ConstantPool) []string {
	for i := range m.Attributes {
		mp, ok := m.Attributes[i].Parsed.(*MethodParametersAttribute)
		if !ok {
			continue
		}
		names := make([]string, len(mp.Parameters))
		for j, p := range mp.Parameters {
			names[j] = cp.GetUtf8(p.NameIndex)
		}
		return names
	}
	return nil
}

func (m *MethodInfo) IsConstructor(cp ConstantPool) bool {
	return m.Name(cp) == "<init>"
}

func (m *MethodInfo) IsStaticInitializer(cp ConstantPool) bool {
	return m.Name(cp) == "<clinit>"
}
