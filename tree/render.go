package tree

import (
	"fmt"
	"strings"

	"github.com/nwnkit/gff/format"
)

// String renders the struct as an indented, human-readable tree for
// debugging and logging. The rendering is not a serialization format.
func (s *Struct) String() string {
	var sb strings.Builder
	s.render(&sb, 0)
	sb.WriteByte('\n')

	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteString("    ")
	}
}

func (s *Struct) render(sb *strings.Builder, depth int) {
	if s.typeID == AnyType {
		sb.WriteString("{\n")
	} else {
		fmt.Fprintf(sb, "(0x%X) {\n", s.typeID)
	}
	for _, f := range s.fields {
		indent(sb, depth+1)
		sb.WriteString(f.Label)
		sb.WriteString(": ")
		f.Value.render(sb, depth+1)
		sb.WriteString(",\n")
	}
	indent(sb, depth)
	sb.WriteByte('}')
}

func (v Value) render(sb *strings.Builder, depth int) {
	switch v.typ {
	case format.TypeByte:
		val, _ := v.Byte()
		fmt.Fprintf(sb, "%d", val)
	case format.TypeChar:
		val, _ := v.Char()
		fmt.Fprintf(sb, "%d", val)
	case format.TypeWord:
		val, _ := v.Word()
		fmt.Fprintf(sb, "%d", val)
	case format.TypeShort:
		val, _ := v.Short()
		fmt.Fprintf(sb, "%d", val)
	case format.TypeDword:
		val, _ := v.Dword()
		fmt.Fprintf(sb, "%d", val)
	case format.TypeInt:
		val, _ := v.Int()
		fmt.Fprintf(sb, "%d", val)
	case format.TypeDword64:
		val, _ := v.Dword64()
		fmt.Fprintf(sb, "%d", val)
	case format.TypeInt64:
		val, _ := v.Int64()
		fmt.Fprintf(sb, "%d", val)
	case format.TypeFloat:
		val, _ := v.Float()
		fmt.Fprintf(sb, "%g", val)
	case format.TypeDouble:
		val, _ := v.Double()
		fmt.Fprintf(sb, "%g", val)
	case format.TypeExoString:
		fmt.Fprintf(sb, "%q", v.str)
	case format.TypeResRef:
		fmt.Fprintf(sb, "Ref<%s>", v.str)
	case format.TypeVoid:
		fmt.Fprintf(sb, "DATA[% .10X]", v.data)
	case format.TypeLocString:
		v.loc.render(sb, depth)
	case format.TypeStruct:
		v.st.render(sb, depth)
	case format.TypeList:
		sb.WriteString("[ ")
		for _, st := range v.list {
			st.render(sb, depth)
			sb.WriteString(", ")
		}
		sb.WriteByte(']')
	}
}

func (l *LocString) render(sb *strings.Builder, depth int) {
	if l.StrRef == NoStrRef {
		sb.WriteString("{\n")
	} else {
		fmt.Fprintf(sb, "[%d]{\n", l.StrRef)
	}
	for _, e := range l.entries {
		indent(sb, depth+1)
		fmt.Fprintf(sb, "%s/%s: %q,\n", e.Lang, e.Gender, e.Text)
	}
	indent(sb, depth)
	sb.WriteByte('}')
}
