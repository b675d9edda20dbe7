package xmldom

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jacoelho/xmldom/pkg/xmlentity"
)

// String renders the element as XML text: single-quoted attribute values,
// attributes in a stable order, and namespace declarations emitted only
// where they change the meaning of the subtree.
//
// Rendering an element whose namespace (or an attribute's namespace) has
// no bound prefix and is not the default namespace is a programming error
// and panics; bindings come from the parsed declarations or from
// Builder.DefinePrefix.
func (e *Element) String() string {
	var sb strings.Builder
	writeElement(&sb, e, nil, nil)
	return sb.String()
}

func writeElement(sb *strings.Builder, elem, parent *Element, inherited map[string]string) {
	prefixes := make(map[string]string, len(inherited)+len(elem.prefixes))
	for space, prefix := range inherited {
		prefixes[space] = prefix
	}
	for space, prefix := range elem.prefixes {
		prefixes[space] = prefix
	}

	// A prefix is needed only when the element is not covered by its own
	// default namespace.
	name := elem.Name
	if elem.Space != elem.defaultNS {
		name = prefixFor(prefixes, elem.Space) + ":" + elem.Name
	}
	sb.WriteByte('<')
	sb.WriteString(name)

	if !hasXMLNSAttr(elem) {
		switch {
		case parent == nil && elem.defaultNS != "":
			writeDefaultNS(sb, elem.defaultNS)
		case parent != nil && parent.defaultNS != elem.defaultNS:
			// Emitted even when empty: xmlns='' cancels an inherited default.
			writeDefaultNS(sb, elem.defaultNS)
		}
	}

	for _, attr := range sortedAttrs(elem.Attr) {
		sb.WriteByte(' ')
		if attr.name.Space != "" {
			sb.WriteString(prefixFor(prefixes, attr.name.Space))
			sb.WriteByte(':')
		}
		sb.WriteString(attr.name.Local)
		sb.WriteString("='")
		sb.WriteString(xmlentity.Escape(attr.value))
		sb.WriteByte('\'')
	}

	if len(elem.Children) == 0 {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	for _, child := range elem.Children {
		switch child := child.(type) {
		case *Element:
			writeElement(sb, child, elem, prefixes)
		case CharData:
			sb.WriteString(child.String())
		case CDATA:
			sb.WriteString(child.String())
		case Comment:
			sb.WriteString(child.String())
		case ProcInst:
			sb.WriteString(child.String())
		}
	}
	sb.WriteString("</")
	sb.WriteString(name)
	sb.WriteByte('>')
}

func writeDefaultNS(sb *strings.Builder, space string) {
	sb.WriteString(" xmlns='")
	sb.WriteString(space)
	sb.WriteByte('\'')
}

func prefixFor(prefixes map[string]string, space string) string {
	prefix, ok := prefixes[space]
	if !ok {
		panic(fmt.Sprintf("xmldom: no prefix bound for namespace %q", space))
	}
	return prefix
}

// hasXMLNSAttr reports whether the element carries an explicit xmlns
// attribute, in which case no synthetic default declaration is emitted.
func hasXMLNSAttr(elem *Element) bool {
	for name := range elem.Attr {
		if name.Local == "xmlns" {
			return true
		}
	}
	return false
}

type sortedAttr struct {
	name  Name
	value string
}

func sortedAttrs(attrs map[Name]string) []sortedAttr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]sortedAttr, 0, len(attrs))
	for name, value := range attrs {
		out = append(out, sortedAttr{name: name, value: value})
	}
	slices.SortFunc(out, func(a, b sortedAttr) int {
		if c := strings.Compare(a.name.Space, b.name.Space); c != 0 {
			return c
		}
		return strings.Compare(a.name.Local, b.name.Local)
	})
	return out
}
