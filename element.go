package xmldom

import (
	"strings"

	"github.com/jacoelho/xmldom/pkg/xmlstream"
)

// Name identifies an element or attribute together with its resolved
// namespace URI. It is the tokenizer's name type; an empty Space means no
// namespace.
type Name = xmlstream.Name

// Element is a node of an XML document tree. Attr maps resolved attribute
// names to values; Children holds child nodes in document order.
//
// The unexported fields carry serialization context: the prefixes known at
// this element (namespace URI to prefix) and the default namespace in
// effect when it was parsed or created.
type Element struct {
	Name     string
	Space    string
	Attr     map[Name]string
	Children []Node

	prefixes  map[string]string
	defaultNS string
}

// NewElement creates an element with the given name, namespace and
// attributes. The element's default namespace is its own namespace, and the
// fixed xml and xmlns prefix bindings are seeded.
func NewElement(name, space string, attrs map[Name]string) *Element {
	attr := make(map[Name]string, len(attrs))
	for k, v := range attrs {
		attr[k] = v
	}
	return &Element{
		Name:      name,
		Space:     space,
		Attr:      attr,
		defaultNS: space,
		prefixes: map[string]string{
			xmlstream.XMLNamespace:   "xml",
			xmlstream.XMLNSNamespace: "xmlns",
		},
	}
}

// Attribute returns the value of the attribute with the given local name
// and namespace.
func (e *Element) Attribute(local, space string) (string, bool) {
	v, ok := e.Attr[Name{Space: space, Local: local}]
	return v, ok
}

// SetAttribute sets an attribute, replacing any previous value.
func (e *Element) SetAttribute(local, space, value string) {
	if e.Attr == nil {
		e.Attr = make(map[Name]string, 1)
	}
	e.Attr[Name{Space: space, Local: local}] = value
}

// RemoveAttribute deletes an attribute and reports whether it was present.
func (e *Element) RemoveAttribute(local, space string) bool {
	key := Name{Space: space, Local: local}
	_, ok := e.Attr[key]
	delete(e.Attr, key)
	return ok
}

// Child returns the first child element with the given name and namespace,
// or nil.
func (e *Element) Child(name, space string) *Element {
	for _, node := range e.Children {
		if child, ok := node.(*Element); ok && child.Name == name && child.Space == space {
			return child
		}
	}
	return nil
}

// ChildElements returns every child element with the given name and
// namespace, in document order.
func (e *Element) ChildElements(name, space string) []*Element {
	var children []*Element
	for _, node := range e.Children {
		if child, ok := node.(*Element); ok && child.Name == name && child.Space == space {
			children = append(children, child)
		}
	}
	return children
}

// TextContent returns the character and CDATA data contained in the
// element's subtree, concatenated in document order.
func (e *Element) TextContent() string {
	var sb strings.Builder
	e.collectText(&sb)
	return sb.String()
}

func (e *Element) collectText(sb *strings.Builder) {
	for _, node := range e.Children {
		switch node := node.(type) {
		case *Element:
			node.collectText(sb)
		case CharData:
			sb.WriteString(string(node))
		case CDATA:
			sb.WriteString(string(node))
		}
	}
}

// AppendChild appends a child element and returns the child, so nested
// structures can be built inside out.
func (e *Element) AppendChild(child *Element) *Element {
	e.Children = append(e.Children, child)
	return child
}

// AppendText appends character data and returns the element.
func (e *Element) AppendText(text string) *Element {
	e.Children = append(e.Children, CharData(text))
	return e
}

// AppendCDATA appends a CDATA section and returns the element.
func (e *Element) AppendCDATA(text string) *Element {
	e.Children = append(e.Children, CDATA(text))
	return e
}

// AppendComment appends a comment and returns the element.
func (e *Element) AppendComment(text string) *Element {
	e.Children = append(e.Children, Comment(text))
	return e
}

// AppendProcInst appends a processing instruction and returns the element.
func (e *Element) AppendProcInst(text string) *Element {
	e.Children = append(e.Children, ProcInst(text))
	return e
}
