package xmldom

import (
	"errors"

	"github.com/jacoelho/xmldom/pkg/xmlstream"
)

// ErrImproperNesting reports a close event that does not match the element
// currently being built, or a close event with no element open at all.
var ErrImproperNesting = errors.New("improperly nested elements")

// ErrNoElement reports input that ended without completing any element.
var ErrNoElement = errors.New("no element found")

// Builder folds tokenizer events into element trees. Each completed root
// is yielded from HandleEvent and the builder is immediately ready for a
// sibling root; trivia outside any open element is dropped.
type Builder struct {
	stack     []*Element
	defaultNS []string
	prefixes  map[string]string
}

// NewBuilder returns a builder seeded with the fixed xml and xmlns prefix
// bindings.
func NewBuilder() *Builder {
	return &Builder{
		prefixes: map[string]string{
			xmlstream.XMLNamespace:   "xml",
			xmlstream.XMLNSNamespace: "xmlns",
		},
	}
}

// DefinePrefix binds a prefix to a namespace for serialization of the
// trees this builder produces.
func (b *Builder) DefinePrefix(prefix, space string) {
	b.prefixes[space] = prefix
}

// SetDefaultNamespace sets the default namespace in effect before the
// first event, discarding any accumulated scope state.
func (b *Builder) SetDefaultNamespace(space string) {
	b.defaultNS = []string{space}
}

// HandleEvent processes one tokenizer event. It returns a non-nil element
// exactly when the event completed a root; otherwise both results are nil
// unless the event was structurally invalid.
func (b *Builder) HandleEvent(ev xmlstream.Event) (*Element, error) {
	switch ev := ev.(type) {
	case xmlstream.ProcInst:
		b.appendNode(ProcInst(ev))
	case xmlstream.CharData:
		b.appendNode(CharData(ev))
	case xmlstream.CDATA:
		b.appendNode(CDATA(ev))
	case xmlstream.Comment:
		b.appendNode(Comment(ev))
	case xmlstream.StartElement:
		b.startElement(ev)
	case xmlstream.EndElement:
		return b.endElement(ev)
	}
	return nil, nil
}

// appendNode attaches trivia to the innermost open element. Outside any
// element it is dropped, matching the tolerance for whitespace and
// comments around roots.
func (b *Builder) appendNode(n Node) {
	if len(b.stack) == 0 {
		return
	}
	top := b.stack[len(b.stack)-1]
	top.Children = append(top.Children, n)
}

func (b *Builder) startElement(ev xmlstream.StartElement) {
	elem := &Element{
		Name:     ev.Name.Local,
		Space:    ev.Name.Space,
		Attr:     ev.Attr,
		prefixes: make(map[string]string, len(b.prefixes)),
	}
	for space, prefix := range b.prefixes {
		elem.prefixes[space] = prefix
	}

	// The new element inherits the enclosing default namespace before any
	// of its own declarations are applied.
	if len(b.defaultNS) > 0 {
		b.defaultNS = append(b.defaultNS, b.defaultNS[len(b.defaultNS)-1])
	}

	for name, value := range elem.Attr {
		if name.Space == "" && name.Local == "xmlns" {
			if len(b.defaultNS) > 0 {
				b.defaultNS = b.defaultNS[:len(b.defaultNS)-1]
			}
			b.defaultNS = append(b.defaultNS, value)
			continue
		}
		if name.Space == xmlstream.XMLNSNamespace {
			elem.prefixes[value] = name.Local
		}
	}

	if len(b.defaultNS) > 0 {
		elem.defaultNS = b.defaultNS[len(b.defaultNS)-1]
	}
	b.stack = append(b.stack, elem)
}

func (b *Builder) endElement(ev xmlstream.EndElement) (*Element, error) {
	if len(b.stack) == 0 {
		return nil, ErrImproperNesting
	}
	elem := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	if len(b.defaultNS) > 0 {
		b.defaultNS = b.defaultNS[:len(b.defaultNS)-1]
	}
	if elem.Name != ev.Name.Local || elem.Space != ev.Name.Space {
		return nil, ErrImproperNesting
	}
	if len(b.stack) > 0 {
		parent := b.stack[len(b.stack)-1]
		parent.Children = append(parent.Children, elem)
		return nil, nil
	}
	return elem, nil
}
