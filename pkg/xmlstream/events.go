package xmlstream

// Name identifies an element or attribute. Space holds the resolved
// namespace URI; an empty Space means the name is in no namespace.
type Name struct {
	Space string
	Local string
}

// Event is a single parsed XML construct. The concrete types are
// StartElement, EndElement, CharData, CDATA, Comment and ProcInst;
// consumers distinguish them with a type switch.
type Event interface {
	event()
}

// StartElement reports an opening (or self-closing) tag. Attr maps each
// resolved attribute name to its unescaped value; namespace declarations
// appear in the map like any other attribute, keyed in the xmlns namespace.
type StartElement struct {
	Name   Name
	Prefix string
	Attr   map[Name]string
}

// EndElement reports a closing tag. Self-closing tags produce an
// EndElement immediately after their StartElement.
type EndElement struct {
	Name   Name
	Prefix string
}

// CharData is unescaped character data between tags.
type CharData string

// CDATA is the verbatim body of a CDATA section.
type CDATA string

// Comment is the body of a comment, without the surrounding markers.
type Comment string

// ProcInst is the full body of a processing instruction, target included.
type ProcInst string

func (StartElement) event() {}
func (EndElement) event()   {}
func (CharData) event()     {}
func (CDATA) event()        {}
func (Comment) event()      {}
func (ProcInst) event()     {}
