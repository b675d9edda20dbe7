package xmldom

import "github.com/jacoelho/xmldom/pkg/xmlentity"

// Node is one node of an element tree. The concrete types are *Element,
// CharData, CDATA, Comment and ProcInst.
type Node interface {
	node()
}

// CharData is text content; it is stored unescaped and escaped on render.
type CharData string

// CDATA is a CDATA section body, rendered verbatim inside its delimiters.
type CDATA string

// Comment is a comment body, rendered verbatim inside its delimiters.
type Comment string

// ProcInst is a processing instruction body, target included.
type ProcInst string

func (*Element) node() {}
func (CharData) node() {}
func (CDATA) node()    {}
func (Comment) node()  {}
func (ProcInst) node() {}

func (c CharData) String() string {
	return xmlentity.Escape(string(c))
}

func (c CDATA) String() string {
	return "<![CDATA[" + string(c) + "]]>"
}

func (c Comment) String() string {
	return "<!--" + string(c) + "-->"
}

func (p ProcInst) String() string {
	return "<?" + string(p) + "?>"
}
