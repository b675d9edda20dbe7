package xmlstream

import (
	"io"
	"unicode/utf8"

	"github.com/jacoelho/xmldom/pkg/xmlentity"
)

type state int

const (
	stateOutsideTag state = iota
	stateTagOpened
	stateInProcessingInstructions
	stateInTagName
	stateInCloseTagName
	stateInTag
	stateInAttrName
	stateInAttrValue
	stateExpectDelimiter
	stateExpectClose
	stateExpectSpaceOrClose
	stateInExclamationMark
	stateInCDATAOpening
	stateInCDATA
	stateInCommentOpening
	stateInComment1
	stateInComment2
	stateInDoctype
)

// rawAttr is a collected attribute whose prefix has not been resolved yet.
type rawAttr struct {
	name  qname
	value string
}

// Parser tokenizes XML fed to it one rune at a time. It is a pull source:
// Feed queues input and Next drains at most one event per call. The zero
// value is not usable; construct with NewParser.
type Parser struct {
	data       []rune
	head       int
	buf        []byte
	namespaces []map[string]string
	attributes []rawAttr
	name       qname
	attr       qname
	st         state
	delim      rune
	level      int
	line       int
	col        int
	failed     bool
}

// NewParser returns a parser with the permanent xml and xmlns bindings in
// its bottom namespace scope.
func NewParser() *Parser {
	base := map[string]string{
		"xml":   XMLNamespace,
		"xmlns": XMLNSNamespace,
	}
	return &Parser{
		namespaces: []map[string]string{base},
		line:       1,
	}
}

// Feed appends input to the parser's queue. It may be called between Next
// calls to stream a document in chunks; chunk boundaries may fall anywhere,
// even inside a tag or entity reference.
func (p *Parser) Feed(data string) {
	p.data = append(p.data, []rune(data)...)
}

// Next returns the next event. It returns io.EOF once all fed input has
// been consumed without completing another event; feeding more input lets
// Next resume exactly where it stopped. After a *SyntaxError the parser is
// permanently failed and every further call reports io.EOF.
func (p *Parser) Next() (Event, error) {
	if p.failed {
		return nil, io.EOF
	}
	for p.head < len(p.data) {
		c := p.data[p.head]
		p.head++
		if c == '\n' {
			p.line++
			p.col = 0
		} else {
			p.col++
		}
		ev, err := p.parseRune(c)
		if err != nil {
			p.failed = true
			return nil, err
		}
		if ev != nil {
			return ev, nil
		}
	}
	p.data = p.data[:0]
	p.head = 0
	return nil, io.EOF
}

// Position reports the line and column of the last consumed rune. The line
// starts at 1; the column restarts at 0 after every newline.
func (p *Parser) Position() (line, column int) {
	return p.line, p.col
}

func (p *Parser) parseRune(c rune) (Event, error) {
	switch p.st {
	case stateOutsideTag:
		return p.outsideTag(c)
	case stateTagOpened:
		return p.tagOpened(c)
	case stateInProcessingInstructions:
		return p.inProcessingInstructions(c)
	case stateInTagName:
		return p.inTagName(c)
	case stateInCloseTagName:
		return p.inCloseTagName(c)
	case stateInTag:
		return p.inTag(c)
	case stateInAttrName:
		return p.inAttrName(c)
	case stateInAttrValue:
		return p.inAttrValue(c)
	case stateExpectDelimiter:
		return p.expectDelimiter(c)
	case stateExpectClose:
		return p.expectClose(c)
	case stateExpectSpaceOrClose:
		return p.expectSpaceOrClose(c)
	case stateInExclamationMark:
		return p.inExclamationMark(c)
	case stateInCDATAOpening:
		return p.inCDATAOpening(c)
	case stateInCDATA:
		return p.inCDATA(c)
	case stateInCommentOpening:
		return p.inCommentOpening(c)
	case stateInComment1:
		return p.inComment1(c)
	case stateInComment2:
		return p.inComment2(c)
	case stateInDoctype:
		return p.inDoctype(c)
	}
	return nil, nil
}

func (p *Parser) syntaxError(err error) error {
	return &SyntaxError{Line: p.line, Column: p.col, Err: err}
}

func (p *Parser) takeBuf() string {
	s := string(p.buf)
	p.buf = p.buf[:0]
	return s
}

func (p *Parser) bufferRune(c rune) {
	p.buf = utf8.AppendRune(p.buf, c)
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// Outside any tag or other construct.
// '<' moves to TagOpened, emitting CharData for any buffered text.
func (p *Parser) outsideTag(c rune) (Event, error) {
	switch {
	case c == '<' && len(p.buf) == 0:
		p.st = stateTagOpened
	case c == '<':
		p.st = stateTagOpened
		text, err := xmlentity.Unescape(p.takeBuf())
		if err != nil {
			return nil, p.syntaxError(err)
		}
		return CharData(text), nil
	default:
		p.bufferRune(c)
	}
	return nil, nil
}

// Immediately after '<', deciding what construct follows.
func (p *Parser) tagOpened(c rune) (Event, error) {
	switch c {
	case '?':
		p.st = stateInProcessingInstructions
	case '!':
		p.st = stateInExclamationMark
	case '/':
		p.st = stateInCloseTagName
	default:
		p.bufferRune(c)
		p.st = stateInTagName
	}
	return nil, nil
}

// Inside a processing instruction, scanning for the closing "?>".
func (p *Parser) inProcessingInstructions(c rune) (Event, error) {
	switch {
	case c == '?':
		p.level = 1
		p.buf = append(p.buf, '?')
	case c == '>' && p.level == 1:
		p.level = 0
		p.st = stateOutsideTag
		p.buf = p.buf[:len(p.buf)-1]
		return ProcInst(p.takeBuf()), nil
	default:
		p.level = 0
		p.bufferRune(c)
	}
	return nil, nil
}

// Inside an opening tag name.
// '/' or '>' finalizes an attribute-less start tag; whitespace moves to
// attribute scanning. Either way a fresh namespace scope is pushed.
func (p *Parser) inTagName(c rune) (Event, error) {
	switch {
	case c == '/' || c == '>':
		n := parseQName(p.takeBuf())
		ns, err := p.resolveTagName(n)
		if err != nil {
			return nil, err
		}
		p.pushScope()
		if c == '/' {
			p.name = n
			p.st = stateExpectClose
		} else {
			p.st = stateOutsideTag
		}
		return StartElement{
			Name:   Name{Space: ns, Local: n.local},
			Prefix: n.prefix,
			Attr:   make(map[Name]string),
		}, nil
	case isSpace(c):
		p.pushScope()
		p.name = parseQName(p.takeBuf())
		p.st = stateInTag
	default:
		p.bufferRune(c)
	}
	return nil, nil
}

// Inside a closing tag name. The element's namespace scope is popped once
// the name is complete.
func (p *Parser) inCloseTagName(c rune) (Event, error) {
	switch {
	case c == '>' || isSpace(c):
		n := parseQName(p.takeBuf())
		ns, err := p.resolveTagName(n)
		if err != nil {
			return nil, err
		}
		p.popScope()
		if c == '>' {
			p.st = stateOutsideTag
		} else {
			p.st = stateExpectSpaceOrClose
		}
		return EndElement{Name: Name{Space: ns, Local: n.local}, Prefix: n.prefix}, nil
	default:
		p.bufferRune(c)
	}
	return nil, nil
}

// Inside a start tag between attributes.
// '/' or '>' finalizes the tag: the element's own prefix and every
// collected attribute prefix are resolved against the current scopes.
func (p *Parser) inTag(c rune) (Event, error) {
	switch {
	case c == '/' || c == '>':
		raw := p.attributes
		p.attributes = nil
		n := p.name
		ns, err := p.resolveTagName(n)
		if err != nil {
			return nil, err
		}

		attrs := make(map[Name]string, len(raw))
		for _, a := range raw {
			var attrNS string
			if a.name.prefix != "" {
				attrNS = p.namespaceForPrefix(a.name.prefix)
				if attrNS == "" {
					return nil, p.syntaxError(ErrUnboundAttrPrefix)
				}
			}
			key := Name{Space: attrNS, Local: a.name.local}
			if _, dup := attrs[key]; dup {
				return nil, p.syntaxError(ErrDuplicateAttr)
			}
			attrs[key] = a.value
		}

		if c == '/' {
			p.st = stateExpectClose
		} else {
			p.st = stateOutsideTag
		}
		return StartElement{
			Name:   Name{Space: ns, Local: n.local},
			Prefix: n.prefix,
			Attr:   attrs,
		}, nil
	case isSpace(c):
	default:
		p.bufferRune(c)
		p.st = stateInAttrName
	}
	return nil, nil
}

// Inside an attribute name, up to '='. Whitespace inside the name is only
// tolerated immediately before the '='.
func (p *Parser) inAttrName(c rune) (Event, error) {
	switch {
	case c == '=':
		p.level = 0
		p.attr = parseQName(p.takeBuf())
		p.st = stateExpectDelimiter
	case isSpace(c):
		p.level = 1
	case p.level == 0:
		p.bufferRune(c)
	default:
		return nil, p.syntaxError(errSpaceInAttrName)
	}
	return nil, nil
}

// Between '=' and the opening quote of an attribute value.
func (p *Parser) expectDelimiter(c rune) (Event, error) {
	switch {
	case c == '"' || c == '\'':
		p.delim = c
		p.st = stateInAttrValue
	case isSpace(c):
	default:
		return nil, p.syntaxError(errAttrDelimiter)
	}
	return nil, nil
}

// Inside an attribute value, up to the matching delimiter. Completed
// xmlns and xmlns:prefix attributes bind into the innermost scope so that
// later names on the same tag resolve against them.
func (p *Parser) inAttrValue(c rune) (Event, error) {
	if c != p.delim {
		p.bufferRune(c)
		return nil, nil
	}
	p.delim = 0
	p.st = stateInTag
	n := p.attr
	value, err := xmlentity.Unescape(p.takeBuf())
	if err != nil {
		return nil, p.syntaxError(err)
	}

	if len(p.namespaces) > 0 {
		scope := p.namespaces[len(p.namespaces)-1]
		switch {
		case n.prefix == "" && n.local == "xmlns":
			scope[""] = value
		case n.prefix == "xmlns":
			scope[n.local] = value
		}
	}

	p.attributes = append(p.attributes, rawAttr{name: n, value: value})
	return nil, nil
}

// Expecting the '>' of a self-closing tag; nothing else is legal here.
func (p *Parser) expectClose(c rune) (Event, error) {
	if c != '>' {
		return nil, p.syntaxError(errExpectedTagClose)
	}
	p.st = stateOutsideTag
	n := p.name
	ns, err := p.resolveTagName(n)
	if err != nil {
		return nil, err
	}
	p.popScope()
	return EndElement{Name: Name{Space: ns, Local: n.local}, Prefix: n.prefix}, nil
}

// After a closing tag name, expecting whitespace or '>'.
func (p *Parser) expectSpaceOrClose(c rune) (Event, error) {
	switch {
	case isSpace(c):
	case c == '>':
		p.st = stateOutsideTag
	default:
		return nil, p.syntaxError(errExpectedCloseOrWS)
	}
	return nil, nil
}

// After "<!", deciding between comment, CDATA and DOCTYPE.
func (p *Parser) inExclamationMark(c rune) (Event, error) {
	switch c {
	case '-':
		p.st = stateInCommentOpening
	case '[':
		p.st = stateInCDATAOpening
	case 'D':
		p.st = stateInDoctype
	default:
		return nil, p.syntaxError(errMalformed)
	}
	return nil, nil
}

// Matching the literal "CDATA[" of a CDATA opening.
func (p *Parser) inCDATAOpening(c rune) (Event, error) {
	const pattern = "CDATA["
	if c != rune(pattern[p.level]) {
		return nil, p.syntaxError(errCDATAOpening)
	}
	p.level++
	if p.level == len(pattern) {
		p.level = 0
		p.st = stateInCDATA
	}
	return nil, nil
}

// Inside a CDATA section. level counts the current run of ']' characters;
// '>' after at least two of them closes the section.
func (p *Parser) inCDATA(c rune) (Event, error) {
	switch {
	case c == ']':
		p.buf = append(p.buf, ']')
		p.level++
	case c == '>' && p.level >= 2:
		p.st = stateOutsideTag
		p.level = 0
		p.buf = p.buf[:len(p.buf)-2]
		return CDATA(p.takeBuf()), nil
	default:
		p.bufferRune(c)
		p.level = 0
	}
	return nil, nil
}

// After "<!-", requiring the second '-' of a comment opening.
func (p *Parser) inCommentOpening(c rune) (Event, error) {
	if c != '-' {
		return nil, p.syntaxError(errCommentOpening)
	}
	p.st = stateInComment1
	p.level = 0
	return nil, nil
}

// Inside a comment body, counting consecutive dashes.
func (p *Parser) inComment1(c rune) (Event, error) {
	if c == '-' {
		p.level++
	} else {
		p.level = 0
	}
	if p.level == 2 {
		p.level = 0
		p.st = stateInComment2
	}
	p.bufferRune(c)
	return nil, nil
}

// After "--" inside a comment; only '>' may follow.
func (p *Parser) inComment2(c rune) (Event, error) {
	if c != '>' {
		return nil, p.syntaxError(errCommentDashes)
	}
	p.st = stateOutsideTag
	p.buf = p.buf[:len(p.buf)-2]
	return Comment(p.takeBuf()), nil
}

// Inside a DOCTYPE declaration: match "OCTYPE", require one whitespace,
// then discard up to the closing '>'. Produces no event.
func (p *Parser) inDoctype(c rune) (Event, error) {
	const pattern = "OCTYPE"
	switch {
	case p.level < len(pattern):
		if c != rune(pattern[p.level]) {
			return nil, p.syntaxError(errInvalidDoctype)
		}
		p.level++
	case p.level == len(pattern):
		if !isSpace(c) {
			return nil, p.syntaxError(errInvalidDoctype)
		}
		p.level++
	case c == '>':
		p.level = 0
		p.st = stateOutsideTag
	}
	return nil, nil
}
