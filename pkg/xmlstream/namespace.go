package xmlstream

import "strings"

// Common XML namespaces.
const (
	// XMLNamespace is permanently bound to the xml prefix.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
	// XMLNSNamespace is permanently bound to the xmlns prefix and keys
	// namespace declaration attributes.
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
)

// qname is a raw qualified name before namespace resolution.
// An empty prefix means the name is unprefixed.
type qname struct {
	prefix string
	local  string
}

func parseQName(s string) qname {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		return qname{prefix: s[:i], local: s[i+1:]}
	}
	return qname{local: s}
}

// pushScope opens a fresh namespace scope for the element being parsed.
func (p *Parser) pushScope() {
	p.namespaces = append(p.namespaces, make(map[string]string))
}

func (p *Parser) popScope() {
	if len(p.namespaces) == 0 {
		return
	}
	p.namespaces = p.namespaces[:len(p.namespaces)-1]
}

// namespaceForPrefix resolves a prefix against the scope stack, innermost
// scope first. A prefix bound to an empty URI resolves to no namespace,
// the same as a prefix bound nowhere; callers decide whether that is an
// error for an explicit prefix.
func (p *Parser) namespaceForPrefix(prefix string) string {
	for i := len(p.namespaces) - 1; i >= 0; i-- {
		if ns, ok := p.namespaces[i][prefix]; ok {
			return ns
		}
	}
	return ""
}

// resolveTagName resolves the namespace of an element name.
func (p *Parser) resolveTagName(n qname) (string, error) {
	ns := p.namespaceForPrefix(n.prefix)
	if n.prefix != "" && ns == "" {
		return "", p.syntaxError(ErrUnboundPrefix)
	}
	return ns, nil
}
