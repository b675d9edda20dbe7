package xmldom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/xmldom/pkg/xmlstream"
)

func TestRenderElement(t *testing.T) {
	elem := NewElement("a", "", nil)
	assert.Equal(t, "<a/>", elem.String())

	elem = NewElement("a", "", map[Name]string{{Local: "href"}: "http://example.org"})
	assert.Equal(t, "<a href='http://example.org'/>", elem.String())

	elem = NewElement("a", "", nil)
	elem.AppendChild(NewElement("b", "", nil))
	assert.Equal(t, "<a><b/></a>", elem.String())

	elem = NewElement("a", "", map[Name]string{{Local: "href"}: "http://example.org"})
	elem.AppendChild(NewElement("b", "", nil))
	assert.Equal(t, "<a href='http://example.org'><b/></a>", elem.String())
}

func TestRenderAttributeEscaping(t *testing.T) {
	elem := NewElement("a", "", map[Name]string{{Local: "title"}: "it's <b> & \"q\""})
	assert.Equal(t, "<a title='it&apos;s &lt;b&gt; &amp; &quot;q&quot;'/>", elem.String())
}

func TestRenderAttributeOrderStable(t *testing.T) {
	elem := NewElement("a", "", map[Name]string{
		{Local: "b"}: "2",
		{Local: "a"}: "1",
		{Local: "c"}: "3",
	})
	assert.Equal(t, "<a a='1' b='2' c='3'/>", elem.String())
}

func TestRenderDefaultNamespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "root declaration", input: "<a xmlns='urn:test'/>"},
		{name: "nested override", input: "<a xmlns='urn:test'><b xmlns='urn:toast'/></a>"},
		{name: "nested cancel", input: "<a xmlns='urn:x'><b xmlns=''/></a>"},
		{name: "inherited not repeated", input: "<a xmlns='urn:x'><b/></a>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elem, err := ParseString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.input, elem.String())
		})
	}
}

func TestRenderSyntheticDefaultNamespace(t *testing.T) {
	elem := NewElement("a", "urn:test", map[Name]string{{Local: "href"}: "http://example.org"})
	assert.Equal(t, "<a xmlns='urn:test' href='http://example.org'/>", elem.String())
}

func TestRenderPrefixed(t *testing.T) {
	elem, err := ParseString("<foo:a xmlns:foo='urn:foo'/>")
	require.NoError(t, err)
	assert.Equal(t, "<foo:a xmlns:foo='urn:foo'/>", elem.String())
}

func TestRenderPrefixedWithChildren(t *testing.T) {
	input := "<foo:a xmlns:foo='urn:foo'><foo:b>x</foo:b></foo:a>"
	elem, err := ParseString(input)
	require.NoError(t, err)
	assert.Equal(t, input, elem.String())
}

func TestRenderDefinedPrefix(t *testing.T) {
	builder := NewBuilder()
	builder.DefinePrefix("p", "urn:p")

	_, err := builder.HandleEvent(xmlstream.StartElement{
		Name: xmlstream.Name{Space: "urn:p", Local: "a"},
	})
	require.NoError(t, err)
	root, err := builder.HandleEvent(xmlstream.EndElement{
		Name: xmlstream.Name{Space: "urn:p", Local: "a"},
	})
	require.NoError(t, err)
	require.NotNil(t, root)
	assert.Equal(t, "<p:a/>", root.String())
}

func TestRenderTextEscaped(t *testing.T) {
	elem := NewElement("a", "", nil)
	elem.AppendText("1 < 2 & 3 > 2")
	assert.Equal(t, "<a>1 &lt; 2 &amp; 3 &gt; 2</a>", elem.String())
}

func TestRenderVerbatimNodes(t *testing.T) {
	elem := NewElement("a", "", nil)
	elem.AppendCDATA("<raw & unescaped>").
		AppendComment("a comment").
		AppendProcInst("xml version='1.0'")
	assert.Equal(t, "<a><![CDATA[<raw & unescaped>]]><!--a comment--><?xml version='1.0'?></a>", elem.String())
}

func TestNodeStrings(t *testing.T) {
	assert.Equal(t, "some text", CharData("some text").String())
	assert.Equal(t, "a&lt;b", CharData("a<b").String())
	assert.Equal(t, "<![CDATA[some text]]>", CDATA("some text").String())
	assert.Equal(t, "<!--some text-->", Comment("some text").String())
	assert.Equal(t, "<?xml version='1.0'?>", ProcInst("xml version='1.0'").String())
}

func TestRenderUnboundPrefixPanics(t *testing.T) {
	elem := &Element{Name: "a", Space: "urn:nowhere"}
	assert.Panics(t, func() {
		_ = elem.String()
	})
}
