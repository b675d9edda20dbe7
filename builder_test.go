package xmldom

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/xmldom/pkg/xmlstream"
)

// buildAll runs the full pipeline over input and returns every completed
// root.
func buildAll(input string) ([]*Element, error) {
	parser := xmlstream.NewParser()
	builder := NewBuilder()
	parser.Feed(input)
	var roots []*Element
	for {
		ev, err := parser.Next()
		if errors.Is(err, io.EOF) {
			return roots, nil
		}
		if err != nil {
			return roots, err
		}
		elem, err := builder.HandleEvent(ev)
		if err != nil {
			return roots, err
		}
		if elem != nil {
			roots = append(roots, elem)
		}
	}
}

func TestBuilderSingleRoot(t *testing.T) {
	roots, err := buildAll("<a><b/>text<c/></a>")
	require.NoError(t, err)
	require.Len(t, roots, 1)

	root := roots[0]
	assert.Equal(t, "a", root.Name)
	require.Len(t, root.Children, 3)
	assert.Equal(t, "b", root.Children[0].(*Element).Name)
	assert.Equal(t, CharData("text"), root.Children[1])
	assert.Equal(t, "c", root.Children[2].(*Element).Name)
}

func TestBuilderChildNodeKinds(t *testing.T) {
	roots, err := buildAll("<a><?target data?><![CDATA[raw]]><!--note-->chars</a>")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, []Node{
		ProcInst("target data"),
		CDATA("raw"),
		Comment("note"),
		CharData("chars"),
	}, roots[0].Children)
}

func TestBuilderSiblingRoots(t *testing.T) {
	roots, err := buildAll("<a/><b/>")
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "a", roots[0].Name)
	assert.Equal(t, "b", roots[1].Name)
}

func TestBuilderDropsTriviaOutsideRoot(t *testing.T) {
	roots, err := buildAll("<?xml version='1.0'?><!--prolog-->\n<a/>\n<!--trailing-->")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Empty(t, roots[0].Children)
}

func TestBuilderDefaultNamespace(t *testing.T) {
	roots, err := buildAll("<a xmlns='urn:x'><b/></a>")
	require.NoError(t, err)
	require.Len(t, roots, 1)

	root := roots[0]
	assert.Equal(t, "urn:x", root.Space)
	assert.Equal(t, "urn:x", root.defaultNS)

	b := root.Child("b", "urn:x")
	require.NotNil(t, b)
	assert.Equal(t, "urn:x", b.Space)
}

func TestBuilderDefaultNamespaceCancel(t *testing.T) {
	roots, err := buildAll("<a xmlns='urn:x'><b xmlns=''/></a>")
	require.NoError(t, err)
	require.Len(t, roots, 1)

	b := roots[0].Child("b", "")
	require.NotNil(t, b)
	assert.Equal(t, "", b.Space)
	assert.Equal(t, "", b.defaultNS)
}

func TestBuilderRecordsPrefixes(t *testing.T) {
	roots, err := buildAll("<foo:a xmlns:foo='urn:foo'/>")
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "foo", roots[0].prefixes["urn:foo"])
	assert.Equal(t, "xml", roots[0].prefixes[xmlstream.XMLNamespace])
}

func TestBuilderImproperNesting(t *testing.T) {
	_, err := buildAll("<a><b></a></b>")
	assert.ErrorIs(t, err, ErrImproperNesting)
}

func TestBuilderUnmatchedEnd(t *testing.T) {
	_, err := buildAll("</a>")
	assert.ErrorIs(t, err, ErrImproperNesting)
}

func TestBuilderNamespaceMismatchOnClose(t *testing.T) {
	builder := NewBuilder()
	_, err := builder.HandleEvent(xmlstream.StartElement{
		Name: xmlstream.Name{Space: "urn:one", Local: "a"},
	})
	require.NoError(t, err)
	_, err = builder.HandleEvent(xmlstream.EndElement{
		Name: xmlstream.Name{Space: "urn:two", Local: "a"},
	})
	assert.ErrorIs(t, err, ErrImproperNesting)
}

func TestBuilderReadyAfterRoot(t *testing.T) {
	builder := NewBuilder()
	parser := xmlstream.NewParser()
	parser.Feed("<a xmlns='urn:x'><b/></a>")

	var root *Element
	for root == nil {
		ev, err := parser.Next()
		require.NoError(t, err)
		root, err = builder.HandleEvent(ev)
		require.NoError(t, err)
	}
	assert.Equal(t, "a", root.Name)

	// A sibling root with different scoping starts clean.
	parser.Feed("<c/>")
	ev, err := parser.Next()
	require.NoError(t, err)
	_, err = builder.HandleEvent(ev)
	require.NoError(t, err)
	ev, err = parser.Next()
	require.NoError(t, err)
	sibling, err := builder.HandleEvent(ev)
	require.NoError(t, err)
	require.NotNil(t, sibling)
	assert.Equal(t, "c", sibling.Name)
	assert.Equal(t, "", sibling.Space)
	assert.Equal(t, "", sibling.defaultNS)
}

func TestBuilderSetDefaultNamespace(t *testing.T) {
	builder := NewBuilder()
	builder.SetDefaultNamespace("urn:pre")
	_, err := builder.HandleEvent(xmlstream.StartElement{
		Name: xmlstream.Name{Space: "urn:pre", Local: "a"},
	})
	require.NoError(t, err)
	root, err := builder.HandleEvent(xmlstream.EndElement{
		Name: xmlstream.Name{Space: "urn:pre", Local: "a"},
	})
	require.NoError(t, err)
	require.NotNil(t, root)
	assert.Equal(t, "urn:pre", root.defaultNS)
}
