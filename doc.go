// Package xmldom builds namespace-aware XML element trees from the event
// stream produced by pkg/xmlstream and renders them back to XML text.
//
// Parsing is incremental: a Builder folds one event at a time and yields a
// completed tree whenever a root element closes, so a single stream may
// carry several sibling roots. ParseString and Parse wrap the common case
// of tokenizing and building in one call.
package xmldom
