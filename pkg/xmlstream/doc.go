// Package xmlstream provides a streaming, namespace-resolving XML tokenizer.
// Input is fed incrementally with Feed and consumed as discrete events with
// Next, so documents can be parsed without buffering them whole.
package xmlstream
