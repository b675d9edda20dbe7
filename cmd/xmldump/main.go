// Command xmldump parses XML documents and prints either the re-rendered
// element trees or the raw tokenizer event stream.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/jacoelho/xmldom"
	"github.com/jacoelho/xmldom/pkg/xmlstream"
)

func main() {
	os.Exit(run())
}

func run() int {
	var events bool

	cmd := &cobra.Command{
		Use:           "xmldump [file]",
		Short:         "Parse an XML document and dump its structure",
		Long:          "Parses the given file (or standard input) and prints every root element re-rendered as XML. With --events the tokenizer event stream is printed instead.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			if events {
				return dumpEvents(cmd.OutOrStdout(), in)
			}
			return dumpTrees(cmd.OutOrStdout(), in)
		},
	}
	cmd.Flags().BoolVar(&events, "events", false, "print the tokenizer event stream instead of element trees")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "xmldump: %v\n", err)
		return 1
	}
	return 0
}

func dumpTrees(out io.Writer, in io.Reader) error {
	roots, err := xmldom.Parse(in)
	if err != nil {
		return err
	}
	for _, root := range roots {
		if _, err := fmt.Fprintln(out, root.String()); err != nil {
			return err
		}
	}
	return nil
}

func dumpEvents(out io.Writer, in io.Reader) error {
	parser := xmlstream.NewParser()
	buf := make([]byte, 4096)
	var carry []byte
	for {
		n, readErr := in.Read(buf)
		if n > 0 {
			data := append(carry, buf[:n]...)
			cut := completeRunes(data)
			parser.Feed(string(data[:cut]))
			carry = append(carry[:0], data[cut:]...)
			if err := printEvents(out, parser); err != nil {
				return err
			}
		}
		if errors.Is(readErr, io.EOF) {
			if len(carry) > 0 {
				parser.Feed(string(carry))
				return printEvents(out, parser)
			}
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}

// completeRunes returns the length of the longest prefix of data ending on
// a rune boundary.
func completeRunes(data []byte) int {
	end := len(data)
	for i := 1; i <= utf8.UTFMax && i <= end; i++ {
		if utf8.RuneStart(data[end-i]) {
			if utf8.FullRune(data[end-i:]) {
				return end
			}
			return end - i
		}
	}
	return end
}

func printEvents(out io.Writer, parser *xmlstream.Parser) error {
	for {
		ev, err := parser.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := printEvent(out, ev); err != nil {
			return err
		}
	}
}

func printEvent(out io.Writer, ev xmlstream.Event) error {
	var err error
	switch ev := ev.(type) {
	case xmlstream.StartElement:
		_, err = fmt.Fprintf(out, "start %s %+v\n", formatName(ev.Name), ev.Attr)
	case xmlstream.EndElement:
		_, err = fmt.Fprintf(out, "end %s\n", formatName(ev.Name))
	case xmlstream.CharData:
		_, err = fmt.Fprintf(out, "chars %q\n", string(ev))
	case xmlstream.CDATA:
		_, err = fmt.Fprintf(out, "cdata %q\n", string(ev))
	case xmlstream.Comment:
		_, err = fmt.Fprintf(out, "comment %q\n", string(ev))
	case xmlstream.ProcInst:
		_, err = fmt.Fprintf(out, "pi %q\n", string(ev))
	}
	return err
}

func formatName(name xmlstream.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return "{" + name.Space + "}" + name.Local
}
