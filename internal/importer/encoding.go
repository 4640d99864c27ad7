package importer

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when Options.Encoding is empty.
const DefaultEncoding = "utf-8"

var encodings = map[string]encoding.Encoding{
	"utf-8":        unicode.UTF8BOM,
	"utf8":         unicode.UTF8BOM,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
}

// LookupEncoding returns the encoding registered under name (case-insensitive).
func LookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		name = DefaultEncoding
	}
	enc, ok := encodings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// decode wraps r so that it yields UTF-8. A leading UTF-8 BOM is dropped.
func decode(r io.Reader, name string) (io.Reader, error) {
	enc, err := LookupEncoding(name)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
