// Package frontmatter splits and parses the YAML header block that precedes
// a document body.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a front
// matter delimiter but never closed it.
var ErrMissingClosingDelimiter = errors.New("front matter start delimiter found but closing delimiter is missing")

// Split separates the `---` delimited YAML header from the body.
//
// If the document does not start with a delimiter, had is false and body is
// the full input. An opened but unterminated header is an error; silently
// treating it as body text would publish the raw header.
func Split(content []byte) (header []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]

	// Empty header block: `---` immediately followed by `---`.
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	header = rest[:idx+len(nl)]
	body = rest[idx+len(closeSeq):]
	return header, body, true, nil
}

// Parse decodes a raw YAML header (without delimiters) into a field map.
func Parse(header []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(header)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(header, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Join reassembles a document from a header map and body, emitting YAML
// between `---` delimiters. Used by scaffolding, not by the build itself.
func Join(fields map[string]any, body []byte) ([]byte, error) {
	header, err := yaml.Marshal(fields)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.WriteString("---\n")
	out.Write(header)
	out.WriteString("---\n")
	out.Write(body)
	return out.Bytes(), nil
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}
