// Package formdata decodes fully buffered multipart/form-data bodies.
//
// The decoder scans the raw body for boundary delimiters with a literal byte
// search and does not depend on mime/multipart. It is stateless and safe for
// concurrent use.
package formdata

import (
	"bytes"
	"regexp"
	"strings"
)

var (
	headerSeparator = []byte("\r\n\r\n")
	crlf            = []byte("\r\n")

	headerLineRe = regexp.MustCompile(`^([^:]+):\s*(.+)$`)
	filenameRe   = regexp.MustCompile(`filename="([^"]+)"`)
)

// Part is one decoded segment of a multipart body.
type Part struct {
	// Headers maps lower-cased header names to raw values. Last occurrence wins.
	Headers map[string]string
	// Filename is nil for non-file fields.
	Filename *string
	// ContentType is the part's own content-type header, nil if absent.
	ContentType *string
	// Data is the payload with a single trailing CRLF removed.
	Data []byte
}

// Name returns the form field name from content-disposition, or "".
func (p Part) Name() string {
	for _, param := range strings.Split(p.Headers["content-disposition"], ";") {
		param = strings.TrimSpace(param)
		if v, ok := strings.CutPrefix(param, `name="`); ok {
			return strings.TrimSuffix(v, `"`)
		}
	}

	return ""
}

// IsFile reports whether the part carries a non-empty filename.
func (p Part) IsFile() bool {
	return p.Filename != nil && *p.Filename != ""
}

// Decode splits buffer into parts delimited by "--" + boundary.
//
// Every byte span between two consecutive delimiters is decoded with
// DecodePart; spans without a header/body separator, including the one
// after the closing delimiter, are dropped. Fewer than two delimiter
// occurrences yield an empty result. Content-Length headers are ignored.
// buffer is never modified and parts do not alias it.
func Decode(buffer []byte, boundary string) []Part {
	parts := make([]Part, 0)
	if boundary == "" {
		return parts
	}

	delim := []byte("--" + boundary)

	idx := bytes.Index(buffer, delim)
	for idx != -1 {
		start := idx + len(delim)

		next := bytes.Index(buffer[start:], delim)
		if next == -1 {
			break
		}
		next += start

		if part, ok := DecodePart(buffer[start:next]); ok {
			parts = append(parts, part)
		}

		idx = next
	}

	return parts
}

// DecodePart decodes the headers and body of a single part span. It reports
// false when span has no CRLFCRLF separator; malformed header lines are
// skipped.
func DecodePart(span []byte) (Part, bool) {
	sep := bytes.Index(span, headerSeparator)
	if sep == -1 {
		return Part{}, false
	}

	body := span[sep+len(headerSeparator):]
	// Only the last two bytes are inspected, so a binary payload that
	// genuinely ends in CRLF loses them.
	if bytes.HasSuffix(body, crlf) {
		body = body[:len(body)-len(crlf)]
	}

	headers := make(map[string]string)
	for _, line := range strings.Split(string(span[:sep]), "\r\n") {
		m := headerLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		headers[strings.ToLower(m[1])] = m[2]
	}

	part := Part{
		Headers: headers,
		Data:    bytes.Clone(body),
	}

	if m := filenameRe.FindStringSubmatch(headers["content-disposition"]); m != nil {
		filename := m[1]
		part.Filename = &filename
	}

	if ct, ok := headers["content-type"]; ok {
		part.ContentType = &ct
	}

	return part, true
}

// Boundary extracts the boundary parameter from a Content-Type header value.
// Everything after "boundary=" is returned verbatim; an optional pair of
// surrounding quotes is removed, as RFC 2046 allows quoted boundary values.
func Boundary(contentType string) (string, bool) {
	_, boundary, found := strings.Cut(contentType, "boundary=")
	if !found {
		return "", false
	}

	if len(boundary) >= 2 && boundary[0] == '"' && boundary[len(boundary)-1] == '"' {
		boundary = boundary[1 : len(boundary)-1]
	}

	return boundary, boundary != ""
}
