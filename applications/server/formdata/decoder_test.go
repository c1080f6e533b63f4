package formdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func body(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n"))
}

func TestDecodeTextAndFile(t *testing.T) {
	payload := "\x89PNG\x00\x01\x02\x03\xff\xfe"
	buf := body(
		"--XYZ",
		`Content-Disposition: form-data; name="title"`,
		"",
		"Hello",
		"--XYZ",
		`Content-Disposition: form-data; name="file"; filename="a.png"`,
		"Content-Type: image/png",
		"",
		payload,
		"--XYZ--",
		"",
	)

	parts := Decode(buf, "XYZ")
	require.Len(t, parts, 2)

	assert.Nil(t, parts[0].Filename)
	assert.Nil(t, parts[0].ContentType)
	assert.Equal(t, "Hello", string(parts[0].Data))
	assert.Equal(t, "title", parts[0].Name())
	assert.False(t, parts[0].IsFile())

	require.NotNil(t, parts[1].Filename)
	assert.Equal(t, "a.png", *parts[1].Filename)
	require.NotNil(t, parts[1].ContentType)
	assert.Equal(t, "image/png", *parts[1].ContentType)
	assert.Len(t, parts[1].Data, 10)
	assert.Equal(t, []byte(payload), parts[1].Data)
	assert.Equal(t, "file", parts[1].Name())
	assert.True(t, parts[1].IsFile())
}

func TestDecodeFileFieldsInOrder(t *testing.T) {
	buf := body(
		"--b",
		`Content-Disposition: form-data; name="f1"; filename="one.jpg"`,
		"",
		"1",
		"--b",
		`Content-Disposition: form-data; name="f2"; filename="two.jpg"`,
		"",
		"2",
		"--b",
		`Content-Disposition: form-data; name="f3"; filename="three.jpg"`,
		"",
		"3",
		"--b--",
	)

	parts := Decode(buf, "b")
	require.Len(t, parts, 3)
	for i, want := range []string{"one.jpg", "two.jpg", "three.jpg"} {
		require.NotNil(t, parts[i].Filename)
		assert.Equal(t, want, *parts[i].Filename)
	}
}

func TestDecodeNoBoundary(t *testing.T) {
	assert.Empty(t, Decode([]byte("plain body without delimiters"), "XYZ"))
	assert.Empty(t, Decode(nil, "XYZ"))
	assert.Empty(t, Decode(body("--XYZ", "a: b", "", "x"), ""))
}

func TestDecodeSingleBoundary(t *testing.T) {
	buf := body(
		"--XYZ",
		`Content-Disposition: form-data; name="file"; filename="a.png"`,
		"",
		"data",
	)

	assert.Empty(t, Decode(buf, "XYZ"))
}

func TestDecodeSkipsPartWithoutSeparator(t *testing.T) {
	buf := body(
		"--XYZ",
		`Content-Disposition: form-data; name="broken"`,
		"no blank line here",
		"--XYZ",
		`Content-Disposition: form-data; name="file"; filename="ok.txt"`,
		"",
		"fine",
		"--XYZ--",
	)

	parts := Decode(buf, "XYZ")
	require.Len(t, parts, 1)
	assert.Equal(t, "ok.txt", *parts[0].Filename)
	assert.Equal(t, "fine", string(parts[0].Data))
}

func TestDecodeDoesNotModifyBuffer(t *testing.T) {
	buf := body(
		"--XYZ",
		`Content-Disposition: form-data; name="file"; filename="a.bin"`,
		"",
		"abc",
		"--XYZ--",
	)
	orig := append([]byte(nil), buf...)

	parts := Decode(buf, "XYZ")
	require.Len(t, parts, 1)
	parts[0].Data[0] = 'z'

	assert.Equal(t, orig, buf)
}

func TestDecodePartTrailingCRLF(t *testing.T) {
	part, ok := DecodePart([]byte("\r\nA: b\r\n\r\npayload\r\n"))
	require.True(t, ok)
	assert.Equal(t, "payload", string(part.Data))

	part, ok = DecodePart([]byte("\r\nA: b\r\n\r\npayload"))
	require.True(t, ok)
	assert.Equal(t, "payload", string(part.Data))

	// stripped at most once
	part, ok = DecodePart([]byte("\r\nA: b\r\n\r\npayload\r\n\r\n"))
	require.True(t, ok)
	assert.Equal(t, "payload\r\n", string(part.Data))

	part, ok = DecodePart([]byte("\r\nA: b\r\n\r\nx"))
	require.True(t, ok)
	assert.Equal(t, "x", string(part.Data))

	part, ok = DecodePart([]byte("\r\nA: b\r\n\r\n"))
	require.True(t, ok)
	assert.Empty(t, part.Data)
}

func TestDecodePartNoSeparator(t *testing.T) {
	_, ok := DecodePart([]byte("--\r\n"))
	assert.False(t, ok)

	_, ok = DecodePart(nil)
	assert.False(t, ok)
}

func TestDecodePartHeaders(t *testing.T) {
	span := []byte("\r\n" +
		"Content-Type: text/plain\r\n" +
		"X-Custom:   spaced\r\n" +
		"not a header line\r\n" +
		": missing name\r\n" +
		"content-type: text/html\r\n" +
		"\r\nbody")

	part, ok := DecodePart(span)
	require.True(t, ok)

	assert.Equal(t, map[string]string{
		"content-type": "text/html",
		"x-custom":     "spaced",
	}, part.Headers)
	require.NotNil(t, part.ContentType)
	assert.Equal(t, "text/html", *part.ContentType)
}

func TestDecodePartFilename(t *testing.T) {
	part, ok := DecodePart([]byte("\r\nContent-Disposition: form-data; name=\"file\"; filename=\"photo.png\"\r\n\r\nx"))
	require.True(t, ok)
	require.NotNil(t, part.Filename)
	assert.Equal(t, "photo.png", *part.Filename)

	part, ok = DecodePart([]byte("\r\nContent-Disposition: form-data; name=\"file\"\r\n\r\nx"))
	require.True(t, ok)
	assert.Nil(t, part.Filename)

	part, ok = DecodePart([]byte("\r\nContent-Type: image/png\r\n\r\nx"))
	require.True(t, ok)
	assert.Nil(t, part.Filename)
}

func TestBoundary(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        string
		ok          bool
	}{
		{"plain", "multipart/form-data; boundary=----WebKitFormBoundary7MA4YWxk", "----WebKitFormBoundary7MA4YWxk", true},
		{"quoted", `multipart/form-data; boundary="abc:def"`, "abc:def", true},
		{"missing", "multipart/form-data", "", false},
		{"empty", "multipart/form-data; boundary=", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Boundary(tt.contentType)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
