// Package sse implements the Server-Sent-Events wire format: frame encoding
// for the transport side and an incremental parser for consumers.
package sse

import (
	"bytes"
	"fmt"
	"strings"
)

// Frame is one SSE frame: an optional event name and a data payload.
type Frame struct {
	Event string
	Data  string
}

// Encode renders a frame in wire format, one event per frame, frames
// separated by a blank line.
func (f Frame) Encode() string {
	var b strings.Builder
	if f.Event != "" {
		b.WriteString("event: ")
		b.WriteString(f.Event)
		b.WriteString("\n")
	}
	for _, line := range strings.Split(f.Data, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

// Parser reassembles SSE frames from a byte stream delivered in arbitrary
// chunks. It keeps a carry-over buffer across feeds and splits on blank-line
// frame delimiters only, so a frame's fields parse identically no matter how
// many network reads contributed to it. One Parser per connection; no state
// is shared across connections.
type Parser struct {
	buf    bytes.Buffer
	heldCR bool
}

// NewParser creates an empty parser.
func NewParser() *Parser {
	return &Parser{}
}

// Feed appends a chunk and returns every complete frame it terminated.
// A partially received frame stays buffered until a later Feed completes it.
func (p *Parser) Feed(chunk []byte) ([]Frame, error) {
	p.buf.Write(p.normalize(chunk))

	var frames []Frame
	for {
		raw := p.buf.Bytes()
		idx := bytes.Index(raw, []byte("\n\n"))
		if idx < 0 {
			return frames, nil
		}

		frameBytes := make([]byte, idx)
		copy(frameBytes, raw[:idx])
		// Consume the frame plus the blank-line delimiter.
		p.buf.Next(idx + 2)

		frame, ok, err := parseFrame(frameBytes)
		if err != nil {
			return frames, err
		}
		if ok {
			frames = append(frames, frame)
		}
	}
}

// normalize rewrites \r\n line endings to \n so that delimiter detection only
// ever looks for \n\n, even when a producer mixes ending styles within one
// frame. A chunk ending in \r is held back until the next chunk reveals
// whether it starts a \r\n pair.
func (p *Parser) normalize(chunk []byte) []byte {
	if p.heldCR {
		chunk = append([]byte{'\r'}, chunk...)
		p.heldCR = false
	}
	if n := len(chunk); n > 0 && chunk[n-1] == '\r' {
		p.heldCR = true
		chunk = chunk[:n-1]
	}
	return bytes.ReplaceAll(chunk, []byte("\r\n"), []byte("\n"))
}

// parseFrame extracts event/data fields from one raw frame. Comment lines
// (leading colon) and unknown fields are ignored per the SSE spec. Frames
// with no data field (e.g. keep-alive comments) report ok=false.
func parseFrame(raw []byte) (Frame, bool, error) {
	var frame Frame
	var dataLines []string

	for _, line := range strings.Split(string(raw), "\n") {
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		name, value, found := strings.Cut(line, ":")
		if !found {
			return Frame{}, false, fmt.Errorf("malformed SSE line %q", line)
		}
		value = strings.TrimPrefix(value, " ")
		switch name {
		case "event":
			frame.Event = value
		case "data":
			dataLines = append(dataLines, value)
		}
	}

	if len(dataLines) == 0 {
		return Frame{}, false, nil
	}
	frame.Data = strings.Join(dataLines, "\n")
	return frame, true, nil
}
