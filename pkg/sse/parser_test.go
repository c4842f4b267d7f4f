package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserSingleFrame(t *testing.T) {
	p := NewParser()
	frames, err := p.Feed([]byte("event: tool_call.start\ndata: {\"id\":\"tc-1\"}\n\n"))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, "tool_call.start", frames[0].Event)
	assert.Equal(t, `{"id":"tc-1"}`, frames[0].Data)
}

func TestParserArbitraryChunkBoundaries(t *testing.T) {
	wire := "event: message.delta\ndata: {\"text\":\"hel\"}\n\nevent: message.delta\ndata: {\"text\":\"lo\"}\n\n"

	// Feed one byte at a time; frame boundaries must not depend on read
	// boundaries.
	p := NewParser()
	var frames []Frame
	for i := 0; i < len(wire); i++ {
		got, err := p.Feed([]byte{wire[i]})
		require.NoError(t, err)
		frames = append(frames, got...)
	}

	require.Len(t, frames, 2)
	assert.Equal(t, `{"text":"hel"}`, frames[0].Data)
	assert.Equal(t, `{"text":"lo"}`, frames[1].Data)
}

func TestParserMultipleFramesInOneChunk(t *testing.T) {
	p := NewParser()
	frames, err := p.Feed([]byte("event: run.start\ndata: {}\n\nevent: done\ndata: {}\n\n"))
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, "run.start", frames[0].Event)
	assert.Equal(t, "done", frames[1].Event)
}

func TestParserCRLFDelimiters(t *testing.T) {
	p := NewParser()
	frames, err := p.Feed([]byte("event: status\r\ndata: {\"message\":\"ok\"}\r\n\r\n"))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, "status", frames[0].Event)
	assert.Equal(t, `{"message":"ok"}`, frames[0].Data)
}

func TestParserMixedLineEndings(t *testing.T) {
	// A frame whose field lines use \n but whose final line ends in \r\n
	// terminates on the resulting \n\r\n sequence.
	p := NewParser()
	frames, err := p.Feed([]byte("event: status\r\ndata: {\"message\":\"ok\"}\n\r\nevent: done\r\ndata: {}\n\n"))
	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, "status", frames[0].Event)
	assert.Equal(t, `{"message":"ok"}`, frames[0].Data)
	assert.Equal(t, "done", frames[1].Event)
}

func TestParserCRSplitAcrossChunks(t *testing.T) {
	p := NewParser()
	frames, err := p.Feed([]byte("event: status\r\ndata: {}\r"))
	require.NoError(t, err)
	assert.Empty(t, frames)

	frames, err = p.Feed([]byte("\n\r\n"))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, "status", frames[0].Event)
}

func TestParserIgnoresCommentsAndKeepAlives(t *testing.T) {
	p := NewParser()
	frames, err := p.Feed([]byte(": keep-alive\n\nevent: status\ndata: {}\n: mid-frame comment\n\n"))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, "status", frames[0].Event)
}

func TestParserMultiLineData(t *testing.T) {
	p := NewParser()
	frames, err := p.Feed([]byte("data: line one\ndata: line two\n\n"))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, "line one\nline two", frames[0].Data)
}

func TestParserIncompleteFrameStaysBuffered(t *testing.T) {
	p := NewParser()
	frames, err := p.Feed([]byte("event: run.start\ndata: {}"))
	require.NoError(t, err)
	assert.Empty(t, frames)

	frames, err = p.Feed([]byte("\n\n"))
	require.NoError(t, err)
	require.Len(t, frames, 1)
}

func TestEncodeRoundTrip(t *testing.T) {
	in := Frame{Event: "tool_call.complete", Data: `{"id":"tc-9"}`}
	p := NewParser()
	frames, err := p.Feed([]byte(in.Encode()))
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, in, frames[0])
}
