package llm

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/Surya-sourav/glass/sse"
)

// ErrNoStreamBody is reported when a pump is started without a body.
var ErrNoStreamBody = errors.New("llm: expected stream body but got nil")

// ChunkParser extracts content from one stream payload and reports whether
// the stream is complete.
type ChunkParser func(data []byte) (content string, done bool, err error)

// PumpSSE reads Server-Sent Events from body and emits parsed chunks.
// The body is closed when the stream ends.
func PumpSSE(ctx context.Context, body io.ReadCloser, parse ChunkParser) <-chan StreamChunk {
	ch := make(chan StreamChunk)
	go func() {
		defer close(ch)
		if body == nil {
			send(ctx, ch, StreamChunk{Err: ErrNoStreamBody})
			return
		}
		reader := sse.NewReader(body)
		defer func() { _ = reader.Close() }()

		for {
			event, err := reader.Next()
			if err != nil {
				if err != io.EOF {
					send(ctx, ch, StreamChunk{Err: err})
				}
				return
			}
			if !forward(ctx, ch, []byte(event.Data), parse) {
				return
			}
		}
	}()
	return ch
}

// PumpNDJSON reads newline-delimited JSON from body and emits parsed chunks.
// The body is closed when the stream ends.
func PumpNDJSON(ctx context.Context, body io.ReadCloser, parse ChunkParser) <-chan StreamChunk {
	ch := make(chan StreamChunk)
	go func() {
		defer close(ch)
		if body == nil {
			send(ctx, ch, StreamChunk{Err: ErrNoStreamBody})
			return
		}
		defer func() { _ = body.Close() }()

		scanner := bufio.NewScanner(body)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			if !forward(ctx, ch, line, parse) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			send(ctx, ch, StreamChunk{Err: err})
		}
	}()
	return ch
}

// forward parses one payload and sends it. It returns false when the pump
// must stop.
func forward(ctx context.Context, ch chan<- StreamChunk, data []byte, parse ChunkParser) bool {
	content, done, err := parse(data)
	if err != nil {
		send(ctx, ch, StreamChunk{Err: err})
		return false
	}
	if content == "" && !done {
		return true
	}
	if !send(ctx, ch, StreamChunk{Content: content, Done: done}) {
		return false
	}
	return !done
}

func send(ctx context.Context, ch chan<- StreamChunk, chunk StreamChunk) bool {
	select {
	case ch <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}
