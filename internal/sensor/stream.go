package sensor

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"sync"

	"lazytimer/internal/core/shake"

	"go.uber.org/zap"
)

// Stream reads line-delimited JSON samples from a reader such as a file,
// a named pipe or stdin. One reader goroutine serves every Samples call in
// turn, so a stream can be resubscribed without losing lines.
type Stream struct {
	reader io.Reader
	logger *zap.Logger

	once    sync.Once
	decoded chan shake.Sample
	// parked holds samples taken by a subscriber whose context ended
	// before it could hand them on.
	parked chan shake.Sample
}

const parkedBuffer = 8

// NewStream creates a stream source.
func NewStream(reader io.Reader, logger *zap.Logger) *Stream {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stream{
		reader:  reader,
		logger:  logger,
		decoded: make(chan shake.Sample),
		parked:  make(chan shake.Sample, parkedBuffer),
	}
}

// Samples implements shake.Source. The channel closes at end of input or
// when ctx ends; a later call continues from the next unread sample.
func (stream *Stream) Samples(ctx context.Context) (<-chan shake.Sample, error) {
	stream.once.Do(func() {
		go stream.read()
	})

	out := make(chan shake.Sample)
	go func() {
		defer close(out)
		for ctx.Err() == nil {
			select {
			case <-ctx.Done():
				return
			case sample := <-stream.parked:
				if !stream.deliver(ctx, out, sample) {
					return
				}
			case sample, ok := <-stream.decoded:
				if !ok {
					stream.flush(ctx, out)
					return
				}
				if !stream.deliver(ctx, out, sample) {
					return
				}
			}
		}
	}()
	return out, nil
}

func (stream *Stream) read() {
	defer close(stream.decoded)
	scanner := bufio.NewScanner(stream.reader)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		sample, err := DecodeSample(raw)
		if err != nil {
			stream.logger.Warn("skipping sample", zap.Int("line", line), zap.Error(err))
			continue
		}
		stream.decoded <- sample
	}
	if err := scanner.Err(); err != nil {
		stream.logger.Error("sample stream failed", zap.Error(err))
	}
}

// deliver hands sample to out, parking it for the next subscriber when ctx
// ends first.
func (stream *Stream) deliver(ctx context.Context, out chan<- shake.Sample, sample shake.Sample) bool {
	if ctx.Err() != nil {
		stream.park(sample)
		return false
	}
	select {
	case out <- sample:
		return true
	case <-ctx.Done():
		stream.park(sample)
		return false
	}
}

// flush hands on parked samples once the input has ended.
func (stream *Stream) flush(ctx context.Context, out chan<- shake.Sample) {
	for {
		select {
		case sample := <-stream.parked:
			if !stream.deliver(ctx, out, sample) {
				return
			}
		default:
			return
		}
	}
}

func (stream *Stream) park(sample shake.Sample) {
	select {
	case stream.parked <- sample:
	default:
		stream.logger.Warn("sample dropped, no subscriber")
	}
}
