package executor

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

// Channel identifies the origin of a streamed output line.
type Channel int

const (
	// ChannelStdout is the standard output channel.
	ChannelStdout Channel = iota
	// ChannelStderr is the standard error channel.
	ChannelStderr
)

// String returns the channel name.
func (c Channel) String() string {
	if c == ChannelStderr {
		return "stderr"
	}
	return "stdout"
}

// Line is one streamed output line tagged with its channel of origin.
type Line struct {
	Channel Channel
	Text    string
}

// Sink receives streamed lines. The pump serializes calls, so a Sink
// does not need its own locking.
type Sink func(Line)

// maxLineBytes bounds a single scanned line. Build tools occasionally
// emit very long lines (compiler invocations); a line beyond this bound
// is reported truncated and the rest of the channel is discarded.
const maxLineBytes = 1 << 20

// truncatedMarker is emitted in place of a line that exceeded maxLineBytes.
const truncatedMarker = "...(output line truncated)"

// pumpStreams concurrently drains both output channels to the sink until
// each reaches end-of-stream. Draining concurrently is required: a child
// blocked writing to one full pipe while the parent reads only the other
// would deadlock. pumpStreams returns only after both channels are fully
// drained; the caller may then safely wait for process exit.
func pumpStreams(stdout, stderr io.Reader, sink Sink) {
	var mu sync.Mutex
	serialized := func(line Line) {
		mu.Lock()
		defer mu.Unlock()
		sink(line)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go drain(stdout, ChannelStdout, serialized, &wg)
	go drain(stderr, ChannelStderr, serialized, &wg)
	wg.Wait()
}

// drain forwards line-delimited output from one channel. Decoding is
// best-effort: invalid UTF-8 is replaced, never fatal.
func drain(r io.Reader, ch Channel, sink Sink, wg *sync.WaitGroup) {
	defer wg.Done()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		sink(Line{Channel: ch, Text: decodeText(scanner.Text())})
	}
	if scanner.Err() != nil {
		// A scan error (oversized line) stops the scanner short of
		// end-of-stream. The pipe must still be consumed to exhaustion:
		// a child blocked writing to a full pipe would otherwise never
		// exit, and the post-pump wait would hang.
		sink(Line{Channel: ch, Text: truncatedMarker})
		io.Copy(io.Discard, r) //nolint:errcheck // nothing left to report from a failed stream
	}
}

// decodeText replaces undecodable bytes with the Unicode replacement
// character.
func decodeText(s string) string {
	return strings.ToValidUTF8(s, "�")
}
