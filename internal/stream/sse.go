package stream

import (
	"bytes"
	"io"

	"github.com/r3labs/sse/v2"
)

const maxEventSize = 4 << 20

type event struct {
	name string
	data []byte
}

// readEvents reads a text/event-stream body and calls fn for every event
// carrying data, in order. It returns io.EOF when the body ends.
func readEvents(r io.Reader, fn func(event)) error {
	reader := sse.NewEventStreamReader(r, maxEventSize)

	for {
		raw, err := reader.ReadEvent()
		if err != nil {
			return err
		}
		if ev, ok := parseEvent(raw); ok {
			fn(ev)
		}
	}
}

// parseEvent reads the event and data fields of one raw block. Comment lines
// and unknown fields are skipped; a block without data is not an event.
func parseEvent(raw []byte) (event, bool) {
	var (
		ev   event
		data bytes.Buffer
		seen bool
	)

	for _, line := range bytes.FieldsFunc(raw, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if line[0] == ':' {
			continue
		}

		field, value := line, []byte(nil)
		if i := bytes.IndexByte(line, ':'); i >= 0 {
			field, value = line[:i], bytes.TrimPrefix(line[i+1:], []byte(" "))
		}

		switch string(field) {
		case "event":
			ev.name = string(value)
		case "data":
			if seen {
				data.WriteByte('\n')
			}
			data.Write(value)
			seen = true
		}
	}

	if !seen {
		return event{}, false
	}
	if ev.name == "" {
		ev.name = "message"
	}
	ev.data = data.Bytes()
	return ev, true
}
