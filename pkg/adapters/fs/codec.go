package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/actionlog/pkg/core"
)

// Codec defines how a single entry maps to one line of the log file.
type Codec interface {
	// Encode converts the entry to a line without the trailing newline.
	// The result never contains a newline.
	Encode(e core.Entry) []byte
	// Decode parses a line (without newline) into an entry.
	Decode(line []byte) (core.Entry, error)
}

// JSONCodec stores entries as JSON Lines:
//
//	{"timestamp":"2024-03-01T09:30:00+01:00","content":"standup","tags":["work"]}
//
// Timestamps are RFC 3339 with the local offset, so lines sort by time
// within one timezone and stay unambiguous across zones.
type JSONCodec struct{}

// NewJSONCodec creates the default codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// jsonLine is the on-disk shape. Pointer fields let Decode tell a missing
// field apart from an empty one.
type jsonLine struct {
	Timestamp *string   `json:"timestamp"`
	Content   *string   `json:"content"`
	Tags      *[]string `json:"tags"`
}

func (c *JSONCodec) Encode(e core.Entry) []byte {
	ts := e.Timestamp.In(time.Local).Format(time.RFC3339)
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	content := e.Content

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Strings and string slices always marshal.
	_ = enc.Encode(jsonLine{Timestamp: &ts, Content: &content, Tags: &tags})
	return bytes.TrimRight(buf.Bytes(), "\n")
}

func (c *JSONCodec) Decode(line []byte) (core.Entry, error) {
	line = bytes.TrimRight(line, "\r")

	var payload jsonLine
	if err := json.Unmarshal(line, &payload); err != nil {
		return core.Entry{}, fmt.Errorf("invalid json: %w", err)
	}

	switch {
	case payload.Timestamp == nil:
		return core.Entry{}, errors.New("missing field \"timestamp\"")
	case payload.Content == nil:
		return core.Entry{}, errors.New("missing field \"content\"")
	case payload.Tags == nil:
		return core.Entry{}, errors.New("missing field \"tags\"")
	}

	ts, err := time.Parse(time.RFC3339, *payload.Timestamp)
	if err != nil {
		return core.Entry{}, fmt.Errorf("invalid timestamp %q: %w", *payload.Timestamp, err)
	}

	return core.Entry{
		Timestamp: ts.In(time.Local),
		Content:   *payload.Content,
		Tags:      *payload.Tags,
	}, nil
}
