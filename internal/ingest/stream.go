package ingest

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

const maxLineBytes = 1 << 20

// Line is one record read from a stream together with its 1-based position.
// Err is set when the record could not be decoded; other lines are unaffected.
type Line struct {
	Number int
	Record Record
	Err    error
}

// ReadAll reads every record from r. The input may be a single JSON object,
// a JSON array of objects, or newline-delimited JSON. Blank lines and lines
// starting with '#' are skipped.
func ReadAll(r io.Reader) ([]Line, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, nil
	case trimmed[0] == '[':
		return readArray(trimmed)
	case trimmed[0] == '{' && gjson.ValidBytes(trimmed):
		// a single, possibly pretty-printed, object
		rec, err := Decode(trimmed)
		return []Line{{Number: 1, Record: rec, Err: err}}, nil
	}
	return readLines(trimmed)
}

func readArray(data []byte) ([]Line, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrMalformedJSON
	}
	var lines []Line
	gjson.ParseBytes(data).ForEach(func(_, value gjson.Result) bool {
		rec, err := Decode([]byte(value.Raw))
		lines = append(lines, Line{Number: len(lines) + 1, Record: rec, Err: err})
		return true
	})
	return lines, nil
}

func readLines(data []byte) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	n := 0
	for scanner.Scan() {
		n++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		rec, err := Decode(line)
		lines = append(lines, Line{Number: n, Record: rec, Err: err})
	}
	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("scanning input: %w", err)
	}
	return lines, nil
}
