package coreconf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Delimiter separates the key from the value on every persisted line. Values
// may not contain it; there is no escaping.
const Delimiter = "=>"

// maxLineSize bounds a single persisted line. Long bsc_path values fit well
// within it.
const maxLineSize = 1024 * 1024

// FormatLine renders e as a single persisted line without a trailing newline.
func FormatLine(e Entry) string {
	return string(e.Key()) + Delimiter + e.Value()
}

// Encode writes entries to w, one key=>value line each, after a comment
// header naming the configuration. Values containing the delimiter or a
// line break are rejected before anything is written.
func Encode(w io.Writer, name string, entries []Entry) error {
	for _, e := range entries {
		v := e.Value()
		if strings.Contains(v, Delimiter) || strings.ContainsAny(v, "\r\n") {
			return &ValueError{Key: string(e.Key()), Value: v, Reason: "cannot be persisted on a single " + Delimiter + " line"}
		}
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "# autocore configuration %s\n", name); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(bw, FormatLine(e)); err != nil {
			return fmt.Errorf("writing %s line: %w", e.Key(), err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing configuration: %w", err)
	}
	return nil
}

// Decode reads persisted lines from r and returns their entries in file
// order. Blank lines and lines starting with '#' are skipped. Decoding stops
// at the first malformed line, unknown key, invalid value or repeated key.
func Decode(r io.Reader) ([]Entry, error) {
	var entries []Entry
	seen := make(map[Key]int)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(strings.TrimRight(scanner.Text(), "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, err := SplitLine(line)
		if err != nil {
			var le *LineError
			if errors.As(err, &le) {
				le.Line = lineNum
			}
			return nil, err
		}

		e, err := ParseEntry(key, value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if prev, dup := seen[e.Key()]; dup {
			return nil, &LineError{
				Line:   lineNum,
				Text:   line,
				Reason: fmt.Sprintf("key %q already set on line %d", e.Key(), prev),
			}
		}
		seen[e.Key()] = lineNum
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &LineError{
				Line:   lineNum + 1,
				Reason: fmt.Sprintf("line exceeds %d bytes", maxLineSize),
			}
		}
		return nil, fmt.Errorf("scanning configuration: %w", err)
	}
	return entries, nil
}

// SplitLine splits a persisted line into key and value. The line must
// contain the delimiter exactly once.
func SplitLine(line string) (key, value string, err error) {
	parts := strings.Split(line, Delimiter)
	if len(parts) != 2 {
		return "", "", &LineError{
			Text:   line,
			Reason: fmt.Sprintf("expected key%svalue, found %d part(s)", Delimiter, len(parts)),
		}
	}
	key = strings.TrimSpace(parts[0])
	if key == "" {
		return "", "", &LineError{Text: line, Reason: "empty key"}
	}
	return key, strings.TrimSpace(parts[1]), nil
}
