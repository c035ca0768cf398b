package command

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ScriptSeparator is the line that divides commands in a script file
const ScriptSeparator = "---"

// ScanScript calls fn with each command block of r, in order. Blank blocks
// are skipped. It stops early when fn returns false.
func ScanScript(r io.Reader, fn func(text string) bool) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var block []string
	flush := func() bool {
		text := strings.TrimSpace(strings.Join(block, "\n"))
		block = block[:0]
		if text == "" {
			return true
		}
		return fn(text)
	}
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == ScriptSeparator {
			if !flush() {
				return nil
			}
			continue
		}
		block = append(block, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	flush()
	return nil
}

// ReadScript returns every command block of r
func ReadScript(r io.Reader) ([]string, error) {
	var out []string
	err := ScanScript(r, func(text string) bool {
		out = append(out, text)
		return true
	})
	return out, err
}

// Recorder writes submitted command text to a script file that ScanScript
// can play back later
type Recorder struct {
	Count int

	file   *os.File
	writer *bufio.Writer
}

// NewRecorder creates (or truncates) the script file at path
func NewRecorder(path string) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating recording: %w", err)
	}
	return &Recorder{file: f, writer: bufio.NewWriter(f)}, nil
}

// Record appends one command block
func (r *Recorder) Record(text string) error {
	if r.Count > 0 {
		if _, err := r.writer.WriteString(ScriptSeparator + "\n"); err != nil {
			return err
		}
	}
	if _, err := r.writer.WriteString(strings.TrimSpace(text) + "\n"); err != nil {
		return err
	}
	r.Count++
	return r.writer.Flush()
}

// Close flushes and closes the file
func (r *Recorder) Close() error {
	if err := r.writer.Flush(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}
