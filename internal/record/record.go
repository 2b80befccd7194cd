// Package record defines the invocation record exchanged between the
// gpu_burn runner and the epilog parser. The JSON field names are a wire
// contract shared with existing epilog hooks and must not change.
package record

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// InvocationRecord describes one gpu_burn invocation: what was requested,
// what the binary printed, and how it exited.
type InvocationRecord struct {
	// TimeSecs is a float because compatible producers may write the
	// duration as either an integer or a fractional number of seconds.
	TimeSecs  float64  `json:"gpu_burn_time"`
	Arguments []string `json:"gpu_burn_arguments"`
	Stdout    string   `json:"stdout"`
	Stderr    string   `json:"stderr"`
	// Returncode is the binary's exit status. A timed-out run reports 0
	// with a diagnostic Stderr; consumers that must tell the cases apart
	// have to inspect Stderr.
	Returncode int `json:"returncode"`
}

// Encode writes r as a single JSON object. A nil Arguments slice is
// emitted as an empty array so the field is always a sequence.
func (r *InvocationRecord) Encode(w io.Writer) error {
	out := *r
	if out.Arguments == nil {
		out.Arguments = []string{}
	}
	if err := json.NewEncoder(w).Encode(&out); err != nil {
		return fmt.Errorf("encoding invocation record: %w", err)
	}
	return nil
}

// Decode reads a full JSON object from rd. It fails when the content is
// not valid JSON or when the returncode field is absent; the epilog has no
// meaningful exit status without it. The returncode is coerced to an
// integer, so a producer that writes 1.0 still yields exit code 1.
func Decode(rd io.Reader) (*InvocationRecord, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("reading invocation record: %w", err)
	}

	var raw struct {
		TimeSecs   float64      `json:"gpu_burn_time"`
		Arguments  []string     `json:"gpu_burn_arguments"`
		Stdout     string       `json:"stdout"`
		Stderr     string       `json:"stderr"`
		Returncode *json.Number `json:"returncode"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing invocation record: %w", err)
	}
	if raw.Returncode == nil {
		return nil, fmt.Errorf("parsing invocation record: missing returncode field")
	}
	code, err := coerceInt(*raw.Returncode)
	if err != nil {
		return nil, fmt.Errorf("parsing invocation record: returncode: %w", err)
	}

	rec := &InvocationRecord{
		TimeSecs:   raw.TimeSecs,
		Arguments:  raw.Arguments,
		Stdout:     raw.Stdout,
		Stderr:     raw.Stderr,
		Returncode: code,
	}
	if rec.Arguments == nil {
		rec.Arguments = []string{}
	}
	return rec, nil
}

// coerceInt converts a JSON number to an int, truncating a fractional
// value the way int() would.
func coerceInt(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// EscapeLine renders r as one JSON line with every double quote prefixed
// by a backslash, so the line can be interpolated into a double-quoted
// shell string. This escapes exactly the one reserved character; it is not
// a general shell-quoting scheme.
func (r *InvocationRecord) EscapeLine() (string, error) {
	var b strings.Builder
	if err := r.Encode(&b); err != nil {
		return "", err
	}
	line := strings.TrimSuffix(b.String(), "\n")
	return strings.ReplaceAll(line, `"`, `\"`), nil
}
