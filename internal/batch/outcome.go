package batch

import (
	"encoding/json"
	"errors"

	"github.com/jsnanigans/excise/pkg/excise"
)

// Kind classifies what happened to one document.
type Kind int

const (
	// Removed means the declaration was replaced (or would be, on a dry run).
	Removed Kind = iota
	// DeclarationNotFound means the opening token was not near the hint.
	DeclarationNotFound
	// MarkerNotFound means no marker comment sat above the declaration.
	MarkerNotFound
	// BlockEndNotFound means the brace scan never found the end of the block.
	BlockEndNotFound
	// IOFailure means the document could not be read or written.
	IOFailure
)

var kindNames = map[Kind]string{
	Removed:             "removed",
	DeclarationNotFound: "declaration_not_found",
	MarkerNotFound:      "marker_not_found",
	BlockEndNotFound:    "block_end_not_found",
	IOFailure:           "io_failure",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// MarshalText encodes the kind by name in JSON reports.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// kindOf maps an engine error to its outcome kind. Anything the engine did not
// produce is an I/O failure.
func kindOf(err error) Kind {
	switch {
	case errors.Is(err, excise.ErrDeclarationNotFound):
		return DeclarationNotFound
	case errors.Is(err, excise.ErrMarkerNotFound):
		return MarkerNotFound
	case errors.Is(err, excise.ErrBlockEndNotFound):
		return BlockEndNotFound
	default:
		return IOFailure
	}
}

// Outcome is the result for one worklist entry.
type Outcome struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Hint int    `json:"hint"`
	Kind Kind   `json:"kind"`

	// Set when Kind is Removed. Start is 1-based, End inclusive, matching
	// what an editor shows.
	StartLine int `json:"start_line,omitempty"`
	EndLine   int `json:"end_line,omitempty"`

	LinesBefore int `json:"lines_before,omitempty"`
	LinesAfter  int `json:"lines_after,omitempty"`

	// Written is false for dry runs and failures.
	Written bool `json:"written"`

	// Err is the underlying cause for failures.
	Err error `json:"-"`

	// Preview renders the change, filled on dry runs when requested.
	Preview string `json:"preview,omitempty"`
}

// OK reports whether the declaration was removed.
func (o Outcome) OK() bool { return o.Kind == Removed }

// MarshalJSON adds the error text, which error values don't encode on their own.
func (o Outcome) MarshalJSON() ([]byte, error) {
	type plain Outcome
	out := struct {
		plain
		Error string `json:"error,omitempty"`
	}{plain: plain(o)}
	if o.Err != nil {
		out.Error = o.Err.Error()
	}
	return json.Marshal(out)
}
