package excise

import (
	"errors"
	"fmt"
)

// DefaultMarker is the sentinel comment expected just above a declaration.
const DefaultMarker = "// MARK: - View Model"

// DefaultKeyword is the keyword that, followed by a space and the name, opens a declaration.
const DefaultKeyword = "class"

// Window sizes, in lines, for the forward (declaration) and backward (marker) searches.
const (
	forwardWindow  = 5
	backwardWindow = 5
)

var (
	// ErrDeclarationNotFound means no line in the forward window contains the opening token.
	ErrDeclarationNotFound = errors.New("declaration not found")
	// ErrMarkerNotFound means no marker comment precedes the opening token within the backward window.
	ErrMarkerNotFound = errors.New("marker comment not found")
	// ErrBlockEndNotFound means the brace balance never reached its terminating condition.
	ErrBlockEndNotFound = errors.New("end of declaration not found")
)

// Bounds describes a located declaration block. Indices are 0-based.
type Bounds struct {
	DeclLine int // Line holding the opening token
	Start    int // First removed line (the marker), inclusive
	End      int // One past the last removed line
}

// Removed returns the number of lines covered by the block.
func (b Bounds) Removed() int { return b.End - b.Start }

// LocateError wraps one of the sentinel errors with the search that failed.
type LocateError struct {
	Name string
	From int // First index searched
	To   int // Last index searched
	Err  error
}

func (e *LocateError) Error() string {
	if e.To < e.From {
		return fmt.Sprintf("%s: %v (line %d is past the end of the document)", e.Name, e.Err, e.From+1)
	}
	return fmt.Sprintf("%s: %v (searched lines %d-%d)", e.Name, e.Err, e.From+1, e.To+1)
}

func (e *LocateError) Unwrap() error { return e.Err }
