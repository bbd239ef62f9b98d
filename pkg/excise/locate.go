package excise

import (
	"strings"
)

// Locate finds the declaration named name near the 1-based hint line and
// returns the block to remove. The hint only seeds the search: the opening
// token may sit anywhere from the hint line to five lines below it.
func Locate(lines []string, name string, hint int, opts ...Option) (Bounds, error) {
	o := newOptions(opts)
	token := o.openingToken(name)

	decl, from, to := findDeclaration(lines, token, hint)
	if decl == -1 {
		return Bounds{}, &LocateError{Name: name, From: from, To: to, Err: ErrDeclarationNotFound}
	}

	start, from, to := findMarker(lines, o.marker, decl)
	if start == -1 {
		return Bounds{}, &LocateError{Name: name, From: from, To: to, Err: ErrMarkerNotFound}
	}

	end := findBlockEnd(lines, token, start)
	if end == -1 {
		return Bounds{}, &LocateError{Name: name, From: start, To: len(lines) - 1, Err: ErrBlockEndNotFound}
	}

	return Bounds{DeclLine: decl, Start: start, End: end}, nil
}

// findDeclaration scans lines hint through hint+5 (1-based) for the first line
// containing token. It returns the index found, or -1, together with the
// index range that was searched.
func findDeclaration(lines []string, token string, hint int) (idx, from, to int) {
	if hint < 1 {
		hint = 1
	}
	from = hint - 1
	to = hint - 1 + forwardWindow
	if to > len(lines)-1 {
		to = len(lines) - 1
	}
	for i := from; i <= to; i++ {
		if strings.Contains(lines[i], token) {
			return i, from, to
		}
	}
	return -1, from, to
}

// findMarker walks backwards from decl, at most five lines, and returns the
// closest line containing marker, or -1.
func findMarker(lines []string, marker string, decl int) (idx, from, to int) {
	lowest := decl - backwardWindow
	if lowest < 0 {
		lowest = 0
	}
	for j := decl; j >= lowest; j-- {
		if strings.Contains(lines[j], marker) {
			return j, lowest, decl
		}
	}
	return -1, lowest, decl
}

// findBlockEnd counts braces from the opening-token line onward and returns
// the index just past the first line where the balance is zero and that line
// itself holds an opening brace. A line consisting only of closing braces
// never ends the block, even when it brings the balance back to zero; that is
// the rule existing worklists were written against, so it is kept as is.
//
// Counting is purely lexical: braces inside strings or comments are counted too.
func findBlockEnd(lines []string, token string, start int) int {
	balance := 0
	started := false
	for i := start; i < len(lines); i++ {
		line := lines[i]
		if strings.Contains(line, token) {
			started = true
		}
		if !started {
			continue
		}
		balance += strings.Count(line, "{")
		balance -= strings.Count(line, "}")
		if balance == 0 && strings.Contains(line, "{") {
			return i + 1
		}
	}
	return -1
}
