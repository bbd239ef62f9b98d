package excise

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp is the kind of a DiffLine.
type DiffOp int

const (
	DiffContext DiffOp = iota // Unchanged line
	DiffRemoved               // Present only in the old document
	DiffAdded                 // Present only in the new document
)

// DiffLine is one line of a line-mode diff. OldLine and NewLine are 1-based and
// zero when the line does not exist on that side.
type DiffLine struct {
	Op      DiffOp
	OldLine int
	NewLine int
	Text    string
}

// LineDiff computes a line-mode diff between two documents.
func LineDiff(oldLines, newLines []string) []DiffLine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	// Elements may hold several physical lines (the inserted replacement does).
	oldText := SplitLines(JoinLines(oldLines))
	newText := SplitLines(JoinLines(newLines))

	enc := newLineEncoder()
	oldRunes, ok1 := enc.encode(oldText)
	newRunes, ok2 := enc.encode(newText)

	if !ok1 || !ok2 {
		// Too many distinct lines to give each its own rune.
		return coarseDiff(oldText, newText)
	}
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)

	var out []DiffLine
	oldNo, newNo := 1, 1
	for _, d := range diffs {
		for _, r := range d.Text {
			text := enc.lines[enc.index(r)]
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				out = append(out, DiffLine{Op: DiffContext, OldLine: oldNo, NewLine: newNo, Text: text})
				oldNo++
				newNo++
			case diffmatchpatch.DiffDelete:
				out = append(out, DiffLine{Op: DiffRemoved, OldLine: oldNo, Text: text})
				oldNo++
			case diffmatchpatch.DiffInsert:
				out = append(out, DiffLine{Op: DiffAdded, NewLine: newNo, Text: text})
				newNo++
			}
		}
	}
	return out
}

// Distinct lines are numbered into the Unicode private use areas: first the
// BMP block, then planes 15 and 16. None of these runes need surrogates, so
// each line is exactly one rune in the character diff.
const (
	bmpPrivateBase   = 0xE000
	bmpPrivateSize   = 0xF900 - 0xE000
	planePrivateBase = 0xF0000
	planePrivateSize = 0x10FFFE - 0xF0000
)

// lineEncoder maps each distinct line to its own rune.
type lineEncoder struct {
	runes map[string]rune
	lines []string
}

func newLineEncoder() *lineEncoder {
	return &lineEncoder{runes: make(map[string]rune)}
}

// encode returns one rune per line, or false once the private areas run out.
func (e *lineEncoder) encode(lines []string) ([]rune, bool) {
	out := make([]rune, 0, len(lines))
	for _, line := range lines {
		r, ok := e.runes[line]
		if !ok {
			k := len(e.lines)
			switch {
			case k < bmpPrivateSize:
				r = rune(bmpPrivateBase + k)
			case k < bmpPrivateSize+planePrivateSize:
				r = rune(planePrivateBase + k - bmpPrivateSize)
			default:
				return nil, false
			}
			e.runes[line] = r
			e.lines = append(e.lines, line)
		}
		out = append(out, r)
	}
	return out, true
}

// index is the inverse of the numbering in encode.
func (e *lineEncoder) index(r rune) int {
	if r >= planePrivateBase {
		return int(r-planePrivateBase) + bmpPrivateSize
	}
	return int(r - bmpPrivateBase)
}

// coarseDiff reports every old line removed and every new line added.
func coarseDiff(oldText, newText []string) []DiffLine {
	out := make([]DiffLine, 0, len(oldText)+len(newText))
	for i, text := range oldText {
		out = append(out, DiffLine{Op: DiffRemoved, OldLine: i + 1, Text: text})
	}
	for i, text := range newText {
		out = append(out, DiffLine{Op: DiffAdded, NewLine: i + 1, Text: text})
	}
	return out
}

// FormatDiff renders diff lines with "-"/"+"/" " prefixes, keeping at most
// context unchanged lines around each change. Skipped runs are shown as a
// single "@@ -old +new @@" header for the next visible line.
func FormatDiff(diff []DiffLine, context int) string {
	visible := make([]bool, len(diff))
	for i, d := range diff {
		if d.Op == DiffContext {
			continue
		}
		lo, hi := i-context, i+context
		if lo < 0 {
			lo = 0
		}
		if hi > len(diff)-1 {
			hi = len(diff) - 1
		}
		for j := lo; j <= hi; j++ {
			visible[j] = true
		}
	}

	var builder strings.Builder
	for i, d := range diff {
		if !visible[i] {
			continue
		}
		if i == 0 || !visible[i-1] {
			fmt.Fprintf(&builder, "@@ -%d +%d @@\n", hunkLine(diff, i, true), hunkLine(diff, i, false))
		}
		switch d.Op {
		case DiffRemoved:
			builder.WriteByte('-')
		case DiffAdded:
			builder.WriteByte('+')
		default:
			builder.WriteByte(' ')
		}
		builder.WriteString(strings.TrimRight(d.Text, "\r\n"))
		builder.WriteByte('\n')
	}
	return builder.String()
}

// hunkLine finds the first line number on one side at or after position i.
func hunkLine(diff []DiffLine, i int, old bool) int {
	for ; i < len(diff); i++ {
		if old && diff[i].OldLine != 0 {
			return diff[i].OldLine
		}
		if !old && diff[i].NewLine != 0 {
			return diff[i].NewLine
		}
	}
	return 0
}
