package excise

import (
	"strings"
)

// ANSI color codes
const (
	red   = "\033[31m"
	green = "\033[32m"
	reset = "\033[0m"
)

// Visualize renders the document with the block described by b highlighted in
// red and the replacement that would take its place in green. Bounds that do
// not fit the document produce the document unchanged.
func Visualize(lines []string, b Bounds, replacement string) string {
	if b.Start < 0 || b.End > len(lines) || b.Start >= b.End {
		return JoinLines(lines)
	}

	var builder strings.Builder
	builder.WriteString(JoinLines(lines[:b.Start]))

	for _, line := range lines[b.Start:b.End] {
		writeColored(&builder, red, line)
	}
	for _, line := range SplitLines(replacement) {
		writeColored(&builder, green, line)
	}

	builder.WriteString(JoinLines(lines[b.End:]))
	return builder.String()
}

// writeColored wraps line in color, keeping the terminator outside the escape
// so terminals don't carry the color onto the next line.
func writeColored(builder *strings.Builder, color, line string) {
	body := strings.TrimRight(line, "\r\n")
	builder.WriteString(color)
	builder.WriteString(body)
	builder.WriteString(reset)
	builder.WriteString(line[len(body):])
}
