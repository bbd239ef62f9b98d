package excise

import "strings"

// SplitLines splits text into lines, each keeping its terminator ("\n" or
// "\r\n"). A final line without a terminator is kept as is; empty text yields
// no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := make([]string, 0, strings.Count(text, "\n")+1)
	for len(text) > 0 {
		nl := strings.IndexByte(text, '\n')
		if nl == -1 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:nl+1])
		text = text[nl+1:]
	}
	return lines
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "")
}
