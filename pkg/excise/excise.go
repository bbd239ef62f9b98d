// Package excise removes a named declaration block from a line-oriented text
// document and puts a short replacement comment in its place.
//
// Matching is substring based and brace counting is lexical; nothing here
// parses the host language.
package excise

// Excise locates the declaration named name near the 1-based hint line and
// returns a new document with the block replaced by a single element holding
// the rendered replacement. The input slice is not modified.
func Excise(lines []string, name string, hint int, opts ...Option) ([]string, Bounds, error) {
	b, err := Locate(lines, name, hint, opts...)
	if err != nil {
		return nil, Bounds{}, err
	}
	o := newOptions(opts)

	out := make([]string, 0, len(lines)-b.Removed()+1)
	out = append(out, lines[:b.Start]...)
	out = append(out, o.replacement.Render(name)+"\n")
	out = append(out, lines[b.End:]...)
	return out, b, nil
}
