package excise

import "strings"

// NamePlaceholder is substituted with the declaration name when rendering.
const NamePlaceholder = "{name}"

// legacyPlaceholder is accepted for templates written for the older script.
const legacyPlaceholder = "{viewmodel_name}"

// DefaultTemplate points readers at the declaration's new file.
const DefaultTemplate = `// MARK: - View Model
// Note: {name} has been moved to Architecture/ViewModels/{name}.swift
// This provides better separation of concerns and follows Clean Architecture principles
`

// Replacement is the block inserted where a declaration used to be.
type Replacement struct {
	Template string
}

// DefaultReplacement returns a Replacement using DefaultTemplate.
func DefaultReplacement() Replacement {
	return Replacement{Template: DefaultTemplate}
}

// Render substitutes name into the template.
func (r Replacement) Render(name string) string {
	out := strings.ReplaceAll(r.Template, NamePlaceholder, name)
	return strings.ReplaceAll(out, legacyPlaceholder, name)
}
