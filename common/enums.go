// Enums shared between the course model, renderer and configuration. Kept in
// a separate package so configuration does not depend on the course model.
package common

// Kind of editing control supplied by the course format for a section.
// Unknown is used for any class name the renderer has no markup for.
// ENUM(unknown, movehere, cancelmovingsection, cancelmovingactivity, addsection, backto, settings, marker, marked, move, expanded, collapsed, hide, show, mergeup)
type ControlKind int

// IsToggle reports whether control switches section between expanded and
// collapsed states. Toggles are rendered in front of the section title rather
// than with the rest of the controls.
func (k ControlKind) IsToggle() bool {
	return k == ControlKindExpanded || k == ControlKindCollapsed
}

// Format of the section summary text.
// ENUM(html, plain, markdown)
type SummaryFormat int

// Display state of the section content.
// ENUM(expanded, collapsed)
type SectionState int
