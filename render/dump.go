package render

import (
	"strconv"

	"flexsections/course"
	"flexsections/utils/debug"
)

// DumpTree produces indented text representation of section num and all its
// descendants, hidden or not. Used for debugging.
func DumpTree(f course.Format, num int) string {
	tw := debug.NewTreeWriter()
	dumpSection(tw, f, num, 0, make(map[int]bool))
	return tw.String()
}

func dumpSection(tw *debug.TreeWriter, f course.Format, num, depth int, visited map[int]bool) {
	if visited[num] {
		tw.Line(depth, "section %d: already visited", num)
		return
	}
	visited[num] = true

	s, err := f.Section(num)
	if err != nil {
		tw.Line(depth, "section %d: %v", num, err)
		return
	}
	tw.Line(depth, "section %d", s.Number)
	tw.TextBlock(depth+1, "name", f.SectionName(s))
	tw.Attrs(depth+1, map[string]string{
		"id":          strconv.FormatInt(s.ID, 10),
		"parent":      strconv.Itoa(s.Parent),
		"state":       s.State.String(),
		"visible":     strconv.FormatBool(s.Visible),
		"uservisible": strconv.FormatBool(s.UserVisible),
		"available":   strconv.FormatBool(s.Available),
		"current":     strconv.FormatBool(f.IsCurrent(s)),
		"activities":  strconv.FormatBool(f.HasActivities(s.Number)),
	})
	for _, child := range f.Subsections(num) {
		dumpSection(tw, f, child, depth+1, visited)
	}
}
