package css

import (
	"net/url"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// OutlineClasses are classes generated outline relies on for layout.
var OutlineClasses = []string{
	"flexsections", "section", "controls", "content", "sectionname", "summary",
	"movehere", "cancelmoving", "backto",
}

type Rule struct {
	Selectors []string
	URLs      []string
}

type Stylesheet struct {
	Rules    []Rule
	Imports  []string
	Warnings []string
}

// Classes returns sorted class names used by selectors.
func (s *Stylesheet) Classes() []string {
	seen := make(map[string]bool)
	for _, r := range s.Rules {
		for _, sel := range r.Selectors {
			for _, m := range classRe.FindAllStringSubmatch(sel, -1) {
				seen[m[1]] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

// Missing returns classes from the list no selector mentions.
func (s *Stylesheet) Missing(classes []string) []string {
	have := make(map[string]bool)
	for _, name := range s.Classes() {
		have[name] = true
	}
	var missing []string
	for _, name := range classes {
		if !have[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// RelativeRefs returns imported and referenced urls which are resolved
// relative to the stylesheet location.
func (s *Stylesheet) RelativeRefs() []string {
	var refs []string
	check := func(ref string) {
		if strings.HasPrefix(ref, "data:") || strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "#") {
			return
		}
		if u, err := url.Parse(ref); err == nil && u.IsAbs() {
			return
		}
		refs = append(refs, ref)
	}
	for _, ref := range s.Imports {
		check(ref)
	}
	for _, r := range s.Rules {
		for _, ref := range r.URLs {
			check(ref)
		}
	}
	return refs
}
