package render

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

const (
	coreComponent   = "core"
	formatComponent = "format_flexsections"
)

// iconURL points to the icon served by the theme image handler.
func (r *Renderer) iconURL(component, name string) string {
	return fmt.Sprintf("%s/theme/image.php/%s/%s/%d/%s",
		strings.TrimSuffix(r.cfg.WWWRoot, "/"), r.cfg.Theme, component, r.cfg.Revision, name)
}

func (r *Renderer) icon(name, component, alt, class string) *etree.Element {
	img := etree.NewElement("img")
	img.CreateAttr("src", r.iconURL(component, name))
	img.CreateAttr("alt", alt)
	if len(alt) > 0 {
		img.CreateAttr("title", alt)
	}
	img.CreateAttr("class", class)
	return img
}
