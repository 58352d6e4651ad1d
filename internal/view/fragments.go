package view

import (
	"github.com/nfrund/folio/internal/render"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

// ProfileRegions are the regions a profile render fills.
var ProfileRegions = []string{
	render.RegionNameHeader, render.RegionFixedNameHeader, render.RegionNameFooter,
	render.RegionInitials, render.RegionEmail, render.RegionGitHub, render.RegionPhone,
	render.RegionObjectiveText, render.RegionEducation, render.RegionExperience,
}

// ProjectRegions are the regions a repositories render fills.
var ProjectRegions = []string{render.RegionFeatured, render.RegionTicker}

// OOB renders the named regions of page as htmx out-of-band swaps, each
// replacing the content of the element with the same id.
func OOB(page *render.Page, names ...string) g.Node {
	nodes := make(g.Group, 0, len(names))
	for _, name := range names {
		nodes = append(nodes, h.Div(h.ID(name), hx.SwapOOB("innerHTML"), page.Content(name)))
	}
	return nodes
}

// TitleOOB swaps the document title.
func TitleOOB(title string) g.Node {
	return h.TitleEl(h.ID(titleID), hx.SwapOOB("true"), g.Text(title))
}

// AppendOOB appends the content of region name to the element with that id.
// Nothing is rendered when the region is empty.
func AppendOOB(page *render.Page, name string) g.Node {
	children := page.Children(name)
	if len(children) == 0 {
		return g.Group{}
	}
	return h.Div(hx.SwapOOB("beforeend:#"+name), g.Group(children))
}
