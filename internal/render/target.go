// Package render turns profile and repository data into page content. It writes
// through a Target, a mapping of region names to mutable node handles, so the
// same logic fills an HTML response buffer, a live websocket stream, or a test
// double.
package render

import g "maragu.dev/gomponents"

// Region names shared by the renderer, the page layout and the live stream.
const (
	RegionNameHeader      = "nome-header"
	RegionFixedNameHeader = "fixed-nome-header"
	RegionNameFooter      = "nome-footer"
	RegionInitials        = "profile-initials"
	RegionEmail           = "email"
	RegionGitHub          = "github"
	RegionPhone           = "telefone"
	RegionObjectiveText   = "objetivos-text"
	RegionEducation       = "formacao-list"
	RegionExperience      = "experiencias-list"
	RegionFeatured        = "featured-projects"
	RegionTicker          = "github-projects-track"

	// Sections that receive inline error messages.
	RegionObjectives = "objetivos"
	RegionProjects   = "projetos"
)

// RegionNames lists every region the page layout provides.
var RegionNames = []string{
	RegionNameHeader, RegionFixedNameHeader, RegionNameFooter, RegionInitials,
	RegionEmail, RegionGitHub, RegionPhone, RegionObjectiveText,
	RegionEducation, RegionExperience, RegionFeatured, RegionTicker,
	RegionObjectives, RegionProjects,
}

// Region is a mutable handle on one named area of the page.
type Region interface {
	// Clear removes all content.
	Clear()
	// Append adds node after the current content.
	Append(node g.Node)
	// SetText replaces the content with escaped text.
	SetText(text string)
	// SetNode replaces the content with a single node.
	SetNode(node g.Node)
}

// Target is the surface the renderer writes to.
type Target interface {
	// Region returns the handle for name, or nil when the target has no such region.
	Region(name string) Region
	// SetTitle sets the document title.
	SetTitle(title string)
}
