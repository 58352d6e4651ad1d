package view

import (
	"strconv"
	"time"

	"github.com/nfrund/folio/internal/config"
	"github.com/nfrund/folio/internal/render"
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

const titleID = "page-title"

// HomeProps carries everything the résumé page needs.
type HomeProps struct {
	Page     *render.Page
	Messages render.Messages
	Site     config.Site
	Theme    string
	LiveURL  string
	Print    bool
	// ProjectsPending makes the projects section fetch itself after load,
	// for when the repositories were not ready at render time.
	ProjectsPending bool
	Year            int
}

// Home renders the full résumé page.
func Home(p HomeProps) g.Node {
	m := p.Messages
	if p.Year == 0 {
		p.Year = time.Now().Year()
	}

	return Document(DocumentProps{
		Title:    p.Page.Title(),
		Language: m.Tag.String(),
		Theme:    p.Theme,
		LiveURL:  p.LiveURL,
		Print:    p.Print,
	},
		fixedHeader(p),
		h.Div(h.Class("header-placeholder")),
		h.Div(h.Class("container"),
			mainHeader(p),
			h.Main(
				section(render.RegionObjectives, m.ObjectivesHeading, p.Page,
					h.P(h.ID(render.RegionObjectiveText), p.Page.Content(render.RegionObjectiveText)),
				),
				section("formacao", m.EducationHeading, p.Page,
					region(render.RegionEducation, "timeline", p.Page),
				),
				section("experiencias", m.ExperienceHeading, p.Page,
					region(render.RegionExperience, "timeline", p.Page),
				),
				ProjectsSection(p.Page, m, p.ProjectsPending),
			),
			h.Footer(
				h.P(g.Textf("© %d ", p.Year), h.Span(h.ID(render.RegionNameFooter), p.Page.Content(render.RegionNameFooter))),
			),
		),
	)
}

func profileImage(class string, p HomeProps) g.Node {
	return h.Div(h.Class("profile-image-wrapper"),
		h.Img(h.Class(class), h.Src(p.Site.ProfileImageURL), h.Alt(p.Page.Title()), g.Attr("data-scroll-top", "")),
		g.If(class == "profile-image",
			h.Span(h.ID(render.RegionInitials), h.Class("initials"), p.Page.Content(render.RegionInitials)),
		),
	)
}

func fixedHeader(p HomeProps) g.Node {
	return h.Div(h.Class("fixed-header"), g.Attr("data-fixed-header", ""),
		profileImage("fixed-profile-image", p),
		h.H2(h.ID(render.RegionFixedNameHeader), p.Page.Content(render.RegionFixedNameHeader)),
	)
}

func mainHeader(p HomeProps) g.Node {
	m := p.Messages
	return h.Header(g.Attr("data-main-header", ""),
		h.Div(h.ID("profileImage"), profileImage("profile-image", p)),
		h.H1(h.ID(render.RegionNameHeader), p.Page.Content(render.RegionNameHeader)),
		h.Ul(h.Class("contact"),
			h.Li(icon(mailIconSVG), h.Span(h.ID(render.RegionEmail), p.Page.Content(render.RegionEmail))),
			h.Li(icon(codeIconSVG), h.Span(h.ID(render.RegionGitHub), p.Page.Content(render.RegionGitHub))),
			h.Li(icon(phoneIconSVG), h.Span(h.ID(render.RegionPhone), p.Page.Content(render.RegionPhone))),
		),
		g.If(!p.Print,
			h.Div(h.Class("actions"),
				h.A(h.ID("save-pdf-button"), h.Class("button"), h.Href("/export.pdf"), g.Attr("download", p.Site.PDFFilename),
					icon(pdfIconSVG), g.Text(m.SavePDF),
				),
				h.Button(h.Class("button"), h.Type("button"),
					hx.Post("/theme"), g.Attr("hx-vals", `{"theme":"`+NextTheme(p.Theme)+`"}`), hx.Swap("none"),
					g.Attr("aria-label", m.ToggleTheme),
					icon(themeIconSVG),
				),
			),
		),
	)
}

// section renders a page section. Inline error messages for the section are
// kept in the region named like the section's id.
func section(id, heading string, page *render.Page, body ...g.Node) g.Node {
	return h.Section(h.ID(id), h.Class("section"),
		h.H2(g.Text(heading)),
		g.Group(body),
		g.If(id == render.RegionObjectives || id == render.RegionProjects, page.Content(id)),
	)
}

func region(name, class string, page *render.Page) g.Node {
	return h.Div(h.ID(name), h.Class(class), page.Content(name))
}

// ProjectsSection renders the featured grid and the scrolling ticker. When
// pending, it instead renders a placeholder that requests itself from
// /fragments/projects with the visitor's viewport width.
func ProjectsSection(page *render.Page, m render.Messages, pending bool) g.Node {
	if pending {
		return h.Section(h.ID(render.RegionProjects), h.Class("section"),
			hx.Get("/fragments/projects"), hx.Trigger("load"), hx.Swap("outerHTML"),
			g.Attr("hx-vals", "js:{w: window.innerWidth}"),
			h.H2(g.Text(m.ProjectsHeading)),
			h.P(h.Class("loading"), g.Text(m.Loading)),
		)
	}
	return section(render.RegionProjects, m.ProjectsHeading, page,
		h.H3(g.Text(m.FeaturedHeading)),
		region(render.RegionFeatured, "featured-grid", page),
		h.Div(h.Class("projects-ticker"),
			region(render.RegionTicker, "track", page),
		),
	)
}

// ViewportWidth parses the w query parameter sent by the projects placeholder.
// Missing or invalid values yield 0, which the renderer treats as its default.
func ViewportWidth(raw string) int {
	w, err := strconv.Atoi(raw)
	if err != nil || w <= 0 || w > 10000 {
		return 0
	}
	return w
}
