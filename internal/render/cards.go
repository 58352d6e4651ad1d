package render

import (
	"fmt"
	"time"

	"github.com/nfrund/folio/internal/domain"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const (
	clockIconPath  = "M8 0C3.58 0 0 3.58 0 8s3.58 8 8 8 8-3.58 8-8-3.58-8-8-8zm0 14c-3.31 0-6-2.69-6-6s2.69-6 6-6 6 2.69 6 6-2.69 6-6 6zm1-6.5c0 .28-.22.5-.5.5H5c-.28 0-.5-.22-.5-.5v-1c0-.28.22-.5.5-.5h3V3.5c0-.28.22-.5.5-.5s.5.22.5.5v3c0 .28-.22.5-.5.5h-1v1z"
	githubIconPath = "M8 0C3.58 0 0 3.58 0 8c0 3.54 2.29 6.53 5.47 7.59.4.07.55-.17.55-.38 0-.19-.01-.82-.01-1.49-2.01.37-2.53-.49-2.69-.94-.09-.23-.48-.94-.82-1.13-.28-.15-.68-.52-.01-.53.63-.01 1.08.58 1.23.82.72 1.21 1.87.87 2.33.66.07-.52.28-.87.51-1.07-1.78-.2-3.64-.89-3.64-3.95 0-.87.31-1.59.82-2.15-.08-.2-.36-1.02.08-2.12 0 0 .67-.21 2.2.82.64-.18 1.32-.27 2-.27.68 0 1.36.09 2 .27 1.53-1.04 2.2-.82 2.2-.82.44 1.1.16 1.92.08 2.12.51.56.82 1.27.82 2.15 0 3.07-1.87 3.75-3.65 3.95.29.25.54.73.54 1.48 0 1.07-.01 1.93-.01 2.2 0 .21.15.46.55.38A8.013 8.013 0 0016 8c0-4.42-3.58-8-8-8z"
	errorIconPath  = "M12 2C6.48 2 2 6.48 2 12s4.48 10 10 10 10-4.48 10-10S17.52 2 12 2zm1 15h-2v-2h2v2zm0-4h-2V7h2v6z"
)

func icon(viewBox, path string, size int) g.Node {
	return g.Rawf(`<svg viewBox="%s" width="%d" height="%d" preserveAspectRatio="xMidYMid meet"><path d="%s"></path></svg>`,
		viewBox, size, size, path)
}

// staggerStyle carries the insertion delay to the browser's reveal animation.
func staggerStyle(delay time.Duration) g.Node {
	return h.Style(fmt.Sprintf("animation-delay: %dms", delay.Milliseconds()))
}

// EducationItem renders one education timeline entry.
func EducationItem(item domain.Education, delay time.Duration) g.Node {
	return h.Div(h.Class("timeline-item"), staggerStyle(delay),
		h.Div(h.Class("timeline-header"),
			h.H3(h.Class("timeline-title"), g.Text(item.Course)),
			h.Span(h.Class("timeline-period"), g.Text(item.Period)),
		),
		h.P(h.Class("timeline-subtitle"), g.Text(item.Institution)),
	)
}

// ExperienceItem renders one experience timeline entry. The description is
// owner-authored HTML and is inserted as-is.
func ExperienceItem(item domain.Experience, delay time.Duration) g.Node {
	return h.Div(h.Class("timeline-item"), staggerStyle(delay),
		h.Div(h.Class("timeline-header"),
			h.H3(h.Class("timeline-title"), g.Text(item.Role)),
			h.Span(h.Class("timeline-period"), g.Text(item.Period)),
		),
		h.P(h.Class("timeline-subtitle"), g.Text(item.Company)),
		h.Div(h.Class("timeline-content"), g.Raw(item.Description)),
	)
}

// cardProps controls the two project card variants.
type cardProps struct {
	description string // empty for ticker cards
	delay       time.Duration
	now         time.Time
	messages    Messages
}

// projectCard renders a repository card. Featured cards carry a description,
// ticker cards do not.
func projectCard(repo domain.Repository, p cardProps) g.Node {
	language := repo.LanguageOr(p.messages.UnknownLanguage)

	var title g.Node = g.Text(repo.Name)
	if homepage := repo.HomepageURL(); homepage != "" {
		title = h.A(h.Href(homepage), h.Target("_blank"), h.Rel("noopener"),
			g.Text(repo.Name+" "), h.Span(h.Class("link-icon"), g.Text("🔗")),
		)
	}

	return h.Div(h.Class("project-card"), g.If(p.delay > 0, staggerStyle(p.delay)),
		h.Div(h.Class("card-inner"),
			h.Div(h.Class("card-header"),
				h.H3(title),
				h.P(h.Class("creation-date"),
					icon("0 0 16 16", clockIconPath, 16),
					g.Text(RelativeDate(repo.CreatedAt, p.now, p.messages)),
				),
			),
			h.Div(h.Class("card-body"),
				g.If(p.description != "", h.P(h.Class("card-description"), g.Text(p.description))),
				h.Div(h.Class("card-actions"),
					h.A(h.Href(repo.HTMLURL), h.Target("_blank"), h.Rel("noopener"), h.Class("card-button"),
						icon("0 0 16 16", githubIconPath, 16),
						g.Text(p.messages.ViewRepository),
					),
					h.Span(h.Class("language-badge"),
						h.Style("background-color: "+LanguageColor(language)),
						g.Text(language),
					),
				),
			),
		),
	)
}

// ErrorMessage renders the inline error block appended to a failing section.
func ErrorMessage(message string) g.Node {
	return h.Div(h.Class("error-message"), g.Attr("role", "alert"),
		g.Rawf(`<svg viewBox="0 0 24 24" class="error-icon"><path d="%s"/></svg>`, errorIconPath),
		h.P(g.Text(message)),
	)
}
