package render

import (
	"strings"
	"testing"
	"time"

	"github.com/nfrund/folio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

var fixedNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func html(t *testing.T, nodes []g.Node) string {
	t.Helper()
	var b strings.Builder
	for _, n := range nodes {
		require.NoError(t, n.Render(&b))
	}
	return b.String()
}

func testProfile() *domain.Profile {
	return &domain.Profile{
		Name: "Maria Clara Souza",
		Contact: domain.Contact{
			Email:  "maria@example.com",
			GitHub: "https://github.com/mcsouza",
			Phone:  "+55 (11) 98765-4321",
		},
		Objective: "Construir sistemas confiáveis.",
		Education: []domain.Education{
			{Course: "Ciência da Computação", Institution: "USP", Period: "2015-2019"},
			{Course: "Mestrado", Institution: "Unicamp", Period: "2020-2022"},
		},
		Experiences: []domain.Experience{
			{Role: "Engenheira", Company: "ACME", Period: "2022-", Description: "<b>Go</b> services"},
		},
	}
}

func newTestRenderer(page *Page, sched Scheduler) *Renderer {
	return New(page, sched, Options{
		FeaturedCount:  3,
		AnimationDelay: 100 * time.Millisecond,
		CardWidth:      320,
		ViewportWidth:  1280,
		Now:            func() time.Time { return fixedNow },
	})
}

func TestRenderer_Profile(t *testing.T) {
	page := NewPage("Currículo")
	sched := &VirtualScheduler{}
	r := newTestRenderer(page, sched)

	r.Profile(testProfile())

	assert.Equal(t, "Currículo - Maria Clara Souza", page.Title())
	assert.Equal(t, "Maria Clara Souza", html(t, page.Children(RegionNameHeader)))
	assert.Equal(t, "Maria Clara Souza", html(t, page.Children(RegionFixedNameHeader)))
	assert.Equal(t, "Maria Clara Souza", html(t, page.Children(RegionNameFooter)))
	assert.Equal(t, "MS", html(t, page.Children(RegionInitials)))
	assert.Contains(t, html(t, page.Children(RegionEmail)), `href="mailto:maria@example.com"`)
	assert.Contains(t, html(t, page.Children(RegionGitHub)), `>mcsouza</a>`)
	assert.Contains(t, html(t, page.Children(RegionPhone)), `href="tel:5511987654321"`)
	assert.Equal(t, "Construir sistemas confiáveis.", html(t, page.Children(RegionObjectiveText)))

	t.Run("timelines are staggered by the animation delay", func(t *testing.T) {
		// The first item of each list is due immediately, but nothing runs
		// until the virtual clock is advanced.
		assert.Empty(t, page.Children(RegionEducation))
		assert.Equal(t, 3, sched.Pending())

		sched.Advance(0)
		assert.Len(t, page.Children(RegionEducation), 1)
		assert.Len(t, page.Children(RegionExperience), 1)

		sched.Advance(99 * time.Millisecond)
		assert.Len(t, page.Children(RegionEducation), 1)

		sched.Advance(time.Millisecond)
		require.Len(t, page.Children(RegionEducation), 2)
		assert.Equal(t, 0, sched.Pending())

		out := html(t, page.Children(RegionEducation))
		assert.Less(t, strings.Index(out, "USP"), strings.Index(out, "Unicamp"), "order is kept")
		assert.Contains(t, out, "animation-delay: 100ms")
		assert.Contains(t, html(t, page.Children(RegionExperience)), "<b>Go</b> services")
	})
}

func TestRenderer_ReRenderReplacesContent(t *testing.T) {
	page := NewPage("")
	sched := &VirtualScheduler{}
	r := newTestRenderer(page, sched)

	first := testProfile()
	r.Profile(first)
	sched.Advance(0) // first education item lands

	second := testProfile()
	second.Name = "Ana Lima"
	second.Education = []domain.Education{{Course: "Novo", Institution: "UFRJ"}}
	r.Profile(second)

	sched.Advance(time.Second)

	out := html(t, page.Children(RegionEducation))
	assert.Contains(t, out, "UFRJ")
	assert.NotContains(t, out, "USP")
	assert.NotContains(t, out, "Unicamp", "stale scheduled items from the first render are dropped")
	assert.Equal(t, "AL", html(t, page.Children(RegionInitials)))
}

func TestRenderer_Featured(t *testing.T) {
	page := NewPage("")
	sched := &VirtualScheduler{}
	r := newTestRenderer(page, sched)
	repos := makeRepos(10)
	desc := "A portfolio"
	lang := "Go"
	home := "https://folio.dev"
	repos[0].Description = &desc
	repos[0].Language = &lang
	repos[0].Homepage = &home

	r.Featured(repos)
	sched.Advance(time.Second)

	cards := page.Children(RegionFeatured)
	require.Len(t, cards, 3)
	out := html(t, cards)
	for i := 0; i < 3; i++ {
		assert.Contains(t, out, repos[i].HTMLURL)
	}
	assert.NotContains(t, out, repos[3].HTMLURL)

	first := html(t, cards[:1])
	assert.Contains(t, first, `href="https://folio.dev"`)
	assert.Contains(t, first, "A portfolio")
	assert.Contains(t, first, "background-color: #00ADD8")

	second := html(t, cards[1:2])
	assert.Contains(t, second, "Sem descrição disponível")
	assert.Contains(t, second, "Desconhecido")
	assert.Contains(t, second, "background-color: "+FallbackLanguageColor)
	assert.Contains(t, second, "animation-delay: 100ms")
}

func TestRenderer_Ticker(t *testing.T) {
	t.Run("pool after featured slice is repeated", func(t *testing.T) {
		page := NewPage("")
		r := newTestRenderer(page, Immediate{})
		repos := makeRepos(10)

		count := r.Ticker(repos)

		// 7 remaining repos, viewport needs 6 cards → two repetitions.
		assert.Equal(t, 14, count)
		cards := page.Children(RegionTicker)
		require.Len(t, cards, 14)
		assert.Equal(t, html(t, cards[:7]), html(t, cards[7:]), "each repetition is identical")
		assert.Contains(t, html(t, cards[:1]), repos[3].HTMLURL)
		assert.NotContains(t, html(t, cards), "card-description")
	})

	t.Run("empty pool renders zero cards", func(t *testing.T) {
		page := NewPage("")
		r := newTestRenderer(page, Immediate{})

		assert.NotPanics(t, func() {
			assert.Equal(t, 0, r.Ticker(makeRepos(3)))
		})
		assert.Empty(t, page.Children(RegionTicker))
	})

	t.Run("re-render clears previous cards", func(t *testing.T) {
		page := NewPage("")
		r := newTestRenderer(page, Immediate{})
		r.Ticker(makeRepos(10))
		r.Ticker(makeRepos(4))
		// 1 remaining repo, 6 visible cards → six repetitions.
		assert.Len(t, page.Children(RegionTicker), 6)
	})
}

func TestRenderer_Error(t *testing.T) {
	page := NewPage("")
	r := newTestRenderer(page, Immediate{})

	r.Error(RegionObjectives, Portuguese.ProfileError)
	r.Error("no-such-region", "ignored")

	out := html(t, page.Children(RegionObjectives))
	assert.Contains(t, out, `class="error-message"`)
	assert.Contains(t, out, Portuguese.ProfileError)
}

func TestRenderer_MissingRegionsAreSkipped(t *testing.T) {
	page := NewPage("", RegionNameHeader)
	r := newTestRenderer(page, Immediate{})

	assert.NotPanics(t, func() {
		r.Profile(testProfile())
		r.Repositories(makeRepos(5))
	})
	assert.Equal(t, "Maria Clara Souza", html(t, page.Children(RegionNameHeader)))
}
