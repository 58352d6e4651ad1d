package render

import (
	"sync"
	"time"

	"github.com/nfrund/folio/internal/domain"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Presentation defaults.
const (
	DefaultFeaturedCount  = 3
	DefaultAnimationDelay = 100 * time.Millisecond
	DefaultCardWidth      = 320
	DefaultViewportWidth  = 1280
)

// Options tunes a Renderer.
type Options struct {
	FeaturedCount  int
	AnimationDelay time.Duration
	CardWidth      int
	ViewportWidth  int
	Messages       Messages
	Now            func() time.Time
}

// Renderer writes profile and repository data into a Target. Re-rendering a
// region clears it first, so the latest data always replaces what was there.
type Renderer struct {
	target Target
	sched  Scheduler
	opts   Options

	mu          sync.Mutex
	generations map[string]int
}

// New creates a Renderer. Zero-valued options take their defaults.
func New(target Target, sched Scheduler, opts Options) *Renderer {
	if sched == nil {
		sched = Immediate{}
	}
	if opts.FeaturedCount <= 0 {
		opts.FeaturedCount = DefaultFeaturedCount
	}
	if opts.AnimationDelay <= 0 {
		opts.AnimationDelay = DefaultAnimationDelay
	}
	if opts.CardWidth <= 0 {
		opts.CardWidth = DefaultCardWidth
	}
	if opts.ViewportWidth <= 0 {
		opts.ViewportWidth = DefaultViewportWidth
	}
	if opts.Messages.TitlePrefix == "" {
		opts.Messages = Portuguese
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Renderer{target: target, sched: sched, opts: opts, generations: make(map[string]int)}
}

// Profile fills the résumé regions: title, names, initials, contacts,
// objective and both timelines.
func (r *Renderer) Profile(p *domain.Profile) {
	r.target.SetTitle(r.opts.Messages.TitlePrefix + p.Name)

	r.setText(RegionNameHeader, p.Name)
	r.setText(RegionFixedNameHeader, p.Name)
	r.setText(RegionNameFooter, p.Name)
	r.setText(RegionInitials, Initials(p.Name))

	c := p.Contact
	r.setNode(RegionEmail, h.A(h.Href("mailto:"+c.Email), g.Text(c.Email)))
	r.setNode(RegionGitHub, h.A(h.Href(c.GitHub), h.Target("_blank"), h.Rel("noopener"), g.Text(c.GitHubHandle())))
	r.setNode(RegionPhone, h.A(h.Href("tel:"+c.PhoneDigits()), g.Text(c.Phone)))

	r.setText(RegionObjectiveText, p.Objective)

	education := make([]func(time.Duration) g.Node, len(p.Education))
	for i, item := range p.Education {
		education[i] = func(d time.Duration) g.Node { return EducationItem(item, d) }
	}
	r.staggered(RegionEducation, education)

	experience := make([]func(time.Duration) g.Node, len(p.Experiences))
	for i, item := range p.Experiences {
		experience[i] = func(d time.Duration) g.Node { return ExperienceItem(item, d) }
	}
	r.staggered(RegionExperience, experience)
}

// Repositories renders both project lists.
func (r *Renderer) Repositories(repos []domain.Repository) {
	r.Featured(repos)
	r.Ticker(repos)
}

// Featured renders the first FeaturedCount repositories as staggered cards.
func (r *Renderer) Featured(repos []domain.Repository) {
	featured, _ := SplitFeatured(repos, r.opts.FeaturedCount)
	now := r.opts.Now()

	cards := make([]func(time.Duration) g.Node, len(featured))
	for i, repo := range featured {
		cards[i] = func(d time.Duration) g.Node {
			return projectCard(repo, cardProps{
				description: repo.DescriptionOr(r.opts.Messages.NoDescription),
				delay:       d,
				now:         now,
				messages:    r.opts.Messages,
			})
		}
	}
	r.staggered(RegionFeatured, cards)
}

// Ticker renders the remaining repositories, repeated enough times for a
// seamless scrolling loop, all at once. It returns the number of cards placed.
func (r *Renderer) Ticker(repos []domain.Repository) int {
	region := r.target.Region(RegionTicker)
	if region == nil {
		return 0
	}
	r.bump(RegionTicker)
	region.Clear()

	_, pool := SplitFeatured(repos, r.opts.FeaturedCount)
	duplicates := TickerDuplicates(len(pool), r.opts.ViewportWidth, r.opts.CardWidth)
	now := r.opts.Now()

	count := 0
	for range duplicates {
		for _, repo := range pool {
			region.Append(projectCard(repo, cardProps{now: now, messages: r.opts.Messages}))
			count++
		}
	}
	return count
}

// Error appends an inline error message to region name.
func (r *Renderer) Error(name, message string) {
	if region := r.target.Region(name); region != nil {
		region.Append(ErrorMessage(message))
	}
}

// Messages returns the locale strings in use.
func (r *Renderer) Messages() Messages {
	return r.opts.Messages
}

func (r *Renderer) setText(name, text string) {
	if region := r.target.Region(name); region != nil {
		region.SetText(text)
	}
}

func (r *Renderer) setNode(name string, node g.Node) {
	if region := r.target.Region(name); region != nil {
		region.SetNode(node)
	}
}

// staggered clears region name and schedules the Nth item N×AnimationDelay
// later. Items scheduled by an earlier call are dropped if they fire after a
// newer call cleared the region.
func (r *Renderer) staggered(name string, items []func(time.Duration) g.Node) {
	region := r.target.Region(name)
	if region == nil {
		return
	}
	gen := r.bump(name)
	region.Clear()

	for i, build := range items {
		delay := time.Duration(i) * r.opts.AnimationDelay
		node := build(delay)
		r.sched.After(delay, func() {
			if r.current(name, gen) {
				region.Append(node)
			}
		})
	}
}

func (r *Renderer) bump(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generations[name]++
	return r.generations[name]
}

func (r *Renderer) current(name string, gen int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generations[name] == gen
}
