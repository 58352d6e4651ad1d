package render

import (
	"slices"
	"sync"

	g "maragu.dev/gomponents"
)

// Page is an in-memory Target. Regions are safe for concurrent use because
// scheduled insertions may run on timer goroutines.
type Page struct {
	mu      sync.RWMutex
	title   string
	regions map[string]*pageRegion
}

// NewPage creates a Page that knows the given regions. With no names it knows
// every entry of RegionNames.
func NewPage(title string, names ...string) *Page {
	if len(names) == 0 {
		names = RegionNames
	}
	p := &Page{title: title, regions: make(map[string]*pageRegion, len(names))}
	for _, name := range names {
		p.regions[name] = &pageRegion{}
	}
	return p
}

// Region implements Target.
func (p *Page) Region(name string) Region {
	r, ok := p.regions[name]
	if !ok {
		return nil
	}
	return r
}

// SetTitle implements Target.
func (p *Page) SetTitle(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.title = title
}

// Title returns the current document title.
func (p *Page) Title() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.title
}

// Children returns a snapshot of the nodes in region name.
func (p *Page) Children(name string) []g.Node {
	r, ok := p.regions[name]
	if !ok {
		return nil
	}
	return r.snapshot()
}

// Content returns region name as a group node, ready to embed in a layout.
func (p *Page) Content(name string) g.Node {
	return g.Group(p.Children(name))
}

type pageRegion struct {
	mu    sync.Mutex
	nodes []g.Node
}

func (r *pageRegion) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes = nil
}

func (r *pageRegion) Append(node g.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes = append(r.nodes, node)
}

func (r *pageRegion) SetText(text string) {
	r.SetNode(g.Text(text))
}

func (r *pageRegion) SetNode(node g.Node) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes = []g.Node{node}
}

func (r *pageRegion) snapshot() []g.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.nodes)
}
