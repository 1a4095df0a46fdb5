package benchmarks

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrPageNotFound is returned by Registry.Lookup for an unknown slug.
var ErrPageNotFound = errors.New("page not found")

// Page is one navigable dashboard page. File is the pre-rendered HTML
// embedded by benchmark pages; the home page has none.
type Page struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
	Group string `json:"group"`
	Icon  string `json:"icon"`
	Path  string `json:"path"`
	File  string `json:"file,omitempty"`
}

// NavLink is a sidebar entry.
type NavLink struct {
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

// NavGroup is a titled block of sidebar links.
type NavGroup struct {
	Name  string    `json:"name"`
	Links []NavLink `json:"links"`
}

// Registry is an ordered, read-only list of pages.
type Registry struct {
	pages []Page
}

// HomePath is the overview page path.
const HomePath = "/"

func benchmarkPage(slug, label, icon string) Page {
	return Page{
		Slug:  slug,
		Label: label,
		Group: "Analysis",
		Icon:  icon,
		Path:  "/pages/" + slug,
		File:  slug + ".html",
	}
}

// DefaultRegistry returns the built-in navigation.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Page{Slug: "home", Label: "Home", Group: "Analysis", Icon: "bi bi-house", Path: HomePath},
		benchmarkPage("aider_polyglot_dashboard", "Aider Polyglot", "bi bi-currency-dollar"),
		benchmarkPage("balrog_dashboard", "Balrog", "bi bi-bar-chart"),
		benchmarkPage("commonsenseqa2_dashboard", "CommonsenseQA2", "bi bi-question-circle"),
		benchmarkPage("anli_dashboard", "ANLI", "bi bi-lightning"),
		benchmarkPage("bbh_dashboard", "BBH", "bi bi-graph-up"),
		benchmarkPage("cybench_external_dashboard", "CYBench External", "bi bi-pie-chart"),
		benchmarkPage("arc_agi_dashboard", "ARC AGI", "bi bi-robot"),
		benchmarkPage("boolq_dashboard", "BoolQ", "bi bi-check2-circle"),
		benchmarkPage("cad_eval_external_dashboard", "CAD Eval External", "bi bi-bar-chart-line"),
		benchmarkPage("arc_ai2_dashboard", "ARC AI2", "bi bi-lightbulb"),
		Page{Slug: "home", Label: "Home", Group: "Other", Icon: "bi bi-house", Path: HomePath},
	)
}

// NewRegistry keeps pages in the given order.
func NewRegistry(pages ...Page) *Registry {
	return &Registry{pages: append([]Page(nil), pages...)}
}

// WithDatasets returns a copy of r extended with a page for every dataset
// that has no page yet.
func (r *Registry) WithDatasets(datasets []Dataset) *Registry {
	out := NewRegistry(r.pages...)
	for _, ds := range datasets {
		slug := strings.TrimSuffix(PageFile(ds.Name), ".html")
		if _, err := out.Lookup(slug); err == nil {
			continue
		}
		out.pages = append(out.pages, benchmarkPage(slug, ds.Name, "bi bi-table"))
	}
	return out
}

// Pages returns every page in order.
func (r *Registry) Pages() []Page {
	return append([]Page(nil), r.pages...)
}

// Lookup returns the benchmark page with slug.
func (r *Registry) Lookup(slug string) (Page, error) {
	for _, p := range r.pages {
		if p.Slug == slug && p.File != "" {
			return p, nil
		}
	}
	return Page{}, fmt.Errorf("%w: %q", ErrPageNotFound, slug)
}

// Nav groups the pages for the sidebar in first-seen group order and marks
// links whose path equals activePath.
func (r *Registry) Nav(activePath string) []NavGroup {
	var groups []NavGroup
	index := make(map[string]int)
	for _, p := range r.pages {
		i, ok := index[p.Group]
		if !ok {
			i = len(groups)
			index[p.Group] = i
			groups = append(groups, NavGroup{Name: p.Group})
		}
		groups[i].Links = append(groups[i].Links, NavLink{
			Label:  p.Label,
			Icon:   p.Icon,
			Path:   p.Path,
			Active: p.Path == activePath,
		})
	}
	return groups
}

// Embed reads the page's pre-rendered HTML from graphsDir. ok is false when
// the file has not been generated.
func Embed(graphsDir string, p Page) (content string, ok bool, err error) {
	if p.File == "" {
		return "", false, nil
	}
	data, err := os.ReadFile(filepath.Join(graphsDir, p.File))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}
