package core

import (
	"html/template"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"encyclopedia/pkg/bear"
	"encyclopedia/pkg/entry"
	"encyclopedia/pkg/markup"

	"github.com/pkg/errors"
)

var (
	ErrNotFound      = entry.ErrNotFound
	ErrInvalidTitle  = entry.ErrInvalidTitle
	ErrAlreadyExists = errors.New("entry already exists")
)

// Page is an entry ready to be shown: its raw body and the rendered HTML.
type Page struct {
	Title string
	Body  string
	HTML  template.HTML
}

// SearchResult holds either the exact entry hit (Page) or the titles that
// contain the query.
type SearchResult struct {
	Query   string
	Page    *Page
	Matches []string
}

type ImportReport struct {
	Imported []string
	Skipped  []string
	Invalid  []string
}

type Core interface {
	ListEntries() ([]string, error)
	View(title string) (*Page, error)
	Search(query string) (*SearchResult, error)
	Create(title, body string) (*Page, error)
	EditForm(title string) (string, error)
	Edit(title, body string) (*Page, error)
	Random() (*Page, error)
	Import(notes []bear.Note, overwrite bool) (*ImportReport, error)
}

type CoreImpl struct {
	store    entry.Storage
	renderer markup.Renderer

	mu  sync.Mutex
	rnd *rand.Rand
}

func New(store entry.Storage, renderer markup.Renderer) *CoreImpl {
	return NewWithRand(store, renderer, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func NewWithRand(store entry.Storage, renderer markup.Renderer, rnd *rand.Rand) *CoreImpl {
	return &CoreImpl{store: store, renderer: renderer, rnd: rnd}
}

func (c *CoreImpl) ListEntries() ([]string, error) {
	titles, err := c.store.ListTitles()
	if err != nil {
		return nil, errors.Wrap(err, "list entries")
	}
	return titles, nil
}

func (c *CoreImpl) View(title string) (*Page, error) {
	body, err := c.store.Get(title)
	if err != nil {
		return nil, errors.Wrapf(err, "view %q", title)
	}
	return c.render(title, body)
}

// Search treats a query equal to an existing title as a view of that entry.
// Otherwise every title containing the query, ignoring case, is a match; an
// empty query matches everything.
func (c *CoreImpl) Search(query string) (*SearchResult, error) {
	titles, err := c.ListEntries()
	if err != nil {
		return nil, err
	}
	for _, title := range titles {
		if title == query {
			page, err := c.View(title)
			if err != nil {
				return nil, err
			}
			return &SearchResult{Query: query, Page: page}, nil
		}
	}

	needle := strings.ToLower(query)
	matches := []string{}
	for _, title := range titles {
		if strings.Contains(strings.ToLower(title), needle) {
			matches = append(matches, title)
		}
	}
	return &SearchResult{Query: query, Matches: matches}, nil
}

func (c *CoreImpl) Create(title, body string) (*Page, error) {
	exists, err := c.store.Exists(title)
	if err != nil {
		return nil, errors.Wrapf(err, "create %q", title)
	}
	if exists {
		return nil, errors.Wrapf(ErrAlreadyExists, "create %q", title)
	}
	if err := c.store.Save(title, []byte(body)); err != nil {
		return nil, errors.Wrapf(err, "create %q", title)
	}
	return c.render(title, []byte(body))
}

func (c *CoreImpl) EditForm(title string) (string, error) {
	body, err := c.store.Get(title)
	if err != nil {
		return "", errors.Wrapf(err, "edit form %q", title)
	}
	return string(body), nil
}

// Edit replaces the whole body of title, creating the entry if needed.
func (c *CoreImpl) Edit(title, body string) (*Page, error) {
	if err := c.store.Save(title, []byte(body)); err != nil {
		return nil, errors.Wrapf(err, "edit %q", title)
	}
	return c.render(title, []byte(body))
}

func (c *CoreImpl) Random() (*Page, error) {
	titles, err := c.ListEntries()
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, errors.Wrap(ErrNotFound, "random entry from empty wiki")
	}
	c.mu.Lock()
	lucky := titles[c.rnd.Intn(len(titles))]
	c.mu.Unlock()
	return c.View(lucky)
}

// Import saves notes as entries. Only the first note with a given title is
// taken; later ones in the same batch land in Skipped.
func (c *CoreImpl) Import(notes []bear.Note, overwrite bool) (*ImportReport, error) {
	report := &ImportReport{}
	seen := make(map[string]struct{}, len(notes))
	for _, note := range notes {
		title := strings.TrimSpace(note.Title)
		if err := entry.ValidateTitle(title); err != nil {
			report.Invalid = append(report.Invalid, note.Title)
			continue
		}
		if _, dup := seen[title]; dup {
			report.Skipped = append(report.Skipped, title)
			continue
		}
		seen[title] = struct{}{}
		if !overwrite {
			exists, err := c.store.Exists(title)
			if err != nil {
				return report, errors.Wrapf(err, "import %q", title)
			}
			if exists {
				report.Skipped = append(report.Skipped, title)
				continue
			}
		}
		if err := c.store.Save(title, note.Text); err != nil {
			return report, errors.Wrapf(err, "import %q", title)
		}
		report.Imported = append(report.Imported, title)
	}
	sort.Strings(report.Imported)
	return report, nil
}

func (c *CoreImpl) render(title string, body []byte) (*Page, error) {
	html, err := c.renderer.Render(body)
	if err != nil {
		return nil, errors.Wrapf(err, "render %q", title)
	}
	return &Page{
		Title: title,
		Body:  string(body),
		HTML:  template.HTML(html),
	}, nil
}
