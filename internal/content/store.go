package content

import (
	_ "embed"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// ErrNotFound is returned when an item ID does not exist (or is hidden).
var ErrNotFound = fmt.Errorf("item not found")

// Hider reports whether an item has been hidden by moderation. The content
// store filters hidden items out of every read path.
type Hider interface {
	IsHidden(id string) bool
}

// Store is the in-memory content registry.
type Store struct {
	mu    sync.RWMutex
	items []Item
	byID  map[string]int
	hider Hider
}

type catalogFile struct {
	Items []Item `yaml:"items"`
}

// NewStore builds a store from a YAML catalog document.
func NewStore(catalog []byte) (*Store, error) {
	var parsed catalogFile
	if err := yaml.Unmarshal(catalog, &parsed); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	s := &Store{
		items: parsed.Items,
		byID:  make(map[string]int, len(parsed.Items)),
	}
	for i, item := range parsed.Items {
		if item.ID == "" || item.URL == "" {
			return nil, fmt.Errorf("catalog item %d missing id or url", i)
		}
		if _, dup := s.byID[item.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", item.ID)
		}
		s.byID[item.ID] = i
	}
	return s, nil
}

// NewEmbeddedStore builds a store from the catalog compiled into the binary.
func NewEmbeddedStore() (*Store, error) {
	return NewStore(embeddedCatalog)
}

// WithHider installs a moderation filter. Passing nil removes filtering.
func (s *Store) WithHider(h Hider) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hider = h
	return s
}

func (s *Store) visible(item Item) bool {
	return s.hider == nil || !s.hider.IsHidden(item.ID)
}

// List returns all visible items in catalog order.
func (s *Store) List() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if s.visible(item) {
			out = append(out, item)
		}
	}
	return out
}

// Get returns the visible item with the given ID.
func (s *Store) Get(id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok || !s.visible(s.items[i]) {
		return Item{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.items[i], nil
}

// Random returns one visible item chosen uniformly.
func (s *Store) Random() (Item, error) {
	visible := s.List()
	if len(visible) == 0 {
		return Item{}, ErrNotFound
	}
	return visible[rand.Intn(len(visible))], nil
}

// ByCategory returns visible items in the given category.
func (s *Store) ByCategory(category string) []Item {
	var out []Item
	for _, item := range s.List() {
		if strings.EqualFold(item.Category, category) {
			out = append(out, item)
		}
	}
	return out
}

// ByTag returns visible items carrying the given tag.
func (s *Store) ByTag(tag string) []Item {
	var out []Item
	for _, item := range s.List() {
		if item.HasTag(tag) {
			out = append(out, item)
		}
	}
	return out
}

// Categories returns the sorted set of categories across visible items.
func (s *Store) Categories() []string {
	return s.collect(func(item Item) []string { return []string{item.Category} })
}

// Tags returns the sorted set of tags across visible items.
func (s *Store) Tags() []string {
	return s.collect(func(item Item) []string { return item.Tags })
}

func (s *Store) collect(f func(Item) []string) []string {
	seen := make(map[string]struct{})
	for _, item := range s.List() {
		for _, v := range f(item) {
			if v != "" {
				seen[v] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
