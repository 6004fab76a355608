package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

// ErrNotFound is returned when no content file backs the requested slug.
var ErrNotFound = errors.New("content: not found")

// Item is one parsed content file. It is built fresh on every read and never
// retained by the store.
type Item struct {
	Slug     string
	Metadata Metadata
	Body     []byte
}

// Entry is the metadata-only projection of an Item used by listings.
type Entry struct {
	Slug     string
	Metadata Metadata
}

// Listing is an ordered sequence of entries of one category.
type Listing []Entry

// SortByPublished orders the listing newest first by comparing the raw
// publishedAt strings. Entries with equal values keep their relative order.
func (l Listing) SortByPublished() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].Metadata.PublishedAt() > l[j].Metadata.PublishedAt()
	})
}

// Store reads content files from a filesystem laid out as <category>/<file>.
// It holds no parsed state: every call goes back to the filesystem.
type Store struct {
	fsys fs.FS
}

// NewStore returns a Store over fsys.
func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys}
}

// NewDirStore returns a Store rooted at the directory dir.
func NewDirStore(dir string) *Store {
	return NewStore(os.DirFS(dir))
}

// SlugOf derives the slug of a content file by stripping its extension.
func SlugOf(filename string) string {
	return strings.TrimSuffix(filename, path.Ext(filename))
}

func validName(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

// files returns the non-directory entries of category in directory order.
func (s *Store) files(category string) ([]fs.DirEntry, error) {
	if !validName(category) {
		return nil, fmt.Errorf("content: invalid category %q", category)
	}
	entries, err := fs.ReadDir(s.fsys, category)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", category, err)
	}
	out := entries[:0]
	for _, e := range entries {
		if !e.IsDir() {
			out = append(out, e)
		}
	}
	return out, nil
}

// StaticPaths returns the slugs of every file in category. This is the exact
// set of article routes that resolve; nothing outside it is ever served.
func (s *Store) StaticPaths(category string) ([]string, error) {
	entries, err := s.files(category)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(entries))
	for _, e := range entries {
		slugs = append(slugs, SlugOf(e.Name()))
	}
	return slugs, nil
}

// List parses the metadata of every file in category and returns one entry per
// file, in directory order. A single malformed file fails the whole listing.
func (s *Store) List(category string) (Listing, error) {
	entries, err := s.files(category)
	if err != nil {
		return nil, err
	}
	listing := make(Listing, 0, len(entries))
	for _, e := range entries {
		meta, _, err := s.parse(category, e.Name())
		if err != nil {
			return nil, err
		}
		listing = append(listing, Entry{Slug: SlugOf(e.Name()), Metadata: meta})
	}
	return listing, nil
}

// Get reads the file backing slug in category. Slugs outside StaticPaths
// return ErrNotFound.
func (s *Store) Get(category, slug string) (Item, error) {
	if !validName(slug) {
		return Item{}, ErrNotFound
	}
	entries, err := s.files(category)
	if err != nil {
		return Item{}, err
	}
	for _, e := range entries {
		if SlugOf(e.Name()) != slug {
			continue
		}
		meta, body, err := s.parse(category, e.Name())
		if err != nil {
			return Item{}, err
		}
		return Item{Slug: slug, Metadata: meta, Body: body}, nil
	}
	return Item{}, ErrNotFound
}

func (s *Store) parse(category, name string) (Metadata, []byte, error) {
	p := path.Join(category, name)
	src, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("content: read %s: %w", p, err)
	}
	meta, body, err := ParseFrontMatter(src)
	if err != nil {
		return nil, nil, fmt.Errorf("content: %s: %w", p, err)
	}
	return meta, body, nil
}
