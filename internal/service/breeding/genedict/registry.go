// Package genedict resolves gene-name spelling variants to canonical names
// and inheritance categories.
//
// A Registry is immutable once built. Callers that need a different gene
// set build a new Registry and swap the reference.
package genedict

import (
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/albertbit-cyber/Breeding-planner-sub000/internal/domain"
)

const superPrefix = "super"

// Entry is one dictionary gene with its spelling variants.
type Entry struct {
	Name     string          `json:"name"`
	Category domain.Category `json:"category"`
	Aliases  []string        `json:"aliases,omitempty"`
}

// Registry is a read-only gene lookup table.
type Registry struct {
	entries    []Entry
	canonical  map[string]string          // normalized key -> canonical name
	categories map[string]domain.Category // normalized canonical -> category
	compact    map[string]string          // compact key -> canonical name

	maxWords      int
	maxCompactLen int
}

// New builds a registry from entries in order. Entries with an empty name
// are ignored; on key collisions the first registered name wins.
func New(entries ...Entry) *Registry {
	r := &Registry{
		canonical:  make(map[string]string, len(entries)*2),
		categories: make(map[string]domain.Category, len(entries)),
		compact:    make(map[string]string, len(entries)*3),
	}
	for _, e := range entries {
		r.add(e)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry of built-in genes, built on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New(Builtin()...)
	})
	return defaultRegistry
}

func (r *Registry) add(e Entry) {
	name := strings.Join(strings.Fields(e.Name), " ")
	nameKey := NormalizeKey(name)
	if nameKey == "" {
		return
	}
	if _, taken := r.canonical[nameKey]; taken {
		return
	}
	category := e.Category
	if !category.IsValid() {
		category = domain.CategoryOther
	}

	kept := Entry{Name: name, Category: category}
	r.categories[nameKey] = category
	r.register(nameKey, name)

	for _, alias := range e.Aliases {
		aliasKey := NormalizeKey(alias)
		if aliasKey == "" || aliasKey == nameKey {
			continue
		}
		if _, taken := r.canonical[aliasKey]; taken {
			continue
		}
		r.register(aliasKey, name)
		kept.Aliases = append(kept.Aliases, strings.TrimSpace(alias))
	}

	if category == domain.CategoryIncompleteDominant || category == domain.CategoryDominant {
		r.registerCompact(superPrefix+CompactKey(nameKey), domain.SuperLabel(name))
		for _, alias := range kept.Aliases {
			r.registerCompact(superPrefix+CompactKey(alias), domain.SuperLabel(name))
		}
	}

	r.entries = append(r.entries, kept)
}

func (r *Registry) register(key, name string) {
	r.canonical[key] = name
	if words := strings.Count(key, " ") + 1; words > r.maxWords {
		r.maxWords = words
	}
	r.registerCompact(CompactKey(key), name)
}

func (r *Registry) registerCompact(key, name string) {
	if key == "" {
		return
	}
	if _, taken := r.compact[key]; taken {
		return
	}
	r.compact[key] = name
	if n := utf8.RuneCountInString(key); n > r.maxCompactLen {
		r.maxCompactLen = n
	}
}

// NormalizeKey folds a gene spelling into its lookup key: brackets are
// removed, "-", "_" and "/" become spaces, whitespace is collapsed and the
// result is lowercased. Empty input yields "" which never matches.
func NormalizeKey(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	raw = norm.NFKC.String(raw)
	raw = strings.Map(func(r rune) rune {
		switch r {
		case '(', ')', '[', ']', '{', '}':
			return -1
		case '-', '_', '/':
			return ' '
		}
		return r
	}, raw)
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// CompactKey is NormalizeKey with all spaces removed.
func CompactKey(raw string) string {
	return strings.ReplaceAll(NormalizeKey(raw), " ", "")
}

// LookupCanonical returns the canonical name for raw, if registered.
func (r *Registry) LookupCanonical(raw string) (string, bool) {
	key := NormalizeKey(raw)
	if key == "" {
		return "", false
	}
	name, ok := r.canonical[key]
	return name, ok
}

// Canonical returns the canonical name for raw, or raw itself with its
// whitespace collapsed when the gene is unknown.
func (r *Registry) Canonical(raw string) string {
	if name, ok := r.LookupCanonical(raw); ok {
		return name
	}
	return strings.Join(strings.Fields(raw), " ")
}

// Category returns the registered category for any spelling of a gene.
func (r *Registry) Category(raw string) (domain.Category, bool) {
	name, ok := r.LookupCanonical(raw)
	if !ok {
		return "", false
	}
	c, ok := r.categories[NormalizeKey(name)]
	return c, ok
}

// CategoryOf resolves the category used for inheritance. A gene written
// with het or percentage markers is always Recessive; unknown genes are
// Other.
func (r *Registry) CategoryOf(raw string, hetMarked bool) domain.Category {
	if hetMarked {
		return domain.CategoryRecessive
	}
	if c, ok := r.Category(raw); ok {
		return c
	}
	return domain.CategoryOther
}

// LookupCompact resolves a compact key, including synthetic "super" keys.
func (r *Registry) LookupCompact(key string) (string, bool) {
	name, ok := r.compact[key]
	return name, ok
}

// MaxWords is the word count of the longest registered name or alias.
func (r *Registry) MaxWords() int { return r.maxWords }

// MaxCompactLen is the rune length of the longest compact key.
func (r *Registry) MaxCompactLen() int { return r.maxCompactLen }

// Len returns the number of canonical genes.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns the registered genes in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		out[i] = Entry{Name: e.Name, Category: e.Category, Aliases: append([]string(nil), e.Aliases...)}
	}
	return out
}
