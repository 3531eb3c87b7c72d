package core

import "strings"

// Matcher resolves a free-text query against the user knowledge.
type Matcher interface {
	Resolve(query string, user *Knowledge) (Match, bool)
}

// Resolver combines the built-in table, the synonym table and the user
// knowledge. It is stateless once built and safe for concurrent use.
type Resolver struct {
	builtin  *Knowledge
	synonyms []Alias
}

// NewResolver returns a Resolver over the compiled-in tables.
func NewResolver() *Resolver {
	return NewResolverWith(BuiltinKnowledge(), BuiltinSynonyms())
}

// NewResolverWith returns a Resolver over custom tables.
func NewResolverWith(builtin *Knowledge, synonyms []Alias) *Resolver {
	if builtin == nil {
		builtin = NewKnowledge()
	}
	return &Resolver{builtin: builtin, synonyms: synonyms}
}

// Resolve finds the entry for query. The first hit wins, in this order:
//
//  1. exact user key
//  2. exact built-in key
//  3. alias contained in the query whose canonical key is a user key
//  4. alias contained in the query whose canonical key is a built-in key
//  5. user key contained in the query, or containing it
//  6. built-in key contained in the query, or containing it
//
// Scans follow enumeration order; there is no ranking by match length.
// An empty query never matches.
func (r *Resolver) Resolve(query string, user *Knowledge) (Match, bool) {
	q := NormalizeKey(query)
	if q == "" {
		return Match{}, false
	}

	if e, ok := user.Get(q); ok {
		return Match{Key: q, Entry: e, Source: SourceUser}, true
	}
	if e, ok := r.builtin.Get(q); ok {
		return Match{Key: q, Entry: e, Source: SourceBuiltin}, true
	}

	if m, ok := r.bySynonym(q, user, SourceUser); ok {
		return m, true
	}
	if m, ok := r.bySynonym(q, r.builtin, SourceBuiltin); ok {
		return m, true
	}

	if m, ok := bySubstring(q, user, SourceUser); ok {
		return m, true
	}
	return bySubstring(q, r.builtin, SourceBuiltin)
}

func (r *Resolver) bySynonym(q string, k *Knowledge, src Source) (Match, bool) {
	for _, a := range r.synonyms {
		if !strings.Contains(q, a.Phrase) {
			continue
		}
		if e, ok := k.Get(a.Key); ok {
			return Match{Key: a.Key, Entry: e, Source: src}, true
		}
	}
	return Match{}, false
}

func bySubstring(q string, k *Knowledge, src Source) (m Match, found bool) {
	k.Range(func(key string, e Entry) bool {
		if strings.Contains(q, key) || strings.Contains(key, q) {
			m, found = Match{Key: key, Entry: e, Source: src}, true
			return false
		}
		return true
	})
	return m, found
}
