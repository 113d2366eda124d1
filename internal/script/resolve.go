package script

import (
	"fmt"
	"strings"
)

// Catalog indexes character records by id.
type Catalog struct {
	byID map[string]Character
}

// NewCatalog builds a catalog. When ids repeat, the record loaded first wins.
func NewCatalog(chars []Character) *Catalog {
	c := &Catalog{byID: make(map[string]Character, len(chars))}
	for _, ch := range chars {
		if ch.ID == "" {
			continue
		}
		if _, ok := c.byID[ch.ID]; !ok {
			c.byID[ch.ID] = ch
		}
	}
	return c
}

// Lookup finds the record whose id equals id exactly.
func (c *Catalog) Lookup(id string) (Character, bool) {
	ch, ok := c.byID[id]
	return ch, ok
}

// Len reports the number of distinct ids.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// UnresolvedError lists homebrew references with no matching character.
type UnresolvedError struct {
	IDs []string
}

func (e *UnresolvedError) Error() string {
	if len(e.IDs) == 1 {
		return "unable to find homebrew character with ID " + e.IDs[0]
	}
	return "unable to find homebrew characters with IDs " + strings.Join(e.IDs, ", ")
}

// Resolver substitutes homebrew references with character records.
type Resolver struct {
	Catalog *Catalog
	Prefix  string

	// OnScript, if set, is called after each script is resolved.
	OnScript func(index int, s Script)
}

// NewResolver returns a Resolver using the default homebrew prefix.
func NewResolver(catalog *Catalog) *Resolver {
	return &Resolver{Catalog: catalog, Prefix: DefaultHomebrewPrefix}
}

// Resolve returns new scripts in which every homebrew reference has been
// replaced by its character record. Inputs are left untouched. If any
// reference cannot be found, no scripts are returned and the error is an
// *UnresolvedError naming every missing id in the order encountered.
func (r *Resolver) Resolve(scripts []Script) ([]Script, error) {
	var missing []string
	seen := make(map[string]bool)

	out := make([]Script, len(scripts))
	for i, s := range scripts {
		resolved := Script{Source: s.Source, Elements: make([]Element, len(s.Elements))}
		for j, el := range s.Elements {
			if el.Classify(r.Prefix) != KindReference {
				resolved.Elements[j] = el
				continue
			}
			id := el.String()
			ch, ok := r.Catalog.Lookup(id)
			if !ok {
				if !seen[id] {
					seen[id] = true
					missing = append(missing, id)
				}
				continue
			}
			resolved.Elements[j] = Element{Raw: ch.Raw}
		}
		out[i] = resolved
		if r.OnScript != nil {
			r.OnScript(i, resolved)
		}
	}

	if len(missing) > 0 {
		return nil, &UnresolvedError{IDs: missing}
	}
	return out, nil
}

// Check reports an error if any element of s is still a homebrew reference.
func (r *Resolver) Check(s Script) error {
	for i, el := range s.Elements {
		if el.Classify(r.Prefix) == KindReference {
			return fmt.Errorf("script %s: element %d is an unresolved reference %q", s.Source, i, el.String())
		}
	}
	return nil
}
