// ABOUTME: Agent profile types and the immutable catalog with fixed iteration order.
// ABOUTME: Lookup by ID, ordered listing, and lightweight summaries for clients.

package catalog

import "errors"

// ErrAgentNotFound is returned when the requested agent ID is not in the catalog.
var ErrAgentNotFound = errors.New("agent not found")

// Profile describes one specialist assistant. Profiles are built once at
// startup and never mutated; callers must treat them as read-only.
type Profile struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Speciality     string   `json:"speciality"`
	Icon           string   `json:"icon"`
	Color          string   `json:"color"`
	Pronoun        string   `json:"-"`
	WelcomeMessage string   `json:"welcomeMessage"`
	Capabilities   []string `json:"capabilities"`
	Keywords       []string `json:"keywords"`
}

// Summary is the lightweight profile view sent in agent listings.
type Summary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Speciality string `json:"speciality"`
	Icon       string `json:"icon"`
	Color      string `json:"color"`
}

// Catalog is an ordered, immutable set of agent profiles. Iteration order is
// the order profiles were registered in; scoring relies on it being stable.
type Catalog struct {
	order    []string
	profiles map[string]*Profile
}

// New builds a catalog from the given profiles, preserving their order.
func New(profiles []*Profile) *Catalog {
	c := &Catalog{
		order:    make([]string, 0, len(profiles)),
		profiles: make(map[string]*Profile, len(profiles)),
	}
	for _, p := range profiles {
		if _, exists := c.profiles[p.ID]; exists {
			continue
		}
		c.order = append(c.order, p.ID)
		c.profiles[p.ID] = p
	}
	return c
}

// Lookup returns the profile for the given agent ID.
// Returns ErrAgentNotFound if the ID is unknown.
func (c *Catalog) Lookup(id string) (*Profile, error) {
	p, ok := c.profiles[id]
	if !ok {
		return nil, ErrAgentNotFound
	}
	return p, nil
}

// IDs returns the agent IDs in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.order))
	copy(ids, c.order)
	return ids
}

// Profiles returns all profiles in catalog order.
func (c *Catalog) Profiles() []*Profile {
	out := make([]*Profile, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.profiles[id])
	}
	return out
}

// Summaries returns the lightweight view of all profiles in catalog order.
func (c *Catalog) Summaries() []Summary {
	out := make([]Summary, 0, len(c.order))
	for _, id := range c.order {
		p := c.profiles[id]
		out = append(out, Summary{
			ID:         p.ID,
			Name:       p.Name,
			Speciality: p.Speciality,
			Icon:       p.Icon,
			Color:      p.Color,
		})
	}
	return out
}

// Len returns the number of profiles in the catalog.
func (c *Catalog) Len() int {
	return len(c.order)
}
