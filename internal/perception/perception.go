// Package perception answers which agents an observer can see, given the
// observer's line-of-sight region.
package perception

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"

	"chosenoffset.com/sightline/internal/core/los"
)

// R-tree fan-out, see rtreego.NewTree
const (
	minChildren = 25
	maxChildren = 50
)

// agentExtent is the half size of the box an agent occupies in the index.
// Agents are points; the box only has to be non-degenerate.
const agentExtent = 0.01

// Agent is anything that can be seen. Position is in world units.
type Agent struct {
	ID   int
	Name string
	X, Y float64
}

// Bounds implements rtreego.Spatial
func (a *Agent) Bounds() rtreego.Rect {
	return rtreego.Point{a.X, a.Y}.ToRect(agentExtent)
}

// Index is a spatial index of agents. Not safe for concurrent use.
type Index struct {
	tree   *rtreego.Rtree
	agents map[int]*Agent
}

// NewIndex bulk loads agents into a new index. Duplicate IDs are rejected.
func NewIndex(agents ...*Agent) (*Index, error) {
	byID := make(map[int]*Agent, len(agents))
	spatials := make([]rtreego.Spatial, 0, len(agents))
	for _, a := range agents {
		if _, dup := byID[a.ID]; dup {
			return nil, fmt.Errorf("duplicate agent id %d", a.ID)
		}
		byID[a.ID] = a
		spatials = append(spatials, a)
	}

	return &Index{
		tree:   rtreego.NewTree(2, minChildren, maxChildren, spatials...),
		agents: byID,
	}, nil
}

// Len returns the number of indexed agents
func (idx *Index) Len() int {
	return idx.tree.Size()
}

// Get returns the agent with the given id
func (idx *Index) Get(id int) (*Agent, bool) {
	a, ok := idx.agents[id]
	return a, ok
}

// Add indexes a new agent
func (idx *Index) Add(a *Agent) error {
	if _, dup := idx.agents[a.ID]; dup {
		return fmt.Errorf("duplicate agent id %d", a.ID)
	}
	idx.agents[a.ID] = a
	idx.tree.Insert(a)
	return nil
}

// Move updates an agent's position
func (idx *Index) Move(id int, x, y float64) error {
	a, ok := idx.agents[id]
	if !ok {
		return fmt.Errorf("unknown agent id %d", id)
	}

	// The tree locates entries by their current bounds, so take the agent
	// out before touching its position.
	idx.tree.Delete(a)
	a.X, a.Y = x, y
	idx.tree.Insert(a)
	return nil
}

// Remove drops an agent from the index
func (idx *Index) Remove(id int) bool {
	a, ok := idx.agents[id]
	if !ok {
		return false
	}
	delete(idx.agents, id)
	return idx.tree.Delete(a)
}

// InRect returns the agents whose position lies in r, ordered by id
func (idx *Index) InRect(r los.Rect) []*Agent {
	return idx.search(r, func(*Agent) bool { return true })
}

// Visible returns the agents other than self that stand inside region,
// ordered by id.
func (idx *Index) Visible(region los.Region, self int) []*Agent {
	if region.Empty() {
		return nil
	}
	return idx.search(region.Bounds(), func(a *Agent) bool {
		return a.ID != self && region.Contains(los.Point{X: a.X, Y: a.Y})
	})
}

func (idx *Index) search(r los.Rect, keep func(*Agent) bool) []*Agent {
	bb, err := rtreego.NewRectFromPoints(rtreego.Point{r.MinX, r.MinY}, rtreego.Point{r.MaxX, r.MaxY})
	if err != nil {
		return nil
	}

	filter := func(_ []rtreego.Spatial, obj rtreego.Spatial) (refuse, abort bool) {
		return !keep(obj.(*Agent)), false
	}

	var out []*Agent
	for _, obj := range idx.tree.SearchIntersect(bb, filter) {
		out = append(out, obj.(*Agent))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
