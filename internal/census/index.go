package census

import "github.com/ppiankov/censusflat/internal/model"

// DefaultMaxDepth bounds every descent through subElements
const DefaultMaxDepth = 10

// Index maps element id to element. Absent ids mean "no such element".
type Index map[string]*model.Element

// BuildIndex indexes elements by id. On duplicate ids the last one wins.
func BuildIndex(elements []model.Element) Index {
	idx := make(Index, len(elements))
	for i := range elements {
		idx[elements[i].ID] = &elements[i]
	}
	return idx
}

// Get returns the element with the given id, or nil
func (idx Index) Get(id string) *model.Element {
	return idx[id]
}

// Descendants returns every element reachable from rootID through
// subElements, root included, in depth-first pre-order. Nodes deeper than
// maxDepth are cut off silently, which also stops cycles.
func (idx Index) Descendants(rootID string, maxDepth int) []*model.Element {
	var out []*model.Element
	idx.walk(rootID, 0, maxDepth, func(e *model.Element) {
		out = append(out, e)
	})
	return out
}

// Fields is Descendants restricted to FIELD elements
func (idx Index) Fields(rootID string, maxDepth int) []*model.Element {
	var out []*model.Element
	idx.walk(rootID, 0, maxDepth, func(e *model.Element) {
		if e.Is(model.ElementField) {
			out = append(out, e)
		}
	})
	return out
}

func (idx Index) walk(id string, depth, maxDepth int, visit func(*model.Element)) {
	if depth > maxDepth {
		return
	}
	elem := idx[id]
	if elem == nil {
		return
	}
	visit(elem)
	for _, sub := range elem.SubElements {
		idx.walk(sub.ID, depth+1, maxDepth, visit)
	}
}
