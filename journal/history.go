package journal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// History is a directed graph of exchange-rate observations between
// commodities. Nodes are commodities; an edge from A to B holds the
// time-ordered list of observed rates of one A in units of B. Recording a
// price adds the edge in one direction only; conversion lookups traverse
// edges as recorded.
type History struct {
	nodes []*Commodity

	// edges[from][to] holds observations sorted by time, oldest first.
	edges map[CommodityIndex]map[CommodityIndex]*priceSeries
}

type priceSeries struct {
	points []PricePoint
}

// NewHistory creates an empty price graph.
func NewHistory() *History {
	return &History{
		edges: make(map[CommodityIndex]map[CommodityIndex]*priceSeries),
	}
}

// AddCommodity adds a node to the graph and returns its index. Callers go
// through Pool.FindOrCreate, which guarantees symbol uniqueness.
func (h *History) AddCommodity(c *Commodity) CommodityIndex {
	h.nodes = append(h.nodes, c)
	return CommodityIndex(len(h.nodes) - 1)
}

// Commodity returns the node at the given index.
func (h *History) Commodity(i CommodityIndex) *Commodity {
	return h.nodes[i]
}

// NodeCount returns the number of commodities in the graph.
func (h *History) NodeCount() int {
	return len(h.nodes)
}

// EdgeCount returns the number of directed commodity pairs with at least one
// observation.
func (h *History) EdgeCount() int {
	n := 0
	for _, tos := range h.edges {
		n += len(tos)
	}
	return n
}

// AddPrice records an observation that one unit of from was worth
// point.Rate units of to at point.When. Multiple observations for the same
// pair at the same moment keep the most recent insertion.
func (h *History) AddPrice(from, to CommodityIndex, point PricePoint) error {
	if from == to {
		return fmt.Errorf("cannot record a price from %s to itself", h.nodes[from].Symbol)
	}

	tos, ok := h.edges[from]
	if !ok {
		tos = make(map[CommodityIndex]*priceSeries)
		h.edges[from] = tos
	}
	series, ok := tos[to]
	if !ok {
		series = &priceSeries{}
		tos[to] = series
	}

	n, found := slices.BinarySearchFunc(series.points, point, func(a, b PricePoint) int {
		return a.When.Compare(b.When)
	})
	if found {
		series.points[n] = point
	} else {
		series.points = slices.Insert(series.points, n, point)
	}
	return nil
}

// at returns the most recent observation on an edge not newer than moment.
func (s *priceSeries) at(moment time.Time) (PricePoint, bool) {
	probe := PricePoint{When: moment}
	n, found := slices.BinarySearchFunc(s.points, probe, func(a, b PricePoint) int {
		return a.When.Compare(b.When)
	})
	if found {
		return s.points[n], true
	}
	if n == 0 {
		return PricePoint{}, false
	}
	return s.points[n-1], true
}

// DirectPrice returns the newest directly-recorded rate from one commodity
// to another, no later than moment.
func (h *History) DirectPrice(from, to CommodityIndex, moment time.Time) (PricePoint, bool) {
	series, ok := h.edges[from][to]
	if !ok {
		return PricePoint{}, false
	}
	return series.at(moment)
}

// FindPrice converts between two commodities at the given moment, following
// intermediate commodities when no direct rate exists. Among usable paths it
// picks one with the fewest hops; the composed rate is the product of the
// per-hop rates and the returned When is the most recent observation along
// the path. Converting a commodity to itself yields rate one.
func (h *History) FindPrice(from, to CommodityIndex, moment time.Time) (PricePoint, bool) {
	if from == to {
		return PricePoint{When: moment, Rate: decimal.NewFromInt(1)}, true
	}
	if point, ok := h.DirectPrice(from, to, moment); ok {
		return point, true
	}

	// Breadth-first search over edges that have at least one observation at
	// or before moment, so the shortest usable hop chain wins.
	visited := map[CommodityIndex]hop{from: {prev: from}}
	queue := []CommodityIndex{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for next, series := range h.edges[cur] {
			if _, seen := visited[next]; seen {
				continue
			}
			point, ok := series.at(moment)
			if !ok {
				continue
			}
			visited[next] = hop{prev: cur, point: point}
			if next == to {
				return h.composePath(from, to, visited), true
			}
			queue = append(queue, next)
		}
	}
	return PricePoint{}, false
}

func (h *History) composePath(from, to CommodityIndex, visited map[CommodityIndex]hop) PricePoint {
	rate := decimal.NewFromInt(1)
	var when time.Time
	for cur := to; cur != from; {
		step := visited[cur]
		rate = rate.Mul(step.point.Rate)
		if step.point.When.After(when) {
			when = step.point.When
		}
		cur = step.prev
	}
	return PricePoint{When: when, Rate: rate}
}

type hop struct {
	prev  CommodityIndex
	point PricePoint
}
