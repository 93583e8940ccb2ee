package xref

import (
	"sort"
	"strconv"
)

// Graph is a serializable view of an index: one node per id and one link
// per resolved or dangling cross reference.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes" toml:"nodes"`
	Links []Link `json:"links" yaml:"links" toml:"links"`
	Stats Stats  `json:"stats" yaml:"stats" toml:"stats"`
}

// Node is an indexed reflection.
type Node struct {
	ID    int    `json:"id" yaml:"id" toml:"id"`
	Name  string `json:"name" yaml:"name" toml:"name"`
	Kind  string `json:"kind" yaml:"kind" toml:"kind"`
	Label string `json:"label" yaml:"label" toml:"label"`
}

// Link is a cross reference. Dangling links point outside the tree.
type Link struct {
	Source   int    `json:"source" yaml:"source" toml:"source"`
	Target   int    `json:"target" yaml:"target" toml:"target"`
	Type     string `json:"type" yaml:"type" toml:"type"`
	Weight   int    `json:"value" yaml:"value" toml:"value"`
	Dangling bool   `json:"dangling,omitempty" yaml:"dangling,omitempty" toml:"dangling,omitempty"`
}

// Stats summarizes the graph.
type Stats struct {
	TotalNodes    int `json:"total_nodes" yaml:"total_nodes" toml:"total_nodes"`
	TotalLinks    int `json:"total_links" yaml:"total_links" toml:"total_links"`
	DanglingLinks int `json:"dangling_links" yaml:"dangling_links" toml:"dangling_links"`
	Duplicates    int `json:"duplicate_ids" yaml:"duplicate_ids" toml:"duplicate_ids"`
}

// Graph builds the serializable view. Repeated references between the same
// pair of nodes with the same kind collapse into one link with a weight.
func (ix *Index) Graph() *Graph {
	g := &Graph{Nodes: []Node{}, Links: []Link{}}
	for _, id := range ix.order {
		n := ix.nodes[id].Node()
		g.Nodes = append(g.Nodes, Node{
			ID:    id,
			Name:  n.Name,
			Kind:  n.Kind.Serialized(),
			Label: n.Kind.Serialized() + " " + n.Name,
		})
	}

	linkMap := make(map[string]*Link)
	var keys []string
	for _, e := range ix.edges {
		key := strconv.Itoa(e.From) + "_" + string(e.Kind) + "_" + strconv.Itoa(e.To)
		if l, ok := linkMap[key]; ok {
			l.Weight++
			continue
		}
		_, resolved := ix.nodes[e.To]
		linkMap[key] = &Link{Source: e.From, Target: e.To, Type: string(e.Kind), Weight: 1, Dangling: !resolved}
		keys = append(keys, key)
	}
	for _, key := range keys {
		l := linkMap[key]
		g.Links = append(g.Links, *l)
		if l.Dangling {
			g.Stats.DanglingLinks++
		}
	}
	sort.SliceStable(g.Links, func(i, j int) bool { return g.Links[i].Source < g.Links[j].Source })

	g.Stats.TotalNodes = len(g.Nodes)
	g.Stats.TotalLinks = len(g.Links)
	g.Stats.Duplicates = len(ix.duplicates)
	return g
}
