// Package xref indexes a decoded reflection tree by id and resolves the
// cross references the decoder leaves as raw ids.
package xref

import (
	"sort"

	"github.com/teranos/typedoc/typedoc"
)

// EdgeKind names the field a cross reference was read from.
type EdgeKind string

const (
	EdgeTarget        EdgeKind = "target"        // ReferenceReflection.Target
	EdgeOverwrites    EdgeKind = "overwrites"    // overwritten member
	EdgeInheritedFrom EdgeKind = "inheritedFrom" // inherited member
	EdgeExtendedBy    EdgeKind = "extendedBy"
	EdgeImplementedBy EdgeKind = "implementedBy"
	EdgeType          EdgeKind = "type" // internal ReferenceType in any type expression
)

// Edge is a cross reference from one node to an id.
type Edge struct {
	From int
	Kind EdgeKind
	To   int
	// Name is the referenced name as written at the source, when known.
	Name string
}

// Index maps ids to nodes and records every cross reference of a tree.
type Index struct {
	nodes      map[int]typedoc.Reflection
	order      []int
	edges      []Edge
	duplicates []int
}

// Build indexes every node reachable from root. When an id occurs twice
// the first node in document order is kept and the id is reported by
// Duplicates.
func Build(root typedoc.Reflection) *Index {
	ix := &Index{nodes: make(map[int]typedoc.Reflection)}
	typedoc.Walk(root, func(r typedoc.Reflection, _ int) bool {
		id := r.Node().ID
		if _, exists := ix.nodes[id]; exists {
			ix.duplicates = append(ix.duplicates, id)
		} else {
			ix.nodes[id] = r
			ix.order = append(ix.order, id)
		}
		ix.collect(r)
		return true
	})
	return ix
}

func (ix *Index) add(from int, kind EdgeKind, ref *typedoc.ReferenceType) {
	if ref == nil || ref.ID == nil {
		return
	}
	ix.edges = append(ix.edges, Edge{From: from, Kind: kind, To: *ref.ID, Name: ref.Name})
}

func (ix *Index) collect(r typedoc.Reflection) {
	from := r.Node().ID
	types := func(ts ...typedoc.Type) {
		for _, t := range ts {
			ix.collectType(from, t)
		}
	}
	declaration := func(d *typedoc.DeclarationReflection) {
		ix.add(from, EdgeOverwrites, d.Overwrites)
		ix.add(from, EdgeInheritedFrom, d.InheritedFrom)
		for _, ref := range d.ExtendedBy {
			ix.add(from, EdgeExtendedBy, ref)
		}
		for _, ref := range d.ImplementedBy {
			ix.add(from, EdgeImplementedBy, ref)
		}
		types(d.Type)
		types(d.ExtendedTypes...)
		types(d.ImplementedTypes...)
	}

	switch n := r.(type) {
	case *typedoc.ReferenceReflection:
		ix.edges = append(ix.edges, Edge{From: from, Kind: EdgeTarget, To: n.Target, Name: n.Name})
		declaration(&n.DeclarationReflection)
	case *typedoc.DeclarationReflection:
		declaration(n)
	case *typedoc.SignatureReflection:
		ix.add(from, EdgeOverwrites, n.Overwrites)
		ix.add(from, EdgeInheritedFrom, n.InheritedFrom)
		types(n.Type)
	case *typedoc.ParameterReflection:
		types(n.Type)
	case *typedoc.TypeParameterReflection:
		types(n.Type, n.Default)
	}
}

// collectType records internal references inside a type expression.
// Inline reflection declarations are nodes of their own and are visited
// by the walk.
func (ix *Index) collectType(from int, t typedoc.Type) {
	switch t := t.(type) {
	case *typedoc.ReferenceType:
		ix.add(from, EdgeType, t)
		for _, a := range t.TypeArguments {
			ix.collectType(from, a)
		}
	case *typedoc.ArrayType:
		ix.collectType(from, t.ElementType)
	case *typedoc.UnionType:
		for _, m := range t.Types {
			ix.collectType(from, m)
		}
	}
}

// Len returns the number of distinct ids.
func (ix *Index) Len() int { return len(ix.nodes) }

// Lookup returns the node with id.
func (ix *Index) Lookup(id int) (typedoc.Reflection, bool) {
	r, ok := ix.nodes[id]
	return r, ok
}

// Resolve returns the node an edge points to.
func (ix *Index) Resolve(e Edge) (typedoc.Reflection, bool) {
	return ix.Lookup(e.To)
}

// Edges returns every cross reference in document order.
func (ix *Index) Edges() []Edge {
	return append([]Edge(nil), ix.edges...)
}

// Dangling returns the edges whose target id is not in the tree, sorted by
// target then source. These usually point into external packages.
func (ix *Index) Dangling() []Edge {
	var out []Edge
	for _, e := range ix.edges {
		if _, ok := ix.nodes[e.To]; !ok {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].To != out[j].To {
			return out[i].To < out[j].To
		}
		return out[i].From < out[j].From
	})
	return out
}

// Duplicates returns ids that occur more than once, sorted.
func (ix *Index) Duplicates() []int {
	out := append([]int(nil), ix.duplicates...)
	sort.Ints(out)
	return out
}

// CountByKind returns how many indexed nodes have each kind.
func (ix *Index) CountByKind() map[typedoc.ReflectionKind]int {
	counts := make(map[typedoc.ReflectionKind]int)
	for _, r := range ix.nodes {
		counts[r.Node().Kind]++
	}
	return counts
}
