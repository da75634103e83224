package schema

import (
	"strings"

	"github.com/rankwise/semgraph/pkg/common"
)

// Property describes one Schema.org property on a type.
type Property struct {
	Name        string `json:"name"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
	Example     string `json:"example,omitempty"`
}

// TypeDef is the flat, catalog-file form of a Schema.org type. Parent
// is empty only for the root.
type TypeDef struct {
	Name        string     `json:"name"`
	Parent      string     `json:"parent,omitempty"`
	Description string     `json:"description,omitempty"`
	SearchTag   string     `json:"search_tag,omitempty"`
	Properties  []Property `json:"properties,omitempty"`
}

// TypeNode is a node in the assembled hierarchy tree.
type TypeNode struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	SearchTag   string      `json:"search_tag,omitempty"`
	Properties  []Property  `json:"properties,omitempty"`
	Parent      *TypeNode   `json:"-"`
	Children    []*TypeNode `json:"children,omitempty"`
}

// Index is the queryable Schema.org type hierarchy. The catalog is
// static reference data, so an Index is built once per catalog version
// and read concurrently without locking.
type Index struct {
	root  *TypeNode
	nodes map[string]*TypeNode
}

// BuildIndex assembles the flat catalog into a single-rooted tree. It
// fails with a HierarchyIntegrityError on duplicate names, dangling
// parent references, multiple roots, or cycles; a partially built tree
// is never returned.
func BuildIndex(defs []TypeDef) (*Index, error) {
	if len(defs) == 0 {
		return nil, &common.HierarchyIntegrityError{Reason: "empty catalog"}
	}

	nodes := make(map[string]*TypeNode, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			return nil, &common.HierarchyIntegrityError{Reason: "type with empty name"}
		}
		if _, exists := nodes[def.Name]; exists {
			return nil, &common.HierarchyIntegrityError{TypeName: def.Name, Reason: "duplicate type name"}
		}
		nodes[def.Name] = &TypeNode{
			Name:        def.Name,
			Description: def.Description,
			SearchTag:   def.SearchTag,
			Properties:  append([]Property(nil), def.Properties...),
		}
	}

	var root *TypeNode
	for _, def := range defs {
		node := nodes[def.Name]
		if def.Parent == "" {
			if root != nil {
				return nil, &common.HierarchyIntegrityError{TypeName: def.Name, Reason: "multiple roots"}
			}
			root = node
			continue
		}
		parent, ok := nodes[def.Parent]
		if !ok {
			return nil, &common.HierarchyIntegrityError{TypeName: def.Name, Reason: "parent " + def.Parent + " does not exist"}
		}
		node.Parent = parent
		parent.Children = append(parent.Children, node)
	}
	if root == nil {
		return nil, &common.HierarchyIntegrityError{Reason: "no root type"}
	}

	// A node whose parent chain never reaches the root is part of a
	// cycle (every node has at most one parent, so unreachable implies
	// cyclic).
	for name, node := range nodes {
		seen := 0
		cur := node
		for cur.Parent != nil {
			cur = cur.Parent
			seen++
			if seen > len(nodes) {
				return nil, &common.HierarchyIntegrityError{TypeName: name, Reason: "cycle in parent chain"}
			}
		}
		if cur != root {
			return nil, &common.HierarchyIntegrityError{TypeName: name, Reason: "cycle in parent chain"}
		}
	}

	return &Index{root: root, nodes: nodes}, nil
}

// Root returns the root of the hierarchy.
func (idx *Index) Root() *TypeNode {
	return idx.root
}

// Find returns the node with the given name, or nil.
func (idx *Index) Find(name string) *TypeNode {
	return idx.nodes[name]
}

// Ancestors returns the chain from the named node up to the root,
// starting with the node itself. Unknown names yield nil.
func (idx *Index) Ancestors(name string) []*TypeNode {
	node := idx.nodes[name]
	if node == nil {
		return nil
	}
	var chain []*TypeNode
	for cur := node; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	return chain
}

// Properties returns the properties of the named type. With inherited
// set, each ancestor's properties are merged in; when a nearer node
// redefines a property name, its definition wins over the ancestor's.
func (idx *Index) Properties(name string, inherited bool) []Property {
	node := idx.nodes[name]
	if node == nil {
		return nil
	}
	if !inherited {
		return append([]Property(nil), node.Properties...)
	}

	// Walk root-down so closer definitions overwrite farther ones while
	// keeping the ancestor-first declaration order for new names.
	chain := idx.Ancestors(name)
	var merged []Property
	index := make(map[string]int)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, prop := range chain[i].Properties {
			if at, ok := index[prop.Name]; ok {
				merged[at] = prop
				continue
			}
			index[prop.Name] = len(merged)
			merged = append(merged, prop)
		}
	}
	return merged
}

// DescendantCount returns how many types live below the named node.
func (idx *Index) DescendantCount(name string) int {
	node := idx.nodes[name]
	if node == nil {
		return 0
	}
	count := 0
	stack := append([]*TypeNode(nil), node.Children...)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, cur.Children...)
	}
	return count
}

// Search returns every node whose name, description, or search tag
// contains the query, case-insensitive. Results follow a stable
// depth-first order from the root. A blank query matches nothing.
func (idx *Index) Search(query string) []*TypeNode {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []*TypeNode
	var walk func(node *TypeNode)
	walk = func(node *TypeNode) {
		if strings.Contains(strings.ToLower(node.Name), query) ||
			strings.Contains(strings.ToLower(node.Description), query) ||
			strings.Contains(strings.ToLower(node.SearchTag), query) {
			matches = append(matches, node)
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(idx.root)
	return matches
}

// Len returns the number of types in the index.
func (idx *Index) Len() int {
	return len(idx.nodes)
}
