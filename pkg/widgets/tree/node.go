package tree

import (
	"sort"
	"strings"

	"github.com/canopyui/canopy/pkg/api"
)

// Node is one entry in the tree: a branch (path segment with children) or a
// leaf carrying a document.
type Node struct {
	Key      string // last path segment
	Path     string // full slash-separated path
	Doc      *api.Doc
	Children []*Node
}

// IsBranch reports whether the node groups children rather than carrying a
// document.
func (n *Node) IsBranch() bool { return n.Doc == nil }

// build assembles the tree from documents, branching on slash-separated
// paths. Children are sorted branches-first, then by key.
func build(docs []api.Doc) *Node {
	root := &Node{}
	branches := map[string]*Node{"": root}

	ensureBranch := func(path string) *Node {
		if b, ok := branches[path]; ok {
			return b
		}
		// Create missing ancestors from the top down.
		var parent *Node = root
		var prefix string
		for _, seg := range strings.Split(path, "/") {
			if prefix == "" {
				prefix = seg
			} else {
				prefix = prefix + "/" + seg
			}
			b, ok := branches[prefix]
			if !ok {
				b = &Node{Key: seg, Path: prefix}
				parent.Children = append(parent.Children, b)
				branches[prefix] = b
			}
			parent = b
		}
		return parent
	}

	for i := range docs {
		d := docs[i]
		path := strings.Trim(d.Path, "/")
		if path == "" {
			continue
		}
		segs := strings.Split(path, "/")
		parent := root
		if len(segs) > 1 {
			parent = ensureBranch(strings.Join(segs[:len(segs)-1], "/"))
		}
		parent.Children = append(parent.Children, &Node{
			Key:  segs[len(segs)-1],
			Path: path,
			Doc:  &docs[i],
		})
	}

	sortChildren(root)
	return root
}

func sortChildren(n *Node) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.IsBranch() != b.IsBranch() {
			return a.IsBranch()
		}
		return a.Key < b.Key
	})
	for _, c := range n.Children {
		sortChildren(c)
	}
}
