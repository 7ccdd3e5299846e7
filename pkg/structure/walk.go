package structure

import "errors"

// SkipDir, returned from a WalkFunc for a directory, skips its children.
var SkipDir = errors.New("skip this directory")

// WalkFunc is called for every node with its slash separated path relative
// to the tree root.
type WalkFunc func(path string, n Node) error

// Walk visits the tree depth first, parents before children. Siblings are
// visited in lexical order.
func Walk(tree Tree, fn WalkFunc) error {
	return walk(tree, "", fn)
}

func walk(tree Tree, prefix string, fn WalkFunc) error {
	for _, name := range tree.Names() {
		n := tree[name]
		path := joinRel(prefix, name)

		err := fn(path, n)
		if err == SkipDir && n.IsDir() {
			continue
		}
		if err != nil {
			return err
		}

		if n.IsDir() {
			if err := walk(n.children, path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

type TreeStats struct {
	Dirs  int
	Files int
	Bytes int64
}

func Stats(tree Tree) TreeStats {
	var s TreeStats
	_ = Walk(tree, func(_ string, n Node) error {
		if n.IsDir() {
			s.Dirs++
		} else {
			s.Files++
			s.Bytes += int64(len(n.payload))
		}
		return nil
	})
	return s
}
