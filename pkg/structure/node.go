package structure

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidNode = errors.New("invalid structure node")
	ErrInvalidName = errors.New("invalid structure name")
)

type Kind int

const (
	kindInvalid Kind = iota
	KindDir
	KindFile
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	default:
		return "invalid"
	}
}

/* Node is one entry of a Structure Tree: either a directory holding
 * named children or a file holding a literal payload. The kind is set
 * by the constructor and never changes.
 *
 *  t := Tree{
 *    "pkg":       Dir(Tree{"x.txt": File("hello")}),
 *    "readme.md": File("hi"),
 *  }
 */
type Node struct {
	kind     Kind
	children Tree
	payload  string
}

// Tree maps a child name to its node. Names are single path segments.
type Tree map[string]Node

func Dir(children Tree) Node {
	if children == nil {
		children = Tree{}
	}
	return Node{kind: KindDir, children: children}
}

func File(payload string) Node {
	return Node{kind: KindFile, payload: payload}
}

func (n Node) Kind() Kind { return n.kind }
func (n Node) IsDir() bool { return n.kind == KindDir }
func (n Node) IsFile() bool { return n.kind == KindFile }
func (n Node) Payload() string { return n.payload }
func (n Node) Children() Tree { return n.children }
func (n Node) Valid() bool { return n.kind == KindDir || n.kind == KindFile }

// Names returns the tree's child names in lexical order.
func (t Tree) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateName checks that name is usable as a single path segment.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

// FromMap builds a Tree from an untyped nested mapping. A string becomes a
// file, a map[string]any becomes a directory and a Node is taken as is.
// Any other value is rejected rather than guessed at.
func FromMap(m map[string]any) (Tree, error) {
	return fromMap(m, "")
}

func fromMap(m map[string]any, prefix string) (Tree, error) {
	tree := make(Tree, len(m))
	for name, value := range m {
		path := joinRel(prefix, name)
		if err := ValidateName(name); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		switch v := value.(type) {
		case string:
			tree[name] = File(v)
		case map[string]any:
			children, err := fromMap(v, path)
			if err != nil {
				return nil, err
			}
			tree[name] = Dir(children)
		case Node:
			if !v.Valid() {
				return nil, fmt.Errorf("%s: %w: zero node", path, ErrInvalidNode)
			}
			tree[name] = v
		default:
			return nil, fmt.Errorf("%s: %w: unsupported value of type %T", path, ErrInvalidNode, value)
		}
	}
	return tree, nil
}

func joinRel(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
