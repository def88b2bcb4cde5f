package widget

import "github.com/wxglade/wxglade/errors"

var (
	// SkipChildren returned from a walk callback skips the subtree of the
	// current node.
	SkipChildren = errors.New("skip children")
	// ErrStop returned from a walk callback ends the walk without error.
	ErrStop = errors.New("stop walk")
)

// Walk visits n and its descendants in pre-order.
func (n *Node) Walk(fn func(*Node) error) error {
	err := n.walk(fn)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func (n *Node) walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, c := range n.children {
		if err := c.walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// WalkEnterLeave visits the subtree of n calling enter before and leave
// after the children of each node. Either callback may be nil.
func (n *Node) WalkEnterLeave(enter, leave func(*Node) error) error {
	err := n.walkEnterLeave(enter, leave)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func (n *Node) walkEnterLeave(enter, leave func(*Node) error) error {
	if enter != nil {
		if err := enter(n); err != nil {
			if !errors.Is(err, SkipChildren) {
				return err
			}
			return nil
		}
	}
	for _, c := range n.children {
		if err := c.walkEnterLeave(enter, leave); err != nil {
			return err
		}
	}
	if leave != nil {
		return leave(n)
	}
	return nil
}

// Next returns the node after n in pre-order, nil at the end of the tree.
func Next(n *Node) *Node {
	if len(n.children) > 0 {
		return n.children[0]
	}
	for p := n; p != nil; p = p.parent {
		if s := p.NextSibling(); s != nil {
			return s
		}
	}
	return nil
}
