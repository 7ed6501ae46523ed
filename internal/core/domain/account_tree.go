package domain

import (
	"fmt"
	"sort"
)

// AccountNode is an account with its resolved children.
type AccountNode struct {
	Account  Account        `json:"account"`
	Children []*AccountNode `json:"children,omitempty"`
}

// AccountTree is an in-memory chart of accounts hierarchy built from a flat account list.
type AccountTree struct {
	Roots  []*AccountNode `json:"roots"`
	byID   map[string]*AccountNode
	byCode map[string]*AccountNode
}

// BuildAccountTree links accounts by ParentAccountID and recomputes Path and Depth on
// every node. Siblings are ordered by code. It fails on unknown parents and cycles.
func BuildAccountTree(accounts []Account) (*AccountTree, error) {
	tree := &AccountTree{
		byID:   make(map[string]*AccountNode, len(accounts)),
		byCode: make(map[string]*AccountNode, len(accounts)),
	}
	for _, acc := range accounts {
		if _, dup := tree.byCode[acc.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate code %s", ErrInvalidAccountTree, acc.Code)
		}
		node := &AccountNode{Account: acc}
		tree.byID[acc.AccountID] = node
		tree.byCode[acc.Code] = node
	}
	for _, acc := range accounts {
		node := tree.byID[acc.AccountID]
		if acc.ParentAccountID == "" {
			tree.Roots = append(tree.Roots, node)
			continue
		}
		parent, ok := tree.byID[acc.ParentAccountID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown parent %s of account %s", ErrInvalidAccountTree, acc.ParentAccountID, acc.Code)
		}
		parent.Children = append(parent.Children, node)
	}

	visited := make(map[string]bool, len(accounts))
	var assign func(n *AccountNode, parentPath string, depth int)
	assign = func(n *AccountNode, parentPath string, depth int) {
		visited[n.Account.AccountID] = true
		n.Account.Depth = depth
		if parentPath == "" {
			n.Account.Path = n.Account.Code
		} else {
			n.Account.Path = parentPath + "/" + n.Account.Code
		}
		sortNodes(n.Children)
		for _, c := range n.Children {
			assign(c, n.Account.Path, depth+1)
		}
	}
	sortNodes(tree.Roots)
	for _, r := range tree.Roots {
		assign(r, "", 0)
	}
	if len(visited) != len(tree.byID) {
		return nil, fmt.Errorf("%w: cycle detected", ErrInvalidAccountTree)
	}
	return tree, nil
}

func sortNodes(nodes []*AccountNode) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Account.Code < nodes[j].Account.Code })
}

// Walk visits nodes depth first in code order. Returning false from fn skips the subtree.
func (t *AccountTree) Walk(fn func(n *AccountNode) bool) {
	var walk func(nodes []*AccountNode)
	walk = func(nodes []*AccountNode) {
		for _, n := range nodes {
			if fn(n) {
				walk(n.Children)
			}
		}
	}
	walk(t.Roots)
}

// Flatten returns every account in depth-first order with Path and Depth populated.
func (t *AccountTree) Flatten() []Account {
	out := make([]Account, 0, len(t.byID))
	t.Walk(func(n *AccountNode) bool {
		out = append(out, n.Account)
		return true
	})
	return out
}

// FindByCode returns the node holding the account with the given code.
func (t *AccountTree) FindByCode(code string) (*AccountNode, bool) {
	n, ok := t.byCode[code]
	return n, ok
}

// Descendants returns all accounts below the given code, excluding the account itself.
func (t *AccountTree) Descendants(code string) []Account {
	n, ok := t.byCode[code]
	if !ok {
		return nil
	}
	var out []Account
	sub := &AccountTree{Roots: n.Children}
	sub.Walk(func(c *AccountNode) bool {
		out = append(out, c.Account)
		return true
	})
	return out
}
