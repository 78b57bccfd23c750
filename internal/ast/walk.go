package ast

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Stmts {
			Walk(stmt, fn)
		}

	case *Block:
		for _, stmt := range n.Stmts {
			Walk(stmt, fn)
		}

	case *Declaration:
		Walk(n.Value, fn)

	case *Assignment:
		Walk(n.Value, fn)

	case *If:
		for _, branch := range n.Branches {
			Walk(branch, fn)
		}
		if n.Else != nil {
			Walk(n.Else, fn)
		}

	case *Branch:
		Walk(n.Cond, fn)
		Walk(n.Body, fn)

	case *While:
		Walk(n.Cond, fn)
		Walk(n.Body, fn)

	case *Call:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}

	case *Unary:
		Walk(n.Operand, fn)

	case *NotBoolean:
		Walk(n.Operand, fn)

	case *Binary:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *Comparison:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *BooleanOp:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *IntLit, *FloatLit, *BoolLit, *StringLit, *NoneLit, *Variable, *Break, *Continue:
		// Leaf nodes
	}
}
