package audit

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

// Span is a method or constructor as the Java grammar sees it.
// Rows are 0-based, matching scan.SourceLine indices.
type Span struct {
	Name     string
	Kind     string // "method" or "constructor"
	Start    int    // first row of the declaration, including annotations
	NameLine int    // row holding the declared name
	End      int    // last row of the declaration
	HasBody  bool   // false for abstract and interface methods
}

var declarationKinds = map[string]string{
	"method_declaration":      "method",
	"constructor_declaration": "constructor",
}

// ParseSpans parses Java source and returns every method and constructor
// declaration in source order, including those nested in anonymous and inner
// classes. syntaxErrors reports whether the grammar had to recover from errors.
func ParseSpans(source []byte) (spans []Span, syntaxErrors bool, err error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(sitter.NewLanguage(java.Language())); err != nil {
		return nil, false, fmt.Errorf("failed to load java grammar: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, false, fmt.Errorf("failed to parse java source")
	}
	defer tree.Close()

	root := tree.RootNode()
	walkTree(root, func(n *sitter.Node) bool {
		kind, ok := declarationKinds[n.Kind()]
		if !ok {
			return true
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return true
		}
		spans = append(spans, Span{
			Name:     extractNodeText(nameNode, source),
			Kind:     kind,
			Start:    int(n.StartPosition().Row),
			NameLine: int(nameNode.StartPosition().Row),
			End:      int(n.EndPosition().Row),
			HasBody:  n.ChildByFieldName("body") != nil,
		})
		// Keep walking: anonymous classes inside bodies declare methods too.
		return true
	})

	return spans, root.HasError(), nil
}

func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkTree(node.Child(uint(i)), visitor)
	}
}

func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}
