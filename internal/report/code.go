package report

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// ExtractCode returns the contents of every fenced code block in a backend
// response, joined by a blank line. Models usually wrap the test in a
// ```java fence with prose around it; when no fence is present the trimmed
// response is returned unchanged.
func ExtractCode(response string) string {
	source := []byte(response)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var blocks []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var sb strings.Builder
		lines := block.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			sb.Write(seg.Value(source))
		}
		if code := strings.TrimRight(sb.String(), "\n"); code != "" {
			blocks = append(blocks, code)
		}
		return ast.WalkSkipChildren, nil
	})

	if len(blocks) == 0 {
		return strings.TrimSpace(response)
	}
	return strings.Join(blocks, "\n\n")
}
