package classify

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdownParser is reused across detections; goldmark parsers are
// stateless once constructed.
var markdownParser = goldmark.DefaultParser()

// isMarkdown reports whether the content contains markdown structure:
// headings, emphasis, links, lists, fenced code blocks, or blockquotes.
// Plain prose parses to paragraphs and text only, which do not count.
func isMarkdown(content string) bool {
	root := markdownParser.Parse(text.NewReader([]byte(content)))

	found := false
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading,
			ast.KindEmphasis,
			ast.KindLink,
			ast.KindImage,
			ast.KindList,
			ast.KindFencedCodeBlock,
			ast.KindBlockquote,
			ast.KindThematicBreak:
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	return found
}
