package app

import (
	"os"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"schemascope/internal/errors"
)

// descriptionHTML reads a Markdown description file and renders it for
// the schema overview card.
func descriptionHTML(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to read description file")
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return string(markdown.ToHTML(src, p, renderer)), nil
}
