package definition

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"golang.org/x/net/html"
)

// renderMarkdown converts the definition list node into CommonMark.
// Links keep their wiki-relative targets; nothing is resolved.
func renderMarkdown(list *html.Node) (string, *DefinitionError) {
	if list == nil {
		return "", &DefinitionError{
			Message:   "cannot convert nil HTML node",
			Retryable: false,
			Cause:     ErrCauseConversionFailure,
		}
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)

	markdown, err := conv.ConvertNode(list)
	if err != nil {
		return "", &DefinitionError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseConversionFailure,
		}
	}
	return strings.TrimSpace(string(markdown)), nil
}
