// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// converter turns the Markdown report into an HTML body. WithUnsafe lets
// the raw TOC anchors through; the input is our own rendering, never
// user-supplied.
var converter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(ghtml.WithUnsafe()),
)

// htmlShell wraps the converted body in a self-contained document. Inline
// CSS only: the file doubles as the email body and mail clients strip
// linked stylesheets.
const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; max-width: 900px; margin: 0 auto; padding: 20px; color: #333; }
h1, h2, h3 { color: #2c3e50; }
a { color: #3498db; text-decoration: none; }
a:hover { text-decoration: underline; }
code { background-color: #f8f8f8; padding: 2px 4px; border-radius: 3px; }
pre { background-color: #f8f8f8; padding: 10px; border-radius: 5px; overflow-x: auto; }
blockquote { border-left: 4px solid #ccc; padding-left: 15px; color: #666; margin: 15px 0; }
hr { border: 0; border-top: 1px solid #eee; margin: 20px 0; }
</style>
</head>
<body>
%s</body>
</html>
`

// RenderHTML converts a rendered Markdown report into a self-contained HTML
// document suitable for browsers and email clients.
func RenderHTML(md string, cfg types.ReportConfig) (string, error) {
	var body bytes.Buffer
	if err := converter.Convert([]byte(md), &body); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return fmt.Sprintf(htmlShell, html.EscapeString(reportTitle(cfg)), body.String()), nil
}
