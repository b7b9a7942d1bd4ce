// Package exports renders a user's generations as downloadable documents and
// publishes them to S3-compatible object storage.
package exports

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/cocreate/internal/common"
	"github.com/dmitrijs2005/cocreate/internal/server/models"
	"github.com/dmitrijs2005/cocreate/internal/server/textgen"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts "json", "markdown" or "md"; empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", common.ErrUnsupportedExportFormat
	}
}

// ContentType is the MIME type of a rendered document.
func (f Format) ContentType() string {
	if f == FormatMarkdown {
		return "text/markdown; charset=utf-8"
	}
	return "application/json"
}

// Extension is the file extension of a rendered document, without the dot.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return "json"
}

// Document is everything that goes into one export.
type Document struct {
	Username    string               `json:"username"`
	Saved       bool                 `json:"saved_only"`
	ExportedAt  time.Time            `json:"exported_at"`
	Generations []*models.Generation `json:"generations"`
}

// Render encodes doc in the given format.
func Render(f Format, doc *Document) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatMarkdown:
		return []byte(renderMarkdown(doc)), nil
	default:
		return nil, common.ErrUnsupportedExportFormat
	}
}

var typeTitles = map[models.GenerationType]string{
	models.GenerationVideoScript: "Video script",
	models.GenerationContentIdea: "Content ideas",
	models.GenerationNewsletter:  "Newsletter",
	models.GenerationThread:      "Thread",
}

func renderMarkdown(doc *Document) string {
	var b strings.Builder

	title := "Generations"
	if doc.Saved {
		title = "Saved generations"
	}
	fmt.Fprintf(&b, "# %s of %s\n\n", title, doc.Username)
	fmt.Fprintf(&b, "_Exported %s_\n", doc.ExportedAt.UTC().Format(time.RFC3339))

	if len(doc.Generations) == 0 {
		b.WriteString("\nNothing here yet.\n")
		return b.String()
	}

	for _, g := range doc.Generations {
		name, ok := typeTitles[g.Type]
		if !ok {
			name = "Generation"
		}
		fmt.Fprintf(&b, "\n## %s #%d\n\n", name, g.ID)
		fmt.Fprintf(&b, "_Created %s_\n\n", g.CreatedAt.UTC().Format(time.RFC3339))
		writeContent(&b, g)
	}
	return b.String()
}

// writeContent prints structured generations in readable form and falls
// back to the raw text when the stored content does not parse.
func writeContent(b *strings.Builder, g *models.Generation) {
	switch g.Type {
	case models.GenerationThread:
		if tweets, err := textgen.ParseThread(g.Content); err == nil {
			for i, t := range tweets {
				fmt.Fprintf(b, "%d. %s\n", i+1, t)
			}
			return
		}
	case models.GenerationNewsletter:
		if n, err := textgen.ParseNewsletter(g.Content); err == nil {
			fmt.Fprintf(b, "**Subject:** %s\n\n### %s\n\n", n.Subject, n.Title)
			for _, section := range n.Content {
				b.WriteString(section)
				b.WriteString("\n\n")
			}
			return
		}
	}
	b.WriteString(strings.TrimRight(g.Content, "\n"))
	b.WriteString("\n")
}
