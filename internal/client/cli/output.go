package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/cocreate/internal/client/models"
)

const summaryWidth = 60

// renderContent formats stored content by generation type. Newsletters and
// threads are JSON; anything that fails to parse is shown raw.
func renderContent(kind, content string) string {
	switch kind {
	case "newsletter":
		var n models.Newsletter
		if json.Unmarshal([]byte(content), &n) == nil {
			return renderNewsletter(n)
		}
	case "thread":
		var tweets []string
		if json.Unmarshal([]byte(content), &tweets) == nil {
			return renderThread(tweets)
		}
	}
	return content
}

func renderNewsletter(n models.Newsletter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n\n%s\n", n.Subject, n.Title)
	for _, p := range n.Content {
		fmt.Fprintf(&b, "\n%s\n", p)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderThread(tweets []string) string {
	lines := make([]string, len(tweets))
	for i, t := range tweets {
		lines[i] = fmt.Sprintf("%d/%d %s", i+1, len(tweets), t)
	}
	return strings.Join(lines, "\n\n")
}

// renderMessage formats the message of a /generate response.
func renderMessage(raw json.RawMessage) string {
	var text string
	if json.Unmarshal(raw, &text) == nil {
		return text
	}
	var n models.Newsletter
	if json.Unmarshal(raw, &n) == nil && n.Title != "" {
		return renderNewsletter(n)
	}
	var tweets []string
	if json.Unmarshal(raw, &tweets) == nil {
		return renderThread(tweets)
	}
	return string(raw)
}

func summaryLine(g *models.Generation) string {
	text := strings.Join(strings.Fields(renderContent(g.Type, g.Content)), " ")
	if r := []rune(text); len(r) > summaryWidth {
		text = string(r[:summaryWidth-1]) + "…"
	}
	return fmt.Sprintf("#%-6d %-13s %s  %s", g.ID, g.Type, g.CreatedAt.Local().Format("2006-01-02"), text)
}

func printGeneration(w io.Writer, g *models.Generation) {
	fmt.Fprintf(w, "#%d %s (%s)\n\n%s\n\n", g.ID, g.Type, g.CreatedAt.Local().Format("2006-01-02 15:04"), renderContent(g.Type, g.Content))
}
