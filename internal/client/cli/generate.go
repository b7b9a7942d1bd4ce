package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cocreate/internal/client/models"
	"github.com/spf13/cobra"
)

func (a *App) generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <video-script|content-idea|newsletter|thread> [topic...]",
		Short: "Generate content about a topic",
		Long: `Generate content about a topic using your saved preferences.

When no topic is given on the command line it is read from stdin, ending
with an empty line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			kind, ok := models.ParseKind(args[0])
			if !ok {
				return fmt.Errorf("unknown generation kind %q", args[0])
			}
			if err := a.requireSession(ctx); err != nil {
				return err
			}

			topic := strings.Join(args[1:], " ")
			if topic == "" {
				var err error
				if topic, err = GetMultiline(a.reader, "Enter topic", a.out); err != nil {
					return err
				}
			}

			res, err := a.client.Generate(ctx, kind, topic)
			if err != nil {
				return err
			}
			a.printf("Generation #%d\n\n", res.ID)
			a.printf("%s\n", renderMessage(res.Message))
			return nil
		},
	}
}

func (a *App) toneCmd() *cobra.Command {
	var tone string
	cmd := &cobra.Command{
		Use:   "tone [text...]",
		Short: "Rewrite text in another tone (not saved)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.requireSession(ctx); err != nil {
				return err
			}

			text := strings.Join(args, " ")
			if text == "" {
				var err error
				if text, err = GetMultiline(a.reader, "Enter text", a.out); err != nil {
					return err
				}
			}

			out, err := a.client.ChangeTone(ctx, text, tone)
			if err != nil {
				return err
			}
			a.printf("%s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&tone, "tone", "t", "", "target tone (server default: profesional)")
	return cmd
}
