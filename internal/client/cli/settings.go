package cli

import (
	"strings"

	"github.com/dmitrijs2005/cocreate/internal/client/models"
	"github.com/spf13/cobra"
)

func (a *App) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Update the preferences used in prompts",
	}
	cmd.AddCommand(
		a.settingCmd("content-type <value>", "Set the kind of content you create", models.SettingContentType, 1),
		a.settingCmd("target <value>", "Set your target audience", models.SettingTargetAudience, 1),
		a.settingCmd("context [value]", "Set additional context (empty clears it)", models.SettingAdditionalContext, 0),
	)
	return cmd
}

// settingCmd updates setting with the joined args. minArgs 0 allows clearing.
func (a *App) settingCmd(use, short string, setting models.Setting, minArgs int) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(minArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.requireSession(ctx); err != nil {
				return err
			}
			value := strings.Join(args, " ")
			if err := a.client.UpdateSetting(ctx, setting, value); err != nil {
				return err
			}
			a.printf("Updated %s\n", setting)
			return nil
		},
	}
}
