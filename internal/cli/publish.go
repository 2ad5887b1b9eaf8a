package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tffedibot/fedibot/internal/config"
	"github.com/tffedibot/fedibot/internal/notify"
)

const publishTimeout = 30 * time.Second

var publishCmd = &cobra.Command{ //nolint:gochecknoglobals // standard Cobra pattern
	Use:   "publish <text>",
	Short: "Record and publish a notification by hand",
	Long: `Migrate the store, start a program run, and push text through the
notification pipeline as if the game coordinator had sent it: the text is
localized, stored, checked against the content filter and published. Without
a configured fedi_url the status is only logged.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() { //nolint:gochecknoinits // standard Cobra pattern for flag registration
	publishCmd.Flags().String("title", "", "notification title key")
	publishCmd.Flags().StringToString("set", nil, "placeholder replacement as name=value, repeatable")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	s, err := openStore(ctx, AppConfig)
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.Start(ctx); err != nil {
		return err
	}

	runID, err := s.CreateRun(ctx)
	if err != nil {
		return err
	}

	filter, err := notify.NewFilter(AppConfig.ContentFilter)
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	replacements, _ := cmd.Flags().GetStringToString("set")

	n := notify.DisplayNotification{TitleKey: title, BodyKey: args[0]}
	for k, v := range replacements {
		n.Keys = append(n.Keys, k)
		n.Values = append(n.Values, v)
	}

	h := notify.NewHandler(s, filter, newPublisher(AppConfig), logrus.WithField("component", "notify"))

	rec, err := h.HandleNotification(ctx, runID, n)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Notification %d recorded on run %d: %s\n", rec.ID, runID, rec.Formatted)

	return nil
}

func newPublisher(cfg *config.Config) notify.Publisher {
	log := logrus.WithField("component", "publisher")

	if cfg.FediURL == "" {
		return notify.LogPublisher{Log: log}
	}

	return notify.NewFediPublisher(cfg.FediURL, cfg.FediAccessToken, &http.Client{Timeout: publishTimeout}, log)
}
