package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mywio/guilded-relay/pkg/config"
	"github.com/mywio/guilded-relay/pkg/relay"
	"github.com/mywio/guilded-relay/pkg/render"
	"github.com/mywio/guilded-relay/pkg/webhook"
	"github.com/spf13/cobra"
)

// newRenderCmd previews the decision for a payload file without delivering it.
func newRenderCmd(configPath *string) *cobra.Command {
	var (
		eventType  string
		file       string
		reactions  bool
		drafts     bool
		immersive  string
		deliveryID string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a webhook payload and print the resulting decision as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			var body []byte
			var err error
			if file == "" || file == "-" {
				body, err = io.ReadAll(cmd.InOrStdin())
			} else {
				body, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			engine, err := relay.NewEngine(identityFrom(cfg), slog.New(slog.NewJSONHandler(io.Discard, nil)))
			if err != nil {
				return err
			}

			decision := engine.Handle(context.Background(), webhook.Request{
				UserAgent:  webhook.UserAgentPrefix + "render",
				EventType:  eventType,
				DeliveryID: deliveryID,
				Body:       body,
			}, render.Options{
				ShowReactions: reactions,
				ShowDrafts:    drafts,
				Immersive:     render.ParseImmersive(immersive),
			})

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			if err := enc.Encode(decision); err != nil {
				return err
			}
			if decision.Kind == render.KindReject {
				return fmt.Errorf("payload rejected: %s", decision.Err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&eventType, "event", "", "GitHub event type, as in X-GitHub-Event")
	cmd.Flags().StringVar(&file, "file", "", "Payload file (default stdin)")
	cmd.Flags().BoolVar(&reactions, "reactions", true, "Show reaction counts")
	cmd.Flags().BoolVar(&drafts, "drafts", false, "Show draft releases")
	cmd.Flags().StringVar(&immersive, "immersive", "", "Immersive mode: chat or embeds")
	cmd.Flags().StringVar(&deliveryID, "delivery", "", "Delivery id to attach")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}
