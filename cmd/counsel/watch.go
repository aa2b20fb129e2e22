package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/counsel/internal/client"
	"github.com/alfredjeanlab/counsel/internal/events"
	"github.com/alfredjeanlab/counsel/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream roster change events",
	Long: `Print roster events as they happen. Events come from NATS when a NATS
URL is known (--nats, COUNSEL_NATS_URL or the active remote) and from the
server's event stream otherwise.`,
	Example: `  counsel watch
  counsel watch --topic 'counsel.lawyer.>'`,
	GroupID:           "views",
	Args:              cobra.NoArgs,
	PersistentPreRunE: noClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, _ := cmd.Flags().GetStringArray("topic")
		natsURL, _ := cmd.Flags().GetString("nats")
		if natsURL == "" {
			natsURL = defaultEndpoints().NATSURL
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		out := cmd.OutOrStdout()
		emit := func(m events.Message) error { return printEvent(out, m) }
		if natsURL != "" {
			return watchNATS(ctx, natsURL, topics, emit)
		}
		return client.NewHTTPClient(httpURL, authToken).Watch(ctx, topics, emit)
	},
}

func printEvent(w io.Writer, m events.Message) error {
	if jsonOutput {
		return json.NewEncoder(w).Encode(map[string]any{
			"topic": m.Topic,
			"data":  json.RawMessage(m.Data),
		})
	}
	line, err := events.Describe(m)
	if err != nil {
		line = fmt.Sprintf("%s (undecodable: %v)", m.Topic, err)
	}
	_, err = fmt.Fprintf(w, "%s  %s\n", ui.RenderMuted(time.Now().Format("15:04:05")), line)
	return err
}

// watchNATS subscribes to every topic pattern and hands each message to fn
// until ctx is done.
func watchNATS(ctx context.Context, natsURL string, topics []string, fn func(events.Message) error) error {
	sub, err := events.NewNATSSubscriber(natsURL,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("nats: disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Printf("nats: reconnected")
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to NATS: %w", err)
	}
	defer sub.Close()

	if len(topics) == 0 {
		topics = []string{events.TopicAll}
	}

	ctx, cancelAll := context.WithCancel(ctx)
	defer cancelAll()

	merged := make(chan events.Message)
	for _, topic := range topics {
		ch, cancel, err := sub.Subscribe(topic)
		if err != nil {
			return fmt.Errorf("subscribing to events: %w", err)
		}
		defer cancel()

		go func() {
			for m := range ch {
				select {
				case merged <- m:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case m := <-merged:
			if err := fn(m); err != nil {
				return err
			}
		}
	}
}

func init() {
	watchCmd.Flags().StringArray("topic", nil, "topic pattern to watch, NATS wildcards allowed (repeatable)")
	watchCmd.Flags().String("nats", "", "NATS URL (default: COUNSEL_NATS_URL or the active remote)")
}
