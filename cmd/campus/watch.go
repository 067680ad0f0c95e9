package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/campus/internal/events"
	"github.com/alfredjeanlab/campus/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:     "watch [topic]",
	Short:   "Stream portal events published by campus commands",
	Long:    `Stream events from CAMPUS_NATS_URL. The topic defaults to every campus event.`,
	GroupID: "system",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.NATSURL == "" {
			return fmt.Errorf("no event bus configured (set CAMPUS_NATS_URL)")
		}
		topic := events.TopicAll
		if len(args) == 1 {
			topic = args[0]
		}

		sub, err := events.NewNATSSubscriber(cfg.NATSURL,
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				if err != nil {
					logger.Warn("event bus disconnected", "error", err)
				}
			}),
			nats.ReconnectHandler(func(nc *nats.Conn) {
				logger.Info("event bus reconnected", "url", nc.ConnectedUrl())
			}),
		)
		if err != nil {
			return err
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe(topic)
		if err != nil {
			return err
		}
		defer cancel()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if !jsonOutput {
			fmt.Fprintln(os.Stderr, ui.RenderMuted("Watching "+topic+" (Ctrl-C to stop)"))
		}
		for {
			select {
			case <-ctx.Done():
				return nil
			case msg, ok := <-ch:
				if !ok {
					return nil
				}
				printEvent(msg)
			}
		}
	},
}

func printEvent(msg events.Message) {
	if jsonOutput {
		line, err := json.Marshal(struct {
			Topic string          `json:"topic"`
			Event json.RawMessage `json:"event"`
		}{msg.Topic, msg.Data})
		if err != nil {
			logger.Debug("invalid event payload", "topic", msg.Topic, "error", err)
			return
		}
		fmt.Println(string(line))
		return
	}
	ts := ui.RenderMuted(time.Now().Format("15:04:05"))
	ev, err := msg.Decode()
	if err != nil {
		logger.Debug("undecodable event", "topic", msg.Topic, "error", err)
		fmt.Printf("%s %s\n", ts, msg.Topic)
		return
	}
	fmt.Printf("%s %s\n", ts, events.Summary(msg.Topic, ev))
}
