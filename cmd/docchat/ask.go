package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/docchat/internal/config"
	"github.com/thywilljoshua/docchat/internal/session"
)

func askCmd() *cobra.Command {
	var file string
	var chat bool

	cmd := &cobra.Command{
		Use:   "ask [--file <doc>] <question>",
		Short: "Ask one question, optionally about a local document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			log := newLogger(cfg)
			defer log.Sync()

			gw, err := newGateway(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			ctrl := session.NewController(nil, newAdapter(cfg, log), gw, session.WithLogger(log.Named("session")))

			if file != "" {
				f, err := readFile(file)
				if err != nil {
					return err
				}
				ack, err := ctrl.Upload(cmd.Context(), f)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), ack.Message)
			}

			question := strings.Join(args, " ")
			ask := ctrl.Ask
			if chat {
				ask = ctrl.Chat
			}
			reply, err := ask(cmd.Context(), question)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "PDF, Word document or image to ground the answer in")
	cmd.Flags().BoolVar(&chat, "chat", false, "ignore the document and ask the model directly")
	return cmd
}
