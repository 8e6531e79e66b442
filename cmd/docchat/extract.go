package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/docchat/internal/config"
)

func extractCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the text a document would ground questions in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := newLogger(cfg)
			defer log.Sync()

			f, err := readFile(args[0])
			if err != nil {
				return err
			}
			res, err := newAdapter(cfg, log).Extract(cmd.Context(), f)
			if err != nil {
				return err
			}
			if asJSON {
				b, _ := json.MarshalIndent(map[string]any{
					"mode":   res.Mode,
					"method": res.Method,
					"mime":   f.MIMEType,
					"text":   res.Text,
				}, "", "  ")
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print mode, method and text as JSON")
	return cmd
}
