package main

import (
	"fmt"
	"strings"

	"github.com/folio/internal/content"
	"github.com/spf13/cobra"
)

func newSlugCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "slug <title...>",
		Short: "Print the slug derived from a title",
		Args:  cobra.MinimumNArgs(1),
		// 不需要配置与数据库
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := content.Slugify(strings.Join(args, " "))
			if slug == "" {
				return fmt.Errorf("title produces an empty slug")
			}
			fmt.Fprintln(cmd.OutOrStdout(), slug)
			return nil
		},
	}
}
