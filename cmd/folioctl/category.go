package main

import (
	"fmt"
	"strings"

	"github.com/folio/internal/content"
	"github.com/folio/internal/db"
	"github.com/folio/internal/service"
	"github.com/spf13/cobra"
)

func newCategoryCommand(s *session) *cobra.Command {
	var familyFlag string
	categoryCmd := &cobra.Command{
		Use:   "category",
		Short: "Manage blog and gallery categories",
	}
	categoryCmd.PersistentFlags().StringVar(&familyFlag, "family", string(content.FamilyBlog), "blog or gallery")

	// withCategories 打开数据库并构造对应分类族的服务。
	withCategories := func(cmd *cobra.Command, fn func(*service.CategoryService) error) error {
		family, ok := content.ParseFamily(familyFlag)
		if !ok {
			return fmt.Errorf("unknown family %q (want blog or gallery)", familyFlag)
		}
		gdb, err := s.openDB()
		if err != nil {
			return err
		}
		defer db.Close(gdb)
		return fn(service.NewCategoryService(gdb, family))
	}

	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List categories with usage counts",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCategories(cmd, func(categories *service.CategoryService) error {
				usage, err := categories.ListWithUsage(cmd.Context())
				if err != nil {
					return err
				}
				for _, item := range usage {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d\n", item.ID, item.Slug, item.Name, item.Count)
				}
				return nil
			})
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCategories(cmd, func(categories *service.CategoryService) error {
				category, err := categories.Create(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "CREATED %s %s\n", category.ID, category.Slug)
				return nil
			})
		},
	}

	var yes bool
	rmCmd := &cobra.Command{
		Use:   "rm <id|slug>",
		Short: "Delete a category; its content becomes uncategorized",
		Long: `Delete a category. Posts or gallery items that referenced it are kept
and shown as uncategorized. Requires --yes.

Examples:
  folioctl category rm web-security --yes
  folioctl category rm --family gallery events --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete %q without --yes", args[0])
			}
			return withCategories(cmd, func(categories *service.CategoryService) error {
				all, err := categories.List(cmd.Context())
				if err != nil {
					return err
				}
				id := ""
				for _, category := range all {
					if category.ID == args[0] || category.Slug == args[0] {
						id = category.ID
						break
					}
				}
				if id == "" {
					return service.ErrCategoryNotFound
				}

				detached, err := categories.Delete(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "DELETED %s (%d detached)\n", args[0], detached)
				return nil
			})
		},
	}
	rmCmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	categoryCmd.AddCommand(listCmd, addCmd, rmCmd)
	return categoryCmd
}
