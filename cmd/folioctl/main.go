package main

import (
	"fmt"
	"os"

	"github.com/folio/internal/config"
	"github.com/folio/internal/db"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// session 保存根命令解析出的配置，子命令按需打开数据库。
type session struct {
	cfg          config.AppConfig
	databasePath string
}

func (s *session) openDB() (*gorm.DB, error) {
	opts := s.cfg.DBOptions()
	if s.databasePath != "" {
		opts.Driver = db.DriverSQLite
		opts.Path = s.databasePath
	}
	opts.Silent = true
	return db.Open(opts)
}

func NewRootCommand() *cobra.Command {
	s := &session{}

	rootCmd := &cobra.Command{
		Use:   "folioctl",
		Short: "Operator CLI for the folio portfolio service",
		Long: `Operator CLI for the folio portfolio service.

Reads the same environment (and .env file) as the server, so it talks to
the same database. Use --database to point at another sqlite file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			s.cfg = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&s.databasePath, "database", "", "sqlite database path (overrides DATABASE_* settings)")

	rootCmd.AddCommand(newUserCommand(s))
	rootCmd.AddCommand(newCategoryCommand(s))
	rootCmd.AddCommand(newSlugCommand())
	return rootCmd
}
