package main

import (
	"fmt"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/store-rating/internal/auth"
	"github.com/BruksfildServices01/store-rating/internal/config"
	dbpkg "github.com/BruksfildServices01/store-rating/internal/db"
	"github.com/BruksfildServices01/store-rating/internal/logging"
	"github.com/BruksfildServices01/store-rating/internal/seed"
)

const (
	databaseURLFlag = "database-url"
	dbDriverFlag    = "db-driver"
	logLevelFlag    = "log-level"
)

// newDBFlags returns a fresh flag set per command. Empty values fall back
// to the environment.
func newDBFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		databaseURLFlag: &cobraflags.StringFlag{
			Name:  databaseURLFlag,
			Value: "",
			Usage: "Database URL, overrides DATABASE_URL",
		},
		dbDriverFlag: &cobraflags.StringFlag{
			Name:  dbDriverFlag,
			Value: "",
			Usage: "Database driver (postgres, sqlite), overrides DB_DRIVER",
		},
		logLevelFlag: &cobraflags.StringFlag{
			Name:  logLevelFlag,
			Value: "",
			Usage: "Log level, overrides LOG_LEVEL",
		},
	}
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "storerating-admin",
		Short:         "Database maintenance for the store rating API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newMigrateCommand())
	root.AddCommand(newSeedCommand())
	return root
}

func newMigrateCommand() *cobra.Command {
	flags := newDBFlags()
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDB(flags, func(_ *config.Config, _ *gorm.DB, log *zap.Logger) error {
				log.Info("schema is up to date")
				return nil
			})
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newSeedCommand() *cobra.Command {
	flags := newDBFlags()
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo accounts and store",
		Long: `Insert the demo accounts and the demo store. Accounts that already exist
are left as they are, except that the demo owner is promoted to store_owner.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(flags, func(cfg *config.Config, db *gorm.DB, log *zap.Logger) error {
				if err := seed.Run(cmd.Context(), db, auth.NewPasswordHasher(cfg.BcryptCost)); err != nil {
					return err
				}

				log.Info("database seeded")
				for _, a := range seed.Accounts {
					fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s / %s\n", a.Role, a.Email, a.Password)
				}
				return nil
			})
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

// withDB opens (and migrates) the configured database for fn.
func withDB(flags map[string]cobraflags.Flag, fn func(*config.Config, *gorm.DB, *zap.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if v := flags[databaseURLFlag].GetString(); v != "" {
		cfg.DBUrl = v
	}
	if v := flags[dbDriverFlag].GetString(); v != "" {
		cfg.DBDriver = v
	}
	if v := flags[logLevelFlag].GetString(); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	db, err := dbpkg.Open(cfg)
	if err != nil {
		return err
	}
	defer dbpkg.Close(db) //nolint:errcheck

	return fn(cfg, db, log)
}
