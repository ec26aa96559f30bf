package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lazypower/growthlog/internal/config"
	"github.com/lazypower/growthlog/internal/logger"
	"github.com/lazypower/growthlog/internal/report"
	"github.com/lazypower/growthlog/internal/service"
	"github.com/lazypower/growthlog/internal/store"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "growthlog",
	Short: "Weekly and monthly growth reports from daily experience logs",
	Long: "Growthlog turns daily experience logs, emotion scores and goal progress into " +
		"per-experience feedback and weekly/monthly reports, with goals from peers of a similar age.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (YAML or TOML)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(seedCmd)
}

// runtime is what every command that touches the database needs.
type runtime struct {
	cfg     config.Config
	log     *logger.Logger
	db      *store.DB
	reports *service.Reports
}

func (rt *runtime) Close() error {
	return rt.db.Close()
}

// openRuntime loads config, builds the logger and opens the database.
func openRuntime() (*runtime, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Log)

	policy, err := report.ParsePolicy(cfg.Report.WindowPolicy)
	if err != nil {
		return nil, err
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.Log = log.WithField("component", "store")

	return &runtime{
		cfg:     cfg,
		log:     log,
		db:      db,
		reports: service.New(db, policy, cfg.Report.PeerAgeDelta, cfg.Report.PeerPoolLimit),
	}, nil
}
