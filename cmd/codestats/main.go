package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alimgiray/codestats/internal/handlers"
	"github.com/alimgiray/codestats/internal/services"
	"github.com/alimgiray/codestats/pkg/config"
	"github.com/alimgiray/codestats/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	days         int
	since        string
	until        string
	includeUsers []string
	excludeUsers []string
	format       string
	outputPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "codestats [repository]",
	Short: "Per-contributor development statistics from git history",
	Long: `codestats parses git commit history into per-contributor statistics:
commit counts, lines added and removed, per-language breakdowns and a
production/test split of the changed code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "analysis config file (YAML)")
	rootCmd.Flags().IntVarP(&days, "days", "d", 0, "number of days in the past to analyze")
	rootCmd.Flags().StringVar(&since, "since", "", "start date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&until, "until", "", "end date (YYYY-MM-DD)")
	rootCmd.Flags().StringSliceVar(&includeUsers, "include-users", nil, "only count these author emails")
	rootCmd.Flags().StringSliceVar(&excludeUsers, "exclude-users", nil, "skip these author emails")
	rootCmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or excel")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "codestats.xlsx", "output path for excel format")

	rootCmd.AddCommand(serveCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	cfg, err := loadAnalysisConfig()
	if err != nil {
		return err
	}
	if len(includeUsers) > 0 {
		cfg.IncludeUsers = includeUsers
	}
	if len(excludeUsers) > 0 {
		cfg.ExcludeUsers = excludeUsers
	}

	req := &services.AnalysisRequest{
		RepositoryPath: repoPath,
		Config:         cfg,
	}
	if days > 0 {
		req.Days = &days
	}
	if req.Since, err = parseDateFlag(since); err != nil {
		return fmt.Errorf("invalid --since date: %w", err)
	}
	if req.Until, err = parseDateFlag(until); err != nil {
		return fmt.Errorf("invalid --until date: %w", err)
	}

	analysisService := newAnalysisService()
	result, err := analysisService.AnalyzeRepository(req)
	if err != nil {
		return err
	}

	exportService := services.NewExportService()
	switch strings.ToLower(format) {
	case "json":
		out, err := exportService.FormatJSON(result)
		if err != nil {
			return err
		}
		fmt.Println(out)
	case "excel":
		if err := exportService.ExportExcel(result, outputPath); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", outputPath)
	case "text":
		fmt.Print(exportService.FormatText(result))
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	gin.SetMode(config.AppConfig.Server.Mode)

	analysisHandler := handlers.NewAnalysisHandler(newAnalysisService())
	healthHandler := handlers.NewHealthHandler()

	router := gin.Default()
	router.GET("/health", healthHandler.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/analyze", analysisHandler.Analyze)
	}

	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Infof("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down server")
	return server.Close()
}

func newAnalysisService() *services.AnalysisService {
	identityService := services.NewIdentityService()
	return services.NewAnalysisService(
		services.NewGitLogService(),
		services.NewCommitParserService(),
		identityService,
		services.NewStatisticsService(identityService),
	)
}

func loadAnalysisConfig() (*config.AnalysisConfig, error) {
	if cfgFile == "" {
		return config.DefaultAnalysisConfig(), nil
	}
	cfg, err := config.LoadAnalysisConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis config: %w", err)
	}
	return cfg, nil
}

func parseDateFlag(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
