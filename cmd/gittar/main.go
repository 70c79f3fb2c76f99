package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hulla/gittar/internal/config"
	"github.com/hulla/gittar/internal/repo"
	"github.com/hulla/gittar/internal/utils"
	"github.com/hulla/gittar/pkg/gittar"
	"github.com/hulla/gittar/pkg/version"
)

var (
	cfgFile string
	verbose bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gittar <repository>",
	Short: "Download git repositories as tarballs, no git required",
	Long: `Gittar fetches a repository's branch snapshot as a tarball from GitHub,
GitLab, Bitbucket, Gitea, Codeberg or Forgejo, extracts it into a local
cache, and optionally materializes a filtered copy into an output directory.

The repository can be identified as "owner/repo", a git@ SSH address, or a
full URL (optionally with an embedded /tree/<branch>/<subpath>).`,
	Version: version.Short(),
	Args:    cobra.MaximumNArgs(1),
	RunE:    run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/gittar/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.Flags().StringP("branch", "b", "", "Pin the branch (disables main/master fallback)")
	rootCmd.Flags().String("cache-dir", "", "Cache directory override")
	rootCmd.Flags().StringP("out", "o", "", "Output directory (defaults to the cache directory)")
	rootCmd.Flags().StringP("subpath", "p", "", "Only materialize files under this repository subpath")
	rootCmd.Flags().BoolP("update", "u", false, "Bypass the cache and re-download")
	rootCmd.Flags().Int("retries", 0, "Retry transient download failures this many times")
	rootCmd.Flags().Duration("timeout", 0, "HTTP timeout (0 = none)")
	rootCmd.Flags().Bool("no-progress", false, "Disable the download progress bar")

	_ = viper.BindPFlag("cache.directory", rootCmd.Flags().Lookup("cache-dir"))
	_ = viper.BindPFlag("fetch.retries", rootCmd.Flags().Lookup("retries"))
	_ = viper.BindPFlag("fetch.timeout", rootCmd.Flags().Lookup("timeout"))

	urlCmd.Flags().StringP("branch", "b", "", "Ref to embed in the tarball URL")

	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logLevel := "info"
	if verbose {
		logLevel = "debug"
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log = utils.NewLogger(utils.LoggerOptions{
		Level:   logLevel,
		Format:  cfg.Logging.Format,
		Verbose: verbose,
	})

	if len(args) == 0 {
		return cmd.Help()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("Shutting down gracefully...")
		cancel()
	}()

	branch, _ := cmd.Flags().GetString("branch")
	outDir, _ := cmd.Flags().GetString("out")
	subpath, _ := cmd.Flags().GetString("subpath")
	update, _ := cmd.Flags().GetBool("update")
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	fetcher := gittar.New(gittar.FetcherOptions{
		HTTPClient: &http.Client{Timeout: cfg.Fetch.Timeout},
		Logger:     log,
		Retries:    cfg.Fetch.Retries,
		Progress:   cfg.Fetch.Progress && !noProgress,
	})

	result, err := fetcher.Fetch(ctx, gittar.Options{
		URL:      args[0],
		Branch:   branch,
		CacheDir: cfg.Cache.Directory,
		OutDir:   outDir,
		Subpath:  subpath,
		Update:   update,
	})
	if err != nil {
		return err
	}

	log.Info().
		Int("files", len(result.Files)).
		Bool("from_cache", result.FromCache).
		Str("dir", result.OutDir).
		Msg("Repository materialized")

	for _, file := range result.Files {
		fmt.Println(file)
	}

	return nil
}

var urlCmd = &cobra.Command{
	Use:   "url <repository>",
	Short: "Print the resolved tarball URL for a repository identifier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		branch, _ := cmd.Flags().GetString("branch")

		tarball, ok := repo.TarballURL(args[0], branch)
		if !ok {
			return fmt.Errorf("no tarball endpoint for %q", args[0])
		}

		fmt.Println(tarball)
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WriteDefault()
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Full())
	},
}
