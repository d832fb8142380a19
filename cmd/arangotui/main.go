package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arangotui/arangotui/internal/arango"
	"github.com/arangotui/arangotui/internal/browser"
	"github.com/arangotui/arangotui/internal/config"
	"github.com/arangotui/arangotui/internal/history"
	"github.com/arangotui/arangotui/internal/keybinds"
	"github.com/arangotui/arangotui/internal/logger"
	"github.com/arangotui/arangotui/internal/tui"
	"github.com/arangotui/arangotui/internal/types"
	"github.com/arangotui/arangotui/internal/version"
)

const handshakeTimeout = 10 * time.Second

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arangotui",
	Short: "Terminal browser for ArangoDB",
	Long: `arangotui is a read-only terminal browser for an ArangoDB server.

It lists databases, collections and named graphs, shows collection
properties and samples documents. Connection settings come from the
command line, then from a profile in ~/.arangotui/config.yaml, then
from the defaults (http://localhost:8529, user root, empty password).

Examples:
  arangotui                                   # Connect with the default profile
  arangotui -p staging                        # Use the 'staging' profile
  arangotui -e https://db:8529 -u reader -P '' # Explicit connection, empty password
  arangotui --gae http://gae:9999             # Also check a Graph Analytics Engine
  arangotui keybinds export > keybinds.json   # Dump the default key bindings`,
	Version:       version.Version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// Connection flags, shared by every command that talks to the server
var (
	flagEndpoint string
	flagGAE      string
	flagUsername string
	flagPassword string
	flagProfile  string
	flagLogFile  string
	flagLogLevel string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagEndpoint, "endpoint", "e", "", "ArangoDB endpoint URL")
	rootCmd.PersistentFlags().StringVar(&flagGAE, "gae", "", "Graph Analytics Engine endpoint URL")
	rootCmd.PersistentFlags().StringVarP(&flagUsername, "username", "u", "", "Username")
	rootCmd.PersistentFlags().StringVarP(&flagPassword, "password", "P", "", "Password (an empty value is allowed)")
	rootCmd.PersistentFlags().StringVarP(&flagProfile, "profile", "p", "", "Connection profile from config.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default ~/.arangotui/arangotui.log)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(keybindsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(filtersCmd)
}

// session is what every server-facing command needs after startup
type session struct {
	cfg    *config.Config
	conn   types.Connection
	logger *zap.Logger
	client *arango.Client
}

func (s *session) close() {
	_ = s.logger.Sync()
}

// setup loads the configuration, builds the logger and the gateway client
func setup(cmd *cobra.Command) (*session, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	cfg, err := config.Load(config.GetConfigFilePath())
	if err != nil {
		return nil, err
	}

	logPath := flagLogFile
	if logPath == "" {
		logPath = config.LogFile
	}
	level := flagLogLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	log, err := logger.NewLogger(logPath, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	conn, err := cfg.Resolve(flagProfile, config.Overrides{
		Endpoint:    flagEndpoint,
		GAE:         flagGAE,
		Username:    flagUsername,
		Password:    flagPassword,
		PasswordSet: cmd.Flags().Changed("password"),
	})
	if err != nil {
		return nil, err
	}

	client, err := arango.NewClient(conn, log)
	if err != nil {
		return nil, err
	}

	log.Info("starting",
		zap.String("version", version.Version),
		zap.String("endpoint", conn.Endpoint),
		zap.String("username", conn.Username),
		zap.Bool("insecure_skip_verify", conn.InsecureSkipVerify))

	return &session{cfg: cfg, conn: conn, logger: log, client: client}, nil
}

// handshake reads the server version; the browser does not start without it
func (s *session) handshake(ctx context.Context) (*types.ServerVersion, error) {
	ctx, cancel := context.WithTimeout(ctx, handshakeTimeout)
	defer cancel()

	v, err := s.client.Version(ctx)
	if err != nil {
		s.logger.Error("version handshake failed", zap.Error(err))
		return nil, fmt.Errorf("cannot connect to ArangoDB at %s: %w", s.conn.Endpoint, err)
	}

	if ok, msg := version.CheckServer(*v); !ok {
		s.logger.Warn("server check", zap.String("message", msg))
		fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
	}
	return v, nil
}

// gaeHandshake is optional: a missing or unreachable GAE only produces a warning
func (s *session) gaeHandshake(ctx context.Context) (*types.GAEVersion, error) {
	if s.conn.GAEEndpoint == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, handshakeTimeout)
	defer cancel()

	v, err := s.client.GAEVersion(ctx)
	if err != nil {
		s.logger.Warn("GAE handshake failed", zap.String("gae", s.conn.GAEEndpoint), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Warning: Graph Analytics Engine unavailable: %v\n", err)
		return nil, err
	}
	return v, nil
}

// runTUI performs the handshakes and starts the interactive browser
func runTUI(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	s, err := setup(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	server, err := s.handshake(ctx)
	if err != nil {
		return err
	}
	gae, gaeErr := s.gaeHandshake(ctx)

	var hist *history.Manager
	if s.cfg.History.Enabled {
		hist, err = history.NewManager(config.DatabasePath)
		if err != nil {
			s.logger.Warn("history disabled", zap.Error(err))
			fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
		} else {
			s.client.SetRecorder(hist)
		}
	}

	kb, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	ctrl := browser.New(s.client, browser.Options{
		PageSize:          s.cfg.PageSize(),
		DefaultSampleSize: s.cfg.SampleSize(),
		Logger:            s.logger,
	})

	return tui.Run(ctx, tui.Config{
		Controller:     ctrl,
		Keybinds:       kb,
		History:        hist,
		Logger:         s.logger,
		Server:         *server,
		GAE:            gae,
		GAEError:       gaeErr,
		Endpoint:       s.conn.Endpoint,
		Version:        version.String(),
		MessageTimeout: s.cfg.MessageTimeout(),
	})
}
