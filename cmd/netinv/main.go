// Command netinv collects a network device fleet's state over SSH and
// reconciles it with NetBox.
//
//	netinv devices -f fleet.yaml
//	netinv lldp -f fleet.yaml --protocol=both
//	netinv run "show clock" -f fleet.yaml
//	netinv sync-netbox -f fleet.yaml --sync-all --dry-run=false --tenant=acme
//
// Every subcommand resolves SSH credentials from NET_USERNAME/NET_PASSWORD,
// prompting interactively for a missing password; sync-netbox additionally
// resolves the NetBox target from NETBOX_URL/NETBOX_TOKEN (falling back to
// the engine config). Both are passed into the core as explicit values —
// the core itself never reads the environment.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/netfleet/netinv/pkg/collector"
	"github.com/netfleet/netinv/pkg/engconfig"
	"github.com/netfleet/netinv/pkg/model"
	"github.com/netfleet/netinv/pkg/netbox"
	"github.com/netfleet/netinv/pkg/parse"
	"github.com/netfleet/netinv/pkg/platform"
	"github.com/netfleet/netinv/pkg/reconcile"
	"github.com/netfleet/netinv/pkg/runctx"
	"github.com/netfleet/netinv/pkg/sshconn"
)

// App holds CLI state shared across all commands: flags, resolved
// configuration, and the engine/reconciler built from them in
// PersistentPreRunE. Mirrors the teacher's single shared App struct
// (cmd/newtron/main.go), scaled to this tool's one-shot-run shape
// instead of newtron's per-command device connect.
type App struct {
	// Context flags
	devicesFile string
	configFile  string

	// Credential/target flags
	username string

	// Output flags
	verbose bool
	jsonOut bool

	// Sync flags (sync-netbox only, but declared here so PersistentPreRunE
	// can see them uniformly)
	protocol string

	// Initialized state (set in PersistentPreRunE)
	engineCfg engconfig.EngineConfig
	creds     model.Credentials
	registry  *platform.Registry
	parser    *parse.TemplateParser
	engine    *collector.Engine
	run       *runctx.RunContext
	history   *runctx.HistoryStore
	log       *logrus.Logger

	netboxClient *netbox.Client
}

var app = &App{}

// exitError carries the process exit code spec.md §7 names alongside the
// error cobra prints, so main can set os.Exit without every RunE
// reimplementing the taxonomy.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitf(code int, format string, args ...any) error {
	return &exitError{code: code, err: fmt.Errorf(format, args...)}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "netinv:", err)
		os.Exit(exitCodeOf(err))
	}
}

// exitCodeOf maps a returned error to spec.md §6/§7's process exit code:
// 0 success (never reaches here — Execute only errors on failure), 1 a
// per-device outcome already printed by the run itself (callers return
// nil and exit via os.Exit(summary.ExitCode()) directly in that case), 2
// configuration/validation, 3 NetBox authentication, 4 internal.
func exitCodeOf(err error) int {
	var ee *exitError
	if as(err, &ee) {
		return ee.code
	}
	return 4
}

// as is a tiny errors.As stand-in kept local so main.go need not import
// "errors" for this one call site.
func as(err error, target **exitError) bool {
	for err != nil {
		if e, ok := err.(*exitError); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

var rootCmd = &cobra.Command{
	Use:           "netinv",
	Short:         "Network device fleet inventory collector and NetBox reconciler",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isHelpOrVersion(cmd) {
			return nil
		}

		app.log = logrus.New()
		if app.verbose {
			app.log.SetLevel(logrus.DebugLevel)
		} else {
			app.log.SetLevel(logrus.WarnLevel)
		}

		cfg, path, err := engconfig.Load(app.configFile)
		if err != nil {
			return exitf(2, "loading config: %w", err)
		}
		app.engineCfg = cfg
		if path != "" {
			app.log.WithField("config", path).Debug("loaded engine config")
		}

		creds, err := resolveCredentials(app.username)
		if err != nil {
			return exitf(2, "resolving credentials: %w", err)
		}
		app.creds = creds

		app.registry = platform.New()
		if err := app.registry.Validate(); err != nil {
			return exitf(2, "platform registry: %w", err)
		}
		app.parser = parse.New(app.registry)

		retry := sshconn.RetryPolicy{MaxRetries: app.engineCfg.SSHMaxRetries, Backoff: app.engineCfg.SSHRetryBackoff}
		conn := sshconn.New(app.engineCfg.SSHConnectTimeout, app.engineCfg.SSHCommandTimeout, retry)
		app.engine = &collector.Engine{
			Registry:       app.registry,
			Conn:           sshconn.Adapter{ConnectionManager: conn},
			Parser:         app.parser,
			WorkerPoolSize: app.engineCfg.WorkerPoolSize,
			OnWarning: func(device model.Device, intent platform.Intent, err error) {
				app.log.WithField("device", device.Key()).WithField("intent", intent).WithError(err).Warn("secondary collection failed")
			},
		}

		app.run = runctx.New(true, app.log)

		historyPath, err := historyFilePath()
		if err != nil {
			return exitf(4, "resolving history path: %w", err)
		}
		store, err := runctx.NewHistoryStore(historyPath, 200)
		if err != nil {
			return exitf(4, "opening history store: %w", err)
		}
		app.history = store

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&app.devicesFile, "devices", "f", "", "Path to the device fleet YAML file (required for every subcommand)")
	rootCmd.PersistentFlags().StringVarP(&app.configFile, "config", "c", "", "Path to the engine config YAML file (defaults to XDG discovery)")
	rootCmd.PersistentFlags().StringVar(&app.username, "username", "", "SSH username (defaults to NET_USERNAME)")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().BoolVar(&app.jsonOut, "json", false, "JSON output")

	rootCmd.AddCommand(
		devicesCmd,
		macCmd,
		lldpCmd,
		interfacesCmd,
		inventoryCmd,
		backupCmd,
		runCmd,
		syncNetboxCmd,
	)
}

func isHelpOrVersion(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "help" {
			return true
		}
	}
	return false
}

// requireDevicesFile fails fast with a configuration-category exit code
// when a subcommand that needs a fleet was invoked without one.
func requireDevicesFile() error {
	if app.devicesFile == "" {
		return exitf(2, "-f/--devices is required")
	}
	return nil
}
