package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	"github.com/thefrontweb/frontweb"
)

var logger = log.New("frontweb")

// cli carries the configuration resolved before any subcommand runs.
type cli struct {
	configFile string
	cfg        frontweb.SiteConfig
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "frontweb",
		Short:         "A personal blog front-end for Markdown and MDX articles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "YAML config file (default: none)")

	root.AddCommand(
		newServeCmd(c),
		newBuildCmd(c),
		newNewCmd(c),
		newInitCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig layers .env, the optional YAML file and FRONTWEB_* variables
// over the built-in defaults.
func (c *cli) loadConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	cfg, err := frontweb.LoadConfig(c.configFile)
	if err != nil {
		return err
	}
	c.cfg = cfg.WithDefaults()
	return nil
}

func (c *cli) newApp() *frontweb.App {
	app := frontweb.New(c.cfg)
	app.Echo.Logger = logger
	return app
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the frontweb version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.Printf("frontweb %s\n", version)
			return nil
		},
	}
}
