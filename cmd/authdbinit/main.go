package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Optionally load environment variables from a .env file.
	_ = godotenv.Load()

	a := &app{}

	var rootCmd = &cobra.Command{
		Use:           "authdbinit",
		Short:         "Bootstrap the administrative principal of a MongoDB database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file; may also be specified in AUTHDBINIT_CONFIG. Falls back to environment variables")

	rootCmd.AddCommand(cmdBootstrap(a))
	rootCmd.AddCommand(cmdValidate(a))
	rootCmd.AddCommand(cmdStatus(a))

	if err := rootCmd.Execute(); err != nil {
		code := exitCode(err)
		if code != exitNotInitialized {
			color.Red("error: %s", err)
		}
		os.Exit(code)
	}
}
