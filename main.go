package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "invoiceqa/docs" // Swagger docs
)

// cmdGlobal holds the flags shared by every subcommand.
type cmdGlobal struct {
	flagEnvFile string
	flagDebug   bool
}

func main() {
	global := cmdGlobal{}

	serve := cmdServe{global: &global}

	app := &cobra.Command{
		Use:               "invoiceqa",
		Short:             "Answer natural-language invoice questions with fixed SQL templates",
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE:              serve.run,
	}

	app.PersistentFlags().StringVar(&global.flagEnvFile, "env-file", ".env", "Optional dotenv file loaded before reading the environment")
	app.PersistentFlags().BoolVarP(&global.flagDebug, "debug", "d", false, "Show all debug messages")

	app.AddCommand(serve.command())

	classify := cmdClassify{global: &global}
	app.AddCommand(classify.command())

	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}
