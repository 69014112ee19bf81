package main

import (
	"emojidb/internal"
	"emojidb/internal/di"
	"emojidb/internal/structures"

	"github.com/spf13/cobra"
)

type appFactory func(flags *structures.CliFlags) (*internal.App, error)

func newRootCmd() *cobra.Command {
	return newRootCmdWith(di.InitApp)
}

func newRootCmdWith(initApp appFactory) *cobra.Command {
	flags := &structures.CliFlags{}

	root := &cobra.Command{
		Use:   "emojidb",
		Short: "Query the Unicode emoji test data",
		Long: `emojidb parses emoji-test.txt into a database, caches the parsed snapshot
next to a fingerprint of the source and answers queries from it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config.yml", "path to the config file")
	root.PersistentFlags().BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror log output to the console")

	withApp := func(run func(cmd *cobra.Command, app *internal.App, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			app, err := initApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			return run(cmd, app, args)
		}
	}

	root.AddCommand(
		newInfoCmd(withApp),
		newListCmd(withApp),
		newShowCmd(withApp),
		newInsertCmd(withApp),
		newDumpCmd(withApp),
		newHashCmd(withApp),
		newParseCmd(),
	)
	return root
}
