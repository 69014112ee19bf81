package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"emojidb/internal"
	"emojidb/internal/models"
	"emojidb/internal/parser"
	"emojidb/internal/services"

	"github.com/spf13/cobra"
)

type appRunner func(run func(cmd *cobra.Command, app *internal.App, args []string) error) func(*cobra.Command, []string) error

func newInfoCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show version, date and size of the emoji database",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, app *internal.App, _ []string) error {
			emojis, err := app.Emojis()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Version:\t%s\n", emojis.Version())
			fmt.Fprintf(w, "Date:\t%s\n", emojis.Date())
			fmt.Fprintf(w, "Fingerprint:\t%s\n", emojis.Fingerprint())
			fmt.Fprintf(w, "Emojis:\t%d\n", emojis.Count())
			fmt.Fprintf(w, "Cache key:\t%s\n", app.Manager.CacheKey(emojis.Fingerprint()))
			return w.Flush()
		}),
	}
}

func newListCmd(withApp appRunner) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every emoji with its code points",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, app *internal.App, _ []string) error {
			var filter models.EmojiStatus
			if status != "" {
				s, err := models.ParseEmojiStatus(status)
				if err != nil {
					return err
				}
				filter = s
			}

			emojis, err := app.Emojis()
			if err != nil {
				return err
			}

			all := emojis.All()
			if filter != "" {
				all = emojis.WithStatus(filter)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			i := 0
			for e := range all {
				item := services.NewPanelItem(e)
				fmt.Fprintf(w, "%d\t%s\t%s\n", i, item.Trigger, item.Annotation)
				i++
			}
			return w.Flush()
		}),
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "only list emojis with this qualification status")
	return cmd
}

func indexArg(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", arg, err)
	}
	return i, nil
}

func newShowCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "show <index>",
		Short: "Show one record of the database",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, app *internal.App, args []string) error {
			i, err := indexArg(args[0])
			if err != nil {
				return err
			}
			emojis, err := app.Emojis()
			if err != nil {
				return err
			}
			e, err := emojis.At(i)
			if err != nil {
				return err
			}
			printEmoji(cmd, e)
			return nil
		}),
	}
}

// newInsertCmd writes the bare character, for editors piping the output
// into the buffer.
func newInsertCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "insert <index>",
		Short: "Print only the character of one record",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, app *internal.App, args []string) error {
			i, err := indexArg(args[0])
			if err != nil {
				return err
			}
			emojis, err := app.Emojis()
			if err != nil {
				return err
			}
			e, err := emojis.At(i)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), e.Char)
			return err
		}),
	}
}

func newDumpCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the database in emoji-test.txt format",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, app *internal.App, _ []string) error {
			db, err := app.Database()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), db.String())
			return err
		}),
	}
}

func newHashCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "hash",
		Short: "Write the content token file next to the source data",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, app *internal.App, _ []string) error {
			token, err := app.WriteHashToken()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		}),
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <line>",
		Short: "Parse a single emoji-test.txt data line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := parser.NewParser().ParseRecord(args[0])
			if err != nil {
				return err
			}
			printEmoji(cmd, e)
			return nil
		},
	}
}

func printEmoji(cmd *cobra.Command, e models.Emoji) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Char:\t%s\n", e.Char)
	fmt.Fprintf(w, "Codes:\t%s\n", services.NewPanelItem(e).Annotation)
	fmt.Fprintf(w, "Status:\t%s\n", e.Status)
	fmt.Fprintf(w, "Description:\t%s\n", e.Description)
	fmt.Fprintf(w, "Version:\tE%s\n", e.Version)
	fmt.Fprintf(w, "Line:\t%s\n", e)
	w.Flush()
}
