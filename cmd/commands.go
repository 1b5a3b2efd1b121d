package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/vcrx/pkg/loader"
	"github.com/oakwood-commons/vcrx/pkg/preview"
)

var keysCmd = &cobra.Command{
	Use:   "keys <file>",
	Short: "List every addressable path in a cassette",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		doc, err := loader.LoadFileWithLogger(args[0], cliLogger())
		if err != nil {
			return err
		}
		previewableOnly, _ := cmd.Flags().GetBool("previewable")

		if previewableOnly {
			paths, err := engine.PreviewableKeys(doc, channel)
			if err != nil {
				return exitMessage(err)
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), displayPath(p.String()))
			}
			return nil
		}
		for _, p := range engine.ListKeys(doc) {
			fmt.Fprintln(cmd.OutOrStdout(), displayPath(p.String()))
		}
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview <file> <path>",
	Short: "Render the value at a path using the channel's rules",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		doc, err := loader.LoadFileWithLogger(args[0], cliLogger())
		if err != nil {
			return err
		}
		all, _ := cmd.Flags().GetBool("all")
		withMeta, _ := cmd.Flags().GetBool("meta")

		if all {
			results, err := engine.PreviewKeyAll(doc, args[1], channel)
			if err != nil {
				return exitMessage(err)
			}
			for i, res := range results {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				printResult(cmd, res, true, withMeta)
			}
			return nil
		}

		res, err := engine.PreviewKey(doc, args[1], channel)
		if err != nil {
			return exitMessage(err)
		}
		printResult(cmd, *res, false, withMeta)
		return nil
	},
}

var catCmd = &cobra.Command{
	Use:   "cat <file>",
	Short: "Render every previewable value in a cassette",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}
		doc, err := loader.LoadFileWithLogger(args[0], cliLogger())
		if err != nil {
			return err
		}
		results, err := engine.PreviewFile(doc, channel)
		if err != nil {
			return exitMessage(err)
		}
		withMeta, _ := cmd.Flags().GetBool("meta")
		for i, res := range results {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			printResult(cmd, res, true, withMeta)
		}
		return nil
	},
}

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "List configured channels and their extraction rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		for _, ch := range cfg.Channels {
			marker := " "
			if ch.Name == cfg.DefaultChannel {
				marker = "*"
			}
			state := ""
			if !ch.Enabled {
				state = " (disabled)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s%s\n", marker, ch.Name, state)
			for _, rule := range ch.Rules {
				fmt.Fprintf(cmd.OutOrStdout(), "    %-50s -> %s\n", displayPath(rule.Pattern.String()), rule.Formatter)
			}
		}
		return nil
	},
}

var discoverCmd = &cobra.Command{
	Use:   "discover [dir]",
	Short: "List cassette files matching the channel's glob patterns",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ch, ok := cfg.Channel(channel)
		if !ok {
			return fmt.Errorf("unknown or disabled channel %q", channel)
		}
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		files, err := loader.Discover(dir, ch.GlobPatterns)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		return nil
	},
}

func init() {
	keysCmd.Flags().Bool("previewable", false, "only list paths with a matching extraction rule")
	previewCmd.Flags().Bool("all", false, "render every wildcard match, not just the first")
	previewCmd.Flags().Bool("meta", false, "print extracted metadata before the content")
	catCmd.Flags().Bool("meta", false, "print extracted metadata before each value")
}

// displayPath renders the root path as "." so key listings have no blank
// lines.
func displayPath(s string) string {
	if s == "" {
		return "."
	}
	return s
}

func printResult(cmd *cobra.Command, res preview.Result, withHeader, withMeta bool) {
	out := cmd.OutOrStdout()
	if withHeader {
		label := res.Label
		if label == "" {
			label = res.Formatter
		}
		fmt.Fprintf(out, "== %s (%s)\n", displayPath(res.Path.String()), label)
	}
	if withMeta {
		for _, m := range res.Metadata {
			fmt.Fprintf(out, "# %s: %s\n", m.Key, m.Value)
		}
	}
	fmt.Fprintln(out, res.Content)
}
