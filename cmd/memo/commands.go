package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/entrhq/memo/pkg/config"
	"github.com/entrhq/memo/pkg/executor/cli"
	"github.com/entrhq/memo/pkg/memo"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a memo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func() error {
				m, err := a.store.Add(strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added memo %d\n", m.ID)
				return nil
			})
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var filter memo.Filter
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List memos, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func() error {
				memos, err := filter.Apply(a.store.Memos())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					return memo.Export(out, memos, memo.FormatJSON)
				}
				if len(memos) == 0 {
					fmt.Fprintln(out, "No memos.")
					return nil
				}
				for _, m := range memos {
					fmt.Fprintln(out, cli.FormatMemo(m, a.settings.DateFormat))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&filter.Match, "match", "", "Only memos whose content matches this glob, e.g. '*milk*'")
	cmd.Flags().StringVar(&filter.Query, "query", "", "Only memos containing this text (case-insensitive)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the memos as JSON")

	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text...>",
		Short: "Replace the content of a memo",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}

			return a.withStore(cmd, func() error {
				updated, err := a.store.Update(id, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				if !updated {
					return fmt.Errorf("memo %d not found", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated memo %d\n", id)
				return nil
			})
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a memo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cli.ParseID(args[0])
			if err != nil {
				return err
			}

			return a.withStore(cmd, func() error {
				deleted, err := a.store.Delete(id)
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("memo %d not found", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted memo %d\n", id)
				return nil
			})
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every memo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func() error {
				out := cmd.OutOrStdout()

				n := a.store.Len()
				if n == 0 {
					fmt.Fprintln(out, "Nothing to clear.")
					return nil
				}

				if !yes && a.settings.ConfirmDelete {
					fmt.Fprintf(out, "Delete all %d memos? (y/n) ", n)
					answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
					switch strings.ToLower(strings.TrimSpace(answer)) {
					case "y", "yes":
					default:
						fmt.Fprintln(out, "Aborted.")
						return nil
					}
				}

				if err := a.store.ClearAll(); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %d memos\n", n)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var format, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all memos as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := memo.ParseFormat(format)
			if err != nil {
				return err
			}

			return a.withStore(cmd, func() error {
				memos := a.store.Memos()
				if outPath == "" || outPath == "-" {
					return memo.Export(cmd.OutOrStdout(), memos, f)
				}

				var buf bytes.Buffer
				if err := memo.Export(&buf, memos, f); err != nil {
					return err
				}
				if err := os.WriteFile(outPath, buf.Bytes(), 0600); err != nil {
					return fmt.Errorf("failed to write export: %w", err)
				}
				a.log.Infof("Exported %d memos to %s", len(memos), outPath)
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d memos to %s\n", len(memos), outPath)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Export format: json or yaml")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnv()
			if err != nil {
				return err
			}
			v := version
			if env.AppVersion != "" {
				v = env.AppVersion
			}
			fmt.Fprintf(cmd.OutOrStdout(), "memo v%s\n", strings.TrimPrefix(v, "v"))
			return nil
		},
	}
}
