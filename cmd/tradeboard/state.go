package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/alexisbeaulieu97/tradeboard/pkg/diff"
)

func newStateCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect and edit saved view state",
		Long:  "Read, write, list and clear the view state the dashboard saves: theme, selected symbol, table layouts, filters, sorts, color modes and chart ranges.",
	}

	cmd.AddCommand(newStateGetCmd(flags))
	cmd.AddCommand(newStateSetCmd(flags))
	cmd.AddCommand(newStateListCmd(flags))
	cmd.AddCommand(newStateClearCmd(flags))

	return cmd
}

// withApp opens the configured storage for a state command.
func withApp(cmd *cobra.Command, flags *rootFlags, fn func(app *AppContext) error) error {
	app, err := newAppContext(flags, appOptions{stderr: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			app.Log.Error(cerr, "failed to close storage")
		}
	}()
	return fn(app)
}

func newStateGetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <namespace> [key...]",
		Short: "Print a saved value as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(app *AppContext) error {
				value := app.Store.Get(args[0], args[1:]...)
				if value == nil {
					path := strings.Join(args, ".")
					return newCommandError("read state", "looking up "+path, errors.New("no value saved"), "Run 'tradeboard state list' to view saved namespaces.")
				}
				return writeJSON(cmd, value)
			})
		},
	}
}

func newStateSetCmd(flags *rootFlags) *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "set <namespace> [key...] <value>",
		Short: "Save a value",
		Long:  "Save a value under a namespace, optionally at a nested key path. The value is parsed as JSON; anything that is not valid JSON is saved as a string.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			namespace := args[0]
			keyPath := args[1 : len(args)-1]
			value := parseValue(args[len(args)-1])

			return withApp(cmd, flags, func(app *AppContext) error {
				before := prettyDocument(app.Store.Get(namespace))
				if err := app.Store.Set(namespace, keyPath, value); err != nil {
					return newCommandError("write state", "saving "+namespace, err, "Check that the storage location is writable.")
				}
				app.Log.WithFields(map[string]any{"namespace": namespace}).Info("state saved")

				if showDiff {
					after := prettyDocument(app.Store.Get(namespace))
					fmt.Fprint(cmd.OutOrStdout(), diff.Unified(before, after, namespace+" (before)", namespace))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, "Print how the namespace document changed")
	return cmd
}

// prettyDocument renders a namespace document for diffing; nil renders empty.
func prettyDocument(value any) []byte {
	if value == nil {
		return nil
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

// parseValue decodes raw as JSON, falling back to the raw string.
func parseValue(raw string) any {
	if !gjson.Valid(raw) {
		return raw
	}
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	return value
}

type stateEntry struct {
	Namespace string `json:"namespace"`
	Kind      string `json:"kind"`
	Bytes     int    `json:"bytes"`
}

func newStateListCmd(flags *rootFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved namespaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(app *AppContext) error {
				namespaces, err := app.Store.Namespaces()
				if err != nil {
					return newCommandError("list state", "reading namespaces", err, "Check that the storage location is readable.")
				}

				entries := make([]stateEntry, 0, len(namespaces))
				for _, ns := range namespaces {
					raw, _, err := app.Backend.GetItem(ns)
					if err != nil {
						return newCommandError("list state", "reading "+ns, err, "Check that the storage location is readable.")
					}
					entries = append(entries, stateEntry{Namespace: ns, Kind: kindOf(raw), Bytes: len(raw)})
				}

				if jsonOutput {
					return writeJSON(cmd, entries)
				}
				return renderStateTable(cmd, entries)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	return cmd
}

func kindOf(raw string) string {
	if !gjson.Valid(raw) {
		return "invalid"
	}
	result := gjson.Parse(raw)
	switch {
	case result.IsObject():
		return "object"
	case result.IsArray():
		return "array"
	case result.Type == gjson.String:
		return "string"
	case result.Type == gjson.Number:
		return "number"
	case result.IsBool():
		return "bool"
	default:
		return "null"
	}
}

func renderStateTable(cmd *cobra.Command, entries []stateEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No view state saved yet.")
		return nil
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "NAMESPACE\tKIND\tSIZE")
	for _, e := range entries {
		fmt.Fprintf(writer, "%s\t%s\t%s\n", e.Namespace, e.Kind, humanize.Bytes(uint64(e.Bytes)))
	}
	return writer.Flush()
}

func newStateClearCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear [namespace]",
		Short: "Remove one namespace, or all saved state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(app *AppContext) error {
				if len(args) == 1 {
					if err := app.Store.Clear(args[0]); err != nil {
						return newCommandError("clear state", "removing "+args[0], err, "Check that the storage location is writable.")
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", args[0])
					return nil
				}
				if err := app.Store.ClearAll(); err != nil {
					return newCommandError("clear state", "removing all namespaces", err, "Check that the storage location is writable.")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cleared all view state")
				return nil
			})
		},
	}
}

func writeJSON(cmd *cobra.Command, value any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
