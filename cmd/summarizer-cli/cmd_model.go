package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/janhq/jan-summarizer/pkg/client"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the model status",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newClient(cmd).Status(cmd.Context())
		if err != nil {
			return err
		}
		return printStatus(cmd, st)
	},
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load or reload the model",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newClient(cmd).Load(cmd.Context())
		if err != nil {
			return err
		}
		return printStatus(cmd, st)
	},
}

var unloadCmd = &cobra.Command{
	Use:   "unload",
	Short: "Release the model",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := newClient(cmd).Unload(cmd.Context())
		if err != nil {
			return err
		}
		return printStatus(cmd, st)
	},
}

func init() {
	for _, c := range []*cobra.Command{statusCmd, loadCmd, unloadCmd} {
		c.Flags().StringP("output", "o", formatText, "Output format: text, json, yaml")
	}
}

func printStatus(cmd *cobra.Command, st *client.ModelStatus) error {
	format, _ := cmd.Flags().GetString("output")
	out := cmd.OutOrStdout()
	if handled, err := writeStructured(out, format, st); handled {
		return err
	}
	writeStatusText(out, st)
	return nil
}

func writeStatusText(w io.Writer, st *client.ModelStatus) {
	fmt.Fprintf(w, "State:  %s\n", st.State)
	fmt.Fprintf(w, "Device: %s\n", st.Device)
	fmt.Fprintf(w, "Dir:    %s\n", st.ModelDir)
	if st.ModelName != "" {
		fmt.Fprintf(w, "Model:  %s (%s)\n", st.ModelName, st.ModelType)
	}
	if st.LoadedAt != nil {
		fmt.Fprintf(w, "Since:  %s\n", st.LoadedAt.Format("2006-01-02 15:04:05"))
	}
	if st.Error != "" {
		fmt.Fprintf(w, "Error:  %s\n", st.Error)
	}
}
