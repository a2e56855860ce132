package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "retrofit",
		Short:        "Building energy and retrofit business-case calculator",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

// inputs names where a building and its catalog come from: either a single
// project file or separate variables and options files.
type inputs struct {
	project  string
	vars     string
	options  string
	workbook string
	savings  string
}

func inputFlags(in *inputs) *pflag.FlagSet {
	fs := pflag.NewFlagSet("inputs", pflag.ContinueOnError)
	fs.StringVarP(&in.project, "project", "p", "", "project file with variables and options (yaml or json)")
	fs.StringVar(&in.vars, "vars", "", "building variables file (yaml or json)")
	fs.StringVar(&in.options, "options", "", "options catalog file (yaml or json)")
	fs.StringVar(&in.workbook, "workbook", "", "xlsx workbook with Variables and Options sheets")
	fs.StringVar(&in.savings, "savings", "difference", "annual savings basis: difference or alternate-cost")
	return fs
}

func runCmd() *cobra.Command {
	var (
		in     inputs
		format string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate the baseline and alternate designs and print the business case",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd.OutOrStdout(), in, format)
		},
	}
	cmd.Flags().AddFlagSet(inputFlags(&in))
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")
	return cmd
}

func reportCmd() *cobra.Command {
	var (
		in   inputs
		out  string
		meta reportMeta
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the comparison and business case as a PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.OutOrStdout(), in, meta, out)
		},
	}
	cmd.Flags().AddFlagSet(inputFlags(&in))
	cmd.Flags().StringVarP(&out, "out", "o", "report.pdf", "output PDF path")
	cmd.Flags().StringVar(&meta.title, "title", "", "report title")
	cmd.Flags().StringVar(&meta.author, "author", "", "report author")
	cmd.Flags().StringVar(&meta.notes, "notes", "", "free-form notes")
	return cmd
}

func exportCmd() *cobra.Command {
	var (
		in  inputs
		out string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a building and catalog as an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.OutOrStdout(), in, out)
		},
	}
	cmd.Flags().AddFlagSet(inputFlags(&in))
	cmd.Flags().StringVarP(&out, "out", "o", "building.xlsx", "output workbook path")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("retrofit " + version)
		},
	}
}
