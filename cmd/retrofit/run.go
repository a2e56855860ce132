package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"Retrofit/internal/calc/calcerr"
	"Retrofit/internal/calc/economics"
	"Retrofit/internal/calc/importer"
	"Retrofit/internal/calc/input"
	"Retrofit/internal/calc/pipeline"
	"Retrofit/internal/calc/report"
)

type reportMeta struct {
	title  string
	author string
	notes  string
}

func (in inputs) load() (input.Project, error) {
	switch {
	case in.project != "":
		return input.LoadProject(in.project)
	case in.workbook != "":
		f, err := os.Open(filepath.Clean(in.workbook))
		if err != nil {
			return input.Project{}, err
		}
		defer f.Close()
		p, err := importer.Read(f)
		if err != nil {
			return input.Project{}, err
		}
		p.Name = strings.TrimSuffix(filepath.Base(in.workbook), filepath.Ext(in.workbook))
		return p, nil
	case in.vars != "" && in.options != "":
		vars, err := input.LoadVariables(in.vars)
		if err != nil {
			return input.Project{}, err
		}
		catalog, err := input.LoadCatalog(in.options)
		if err != nil {
			return input.Project{}, err
		}
		name := strings.TrimSuffix(filepath.Base(in.vars), filepath.Ext(in.vars))
		return input.Project{Name: name, Variables: vars, Options: catalog}, nil
	}
	return input.Project{}, errors.New("need --project, --workbook, or both --vars and --options")
}

// evaluate loads the inputs and runs the pipeline. A rate of return that
// does not converge is returned as a warning next to a complete bundle.
func (in inputs) evaluate() (input.Project, pipeline.Bundle, string, error) {
	p, err := in.load()
	if err != nil {
		return input.Project{}, pipeline.Bundle{}, "", err
	}
	basis, err := economics.ParseSavingsBasis(in.savings)
	if err != nil {
		return input.Project{}, pipeline.Bundle{}, "", err
	}
	b, err := pipeline.RunWith(p.Variables, p.Options, pipeline.Config{Economics: economics.Config{Savings: basis}})
	if errors.Is(err, calcerr.ErrNoConvergence) {
		return p, b, err.Error(), nil
	}
	return p, b, "", err
}

func runRun(w io.Writer, in inputs, format string) error {
	p, b, warning, err := in.evaluate()
	if err != nil {
		return err
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(pipeline.Response{Bundle: b, Warnings: nonEmpty(warning)})
	case "text":
		return printText(w, p.Name, b, warning)
	}
	return fmt.Errorf("unknown format %q", format)
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func printText(w io.Writer, name string, b pipeline.Bundle, warning string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\tbaseline\talternate\t\n", name)
	a, o := b.OutputA, b.OutputB
	fmt.Fprintf(tw, "heating load (kW)\t%.1f\t%.1f\t\n", a.HeatingLoadKW, o.HeatingLoadKW)
	fmt.Fprintf(tw, "cooling load (kW)\t%.1f\t%.1f\t\n", a.CoolingLoadKW, o.CoolingLoadKW)
	fmt.Fprintf(tw, "space heating demand (kWh/m2)\t%.0f\t%.0f\t\n", a.SpaceHeatingDemand, o.SpaceHeatingDemand)
	fmt.Fprintf(tw, "total energy (kWh)\t%.0f\t%.0f\t\n", a.TotalEnergyConsumption, o.TotalEnergyConsumption)
	fmt.Fprintf(tw, "total energy cost\t%.2f\t%.2f\t\n", a.TotalEnergyCosts, o.TotalEnergyCosts)
	if err := tw.Flush(); err != nil {
		return err
	}

	e := b.Economics
	fmt.Fprintln(w)
	fmt.Fprintf(w, "investment          %.2f\n", e.Investment)
	fmt.Fprintf(w, "annual savings      %.2f (%s)\n", e.AnnualSavings, e.SavingsBasis)
	fmt.Fprintf(w, "payback             %.1f years\n", e.Payback)
	if e.IRRConverged {
		fmt.Fprintf(w, "irr                 %.2f%%\n", e.IRR*100)
	} else {
		fmt.Fprintln(w, "irr                 n/a")
	}
	fmt.Fprintf(w, "monthly payment     %.2f\n", e.MonthlyPayment)
	fmt.Fprintf(w, "monthly net savings %.2f\n", e.MonthlyNetSavings)
	if warning != "" {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	return nil
}

func runReport(w io.Writer, in inputs, meta reportMeta, out string) error {
	p, b, _, err := in.evaluate()
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Clean(out))
	if err != nil {
		return err
	}
	defer f.Close()

	m := report.Meta{Project: p.Name, Author: meta.author, Title: meta.title, Notes: meta.notes}
	if err := report.Render(f, m, b); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s\n", out)
	return f.Close()
}

func runExport(w io.Writer, in inputs, out string) error {
	p, err := in.load()
	if err != nil {
		return err
	}
	f, err := importer.Write(p)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(filepath.Clean(out)); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s\n", out)
	return nil
}
