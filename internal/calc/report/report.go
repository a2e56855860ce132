package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"Retrofit/internal/calc/pipeline"
)

type Meta struct {
	Project string    `json:"project"`
	Author  string    `json:"author"`
	Title   string    `json:"title"`
	Notes   string    `json:"notes"`
	Date    time.Time `json:"-"`
}

type row struct {
	label     string
	unit      string
	baseline  float64
	alternate float64
	decimals  int
}

// Render writes a PDF comparing the baseline and alternate designs and the
// retrofit business case.
func Render(w io.Writer, meta Meta, b pipeline.Bundle) error {
	if meta.Title == "" {
		meta.Title = "Retrofit Business Case"
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, meta.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", meta.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", meta.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(10)

	a, o := b.OutputA, b.OutputB
	section(pdf, "Energy performance")
	table(pdf, []row{
		{"Peak heating load", "kW", a.HeatingLoadKW, o.HeatingLoadKW, 1},
		{"Peak cooling load", "kW", a.CoolingLoadKW, o.CoolingLoadKW, 1},
		{"Space heating demand", "kWh/m2", a.SpaceHeatingDemand, o.SpaceHeatingDemand, 0},
		{"Space heating", "kWh", a.SpaceHeating, o.SpaceHeating, 0},
		{"Hot water", "kWh", a.HotWater, o.HotWater, 0},
		{"Lights, appliances, plugs", "kWh", a.LightsAppliancesPlugs, o.LightsAppliancesPlugs, 0},
		{"Total energy", "kWh", a.TotalEnergyConsumption, o.TotalEnergyConsumption, 0},
		{"Space heating cost", "$", a.SpaceHeatingCost, o.SpaceHeatingCost, 2},
		{"Hot water cost", "$", a.HotWaterCost, o.HotWaterCost, 2},
		{"Lights, appliances, plugs cost", "$", a.LightsAppliancesPlugsCost, o.LightsAppliancesPlugsCost, 2},
		{"Total energy cost", "$", a.TotalEnergyCosts, o.TotalEnergyCosts, 2},
	})

	e := b.Economics
	section(pdf, "Business case")
	pdf.SetFont("Helvetica", "", 10)
	for _, m := range e.Measures {
		if m.Total == 0 {
			continue
		}
		line(pdf, m.Name, fmt.Sprintf("%.2f x %.2f = %.2f", m.Cost, m.Quantity, m.Total))
	}
	line(pdf, "Investment", fmt.Sprintf("%.2f", e.Investment))
	line(pdf, "Annual savings", fmt.Sprintf("%.2f (%s)", e.AnnualSavings, e.SavingsBasis))
	line(pdf, "Simple payback", fmt.Sprintf("%.1f years", e.Payback))
	line(pdf, "Net savings", fmt.Sprintf("%.2f over %d years", e.NetSavings, len(e.Years)-1))
	if e.IRRConverged {
		line(pdf, "Internal rate of return", fmt.Sprintf("%.2f %%", e.IRR*100))
	} else {
		line(pdf, "Internal rate of return", "not defined for these cash flows")
	}
	line(pdf, "Loan", fmt.Sprintf("%d years at %.2f %%", e.LoanTermYears, e.Interest*100))
	line(pdf, "Monthly payment", fmt.Sprintf("%.2f", e.MonthlyPayment))
	line(pdf, "Monthly savings", fmt.Sprintf("%.2f", e.MonthlySavings))
	line(pdf, "Monthly net savings", fmt.Sprintf("%.2f", e.MonthlyNetSavings))

	if meta.Notes != "" {
		section(pdf, "Notes")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, meta.Notes, "", "L", false)
	}

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

func table(pdf *gofpdf.Fpdf, rows []row) {
	widths := []float64{70, 20, 45, 45}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"", "Unit", "Baseline", "Alternate"} {
		pdf.CellFormat(widths[i], 7, h, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 6, r.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, r.unit, "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("%.*f", r.decimals, r.baseline), "", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.*f", r.decimals, r.alternate), "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
}

func line(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(70, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, value, "", 0, "L", false, 0, "")
	pdf.Ln(-1)
}
