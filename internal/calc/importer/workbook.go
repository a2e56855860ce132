package importer

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Retrofit/internal/calc/input"
	"Retrofit/internal/calc/options"
)

const (
	VariablesSheet = "Variables"
	OptionsSheet   = "Options"
)

// Read parses a workbook with a Variables sheet (key, value) and an Options
// sheet (category, selection, property, value). The first row of each sheet
// is a header.
func Read(r io.Reader) (input.Project, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return input.Project{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	vars, err := readVariables(f)
	if err != nil {
		return input.Project{}, err
	}
	catalog, err := readOptions(f)
	if err != nil {
		return input.Project{}, err
	}
	return input.Project{Variables: vars, Options: catalog}, nil
}

func rows(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}
	return rows[1:], nil
}

func readVariables(f *excelize.File) (options.Variables, error) {
	rs, err := rows(f, VariablesSheet)
	if err != nil {
		return nil, err
	}
	vars := options.Variables{}
	for _, row := range rs {
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		vars[strings.TrimSpace(row[0])] = cellValue(row[1])
	}
	return vars, nil
}

func readOptions(f *excelize.File) (options.Catalog, error) {
	rs, err := rows(f, OptionsSheet)
	if err != nil {
		return nil, err
	}
	catalog := options.Catalog{}
	// entries keep the order in which their selection first appears
	index := map[string]map[string]int{}
	for i, row := range rs {
		if len(row) < 4 {
			continue
		}
		category, key, prop := strings.TrimSpace(row[0]), strings.TrimSpace(row[1]), strings.TrimSpace(row[2])
		if category == "" || key == "" || prop == "" {
			return nil, fmt.Errorf("sheet %s row %d: category, selection and property are required", OptionsSheet, i+2)
		}
		cat := catalog[category]
		if index[category] == nil {
			index[category] = map[string]int{}
		}
		pos, ok := index[category][key]
		if !ok {
			pos = len(cat.Values)
			index[category][key] = pos
			cat.Values = append(cat.Values, options.Entry{key: options.Properties{}})
		}
		cat.Values[pos][key][prop] = cellValue(row[3])
		catalog[category] = cat
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("sheet %s has no options", OptionsSheet)
	}
	return catalog, nil
}

func cellValue(s string) any {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// Write lays a project out in the workbook format Read accepts.
func Write(p input.Project) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", VariablesSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(OptionsSheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(VariablesSheet, "A1", &[]any{"key", "value"}); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(p.Variables))
	for k := range p.Variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(VariablesSheet, cell, &[]any{k, p.Variables[k]}); err != nil {
			return nil, err
		}
	}

	if err := f.SetSheetRow(OptionsSheet, "A1", &[]any{"category", "selection", "property", "value"}); err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(p.Options))
	for c := range p.Options {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	row := 2
	for _, c := range categories {
		for _, entry := range p.Options[c].Values {
			for key, props := range entry {
				names := make([]string, 0, len(props))
				for n := range props {
					names = append(names, n)
				}
				sort.Strings(names)
				for _, n := range names {
					cell, _ := excelize.CoordinatesToCellName(1, row)
					if err := f.SetSheetRow(OptionsSheet, cell, &[]any{c, key, n, props[n]}); err != nil {
						return nil, err
					}
					row++
				}
			}
		}
	}
	return f, nil
}
