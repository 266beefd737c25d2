package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/edukeep/edukeep/core/imports"
	"github.com/edukeep/edukeep/core/schema"
)

// importFile runs one spreadsheet through the import pipeline. With dry set,
// the file is parsed and validated but nothing is written.
func (cli *commandLine) importFile(path, product, institution string, dry bool) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	filename := filepath.Base(path)

	if dry {
		return cli.dryRun(filename, data, schema.ProductType(product), schema.InstitutionType(institution))
	}

	res, err := cli.importSvc.Import(
		context.Background(),
		filename,
		data,
		schema.ProductType(product),
		schema.InstitutionType(institution),
	)
	if err != nil {
		return err
	}
	if len(res.Errors) > 0 {
		printRowErrors(res.Errors)
		return fmt.Errorf("import rejected: %d error(s), nothing was written", len(res.Errors))
	}

	fmt.Printf("imported %d record(s): %d new, %d updated, %d alert(s)\n",
		len(res.Records), res.NewCount, res.UpdatedCount, res.AlertCount)
	return nil
}

func (cli *commandLine) dryRun(filename string, data []byte, product schema.ProductType, institution schema.InstitutionType) error {
	profile, err := schema.Get(product, institution)
	if err != nil {
		return err
	}
	format, err := imports.ParseFormat(filename)
	if err != nil {
		return err
	}
	rows, err := imports.Parse(data, format)
	if err != nil {
		return err
	}

	records, rowErrs := imports.Validate(rows, profile)
	if len(rowErrs) > 0 {
		printRowErrors(rowErrs)
		return fmt.Errorf("validation failed: %d error(s)", len(rowErrs))
	}
	fmt.Printf("ok: %d row(s) would be imported\n", len(records))
	return nil
}

func printRowErrors(rowErrs []imports.RowError) {
	for _, e := range rowErrs {
		if e.Column != "" {
			fmt.Printf("row %d, column %s: %s\n", e.Row, e.Column, e.Message)
		} else {
			fmt.Printf("row %d: %s\n", e.Row, e.Message)
		}
	}
}
