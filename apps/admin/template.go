package main

import (
	"fmt"
	"io/ioutil"
	"path/filepath"

	"github.com/edukeep/edukeep/core/schema"
)

func (cli *commandLine) writeTemplate(product, institution, format, outDir string) error {
	profile, err := schema.Get(schema.ProductType(product), schema.InstitutionType(institution))
	if err != nil {
		return err
	}
	buf, filename, err := schema.Template(profile, format)
	if err != nil {
		return err
	}

	path := filepath.Join(outDir, filename)
	if err := ioutil.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return err
	}
	fmt.Printf("template written to %s\n", path)
	return nil
}
