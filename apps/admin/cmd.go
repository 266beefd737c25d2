package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kat-co/vala"

	"github.com/edukeep/edukeep/core/imports"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db        *sqlx.DB
	importSvc *imports.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  importfile -file FILE -product PRODUCT -institution INSTITUTION [-dry] - import a spreadsheet")
	fmt.Println("  template -product PRODUCT -institution INSTITUTION [-format csv|xlsx] [-out DIR] - write an upload template")
	fmt.Println("  mktoken -email EMAIL [-admin] - print an API token")
	fmt.Println("  migrate COMMAND [ARGS...] - run database migrations (up, down, status, ...)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	importCmd := flag.NewFlagSet("importfile", flag.ExitOnError)
	importFile := importCmd.String("file", "", "Path of the csv/xlsx/xls file to import.")
	importProduct := importCmd.String("product", "", "Product: retention or recruitment.")
	importInstitution := importCmd.String("institution", "", "Institution type: school or university.")
	importDry := importCmd.Bool("dry", false, "Parse and validate only; write nothing.")

	templateCmd := flag.NewFlagSet("template", flag.ExitOnError)
	templateProduct := templateCmd.String("product", "", "Product: retention or recruitment.")
	templateInstitution := templateCmd.String("institution", "", "Institution type: school or university.")
	templateFormat := templateCmd.String("format", "csv", "Template format: csv or xlsx.")
	templateOut := templateCmd.String("out", ".", "Directory to write the template to.")

	mktokenCmd := flag.NewFlagSet("mktoken", flag.ExitOnError)
	mktokenEmail := mktokenCmd.String("email", "", "Email the token is issued to.")
	mktokenAdmin := mktokenCmd.Bool("admin", false, "Grant admin rights (threshold management).")

	switch args[1] {
	case "importfile":
		if err := importCmd.Parse(args[2:]); err != nil {
			return err
		}
		err := vala.BeginValidation().Validate(
			vala.StringNotEmpty(*importFile, "file"),
			vala.StringNotEmpty(*importProduct, "product"),
			vala.StringNotEmpty(*importInstitution, "institution"),
		).Check()
		if err != nil {
			importCmd.Usage()
			return err
		}
		return cli.importFile(*importFile, *importProduct, *importInstitution, *importDry)
	case "template":
		if err := templateCmd.Parse(args[2:]); err != nil {
			return err
		}
		err := vala.BeginValidation().Validate(
			vala.StringNotEmpty(*templateProduct, "product"),
			vala.StringNotEmpty(*templateInstitution, "institution"),
		).Check()
		if err != nil {
			templateCmd.Usage()
			return err
		}
		return cli.writeTemplate(*templateProduct, *templateInstitution, *templateFormat, *templateOut)
	case "mktoken":
		if err := mktokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if err := vala.BeginValidation().Validate(vala.StringNotEmpty(*mktokenEmail, "email")).Check(); err != nil {
			mktokenCmd.Usage()
			return err
		}
		return cli.makeToken(*mktokenEmail, *mktokenAdmin)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}
