package echoapi

import (
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edukeep/edukeep/core/imports"
	"github.com/edukeep/edukeep/core/schema"
)

type importApi struct {
	svc  *imports.Service
	repo imports.Repository
}

func registerImportAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *imports.Service, repo imports.Repository) {
	api := importApi{svc: svc, repo: repo}

	ig := g.Group("/imports", jwt)
	ig.POST("/:product/:institution", api.upload)
	ig.GET("/template/:product/:institution", api.template)
	ig.GET("/records", api.queryRecords)
}

// Handlers

func (api *importApi) upload(ctx echo.Context) error {
	product := schema.ProductType(ctx.Param("product"))
	institution := schema.InstitutionType(ctx.Param("institution"))

	fileHdr, err := ctx.FormFile("file")
	if err != nil {
		return errMissingFile
	}
	file, err := fileHdr.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer file.Close()
	data, err := ioutil.ReadAll(file)
	if err != nil {
		return errors.Wrap(err, "reading uploaded file")
	}

	res, err := api.svc.Import(ctx.Request().Context(), fileHdr.Filename, data, product, institution)
	if err != nil {
		return err
	}
	if len(res.Errors) > 0 {
		// the batch was rejected; nothing was written
		return ctx.JSON(http.StatusUnprocessableEntity, res)
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *importApi) template(ctx echo.Context) error {
	product := schema.ProductType(ctx.Param("product"))
	institution := schema.InstitutionType(ctx.Param("institution"))
	format := ctx.QueryParam("format")
	if format == "" {
		format = "csv"
	}

	profile, err := schema.Get(product, institution)
	if err != nil {
		return err
	}
	buf, filename, err := schema.Template(profile, format)
	if err != nil {
		return err
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Blob(http.StatusOK, echo.MIMEOctetStream, buf.Bytes())
}

func (api *importApi) queryRecords(ctx echo.Context) error {
	records, err := api.repo.QueryAllRecords(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying records")
	}
	return ctx.JSON(http.StatusOK, records)
}
