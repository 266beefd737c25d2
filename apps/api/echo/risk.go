package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edukeep/edukeep/core/risk"
)

type riskApi struct {
	repo risk.ThresholdRepository
}

func registerRiskAPI(g *echo.Group, jwt echo.MiddlewareFunc, repo risk.ThresholdRepository) {
	api := riskApi{repo: repo}

	rg := g.Group("/risk", jwt)
	rg.GET("/thresholds", api.retrieveThresholds)
	rg.PUT("/thresholds", api.updateThresholds, adminMiddleware())
}

// Handlers

func (api *riskApi) retrieveThresholds(ctx echo.Context) error {
	t, err := api.repo.GetThresholds(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting thresholds")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *riskApi) updateThresholds(ctx echo.Context) error {
	var t risk.Thresholds
	if err := ctx.Bind(&t); err != nil {
		return errors.Wrap(err, "binding to Thresholds")
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if err := api.repo.SaveThresholds(ctx.Request().Context(), t); err != nil {
		return errors.Wrap(err, "saving thresholds")
	}
	return ctx.JSON(http.StatusOK, t)
}
