package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edukeep/edukeep/core/alert"
)

type alertApi struct {
	repo alert.Repository
}

func registerAlertAPI(g *echo.Group, jwt echo.MiddlewareFunc, repo alert.Repository) {
	api := alertApi{repo: repo}

	ag := g.Group("/alerts", jwt)
	ag.GET("", api.query)
	ag.PUT("/:id/read", api.markRead)
	ag.PUT("/:id/action", api.markActionTaken)
}

// Handlers

func (api *alertApi) query(ctx echo.Context) error {
	alerts, err := api.repo.QueryAllAlerts(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying alerts")
	}
	return ctx.JSON(http.StatusOK, alerts)
}

func (api *alertApi) markRead(ctx echo.Context) error {
	return api.mark(ctx, func(a *alert.Alert) { a.Read = true })
}

func (api *alertApi) markActionTaken(ctx echo.Context) error {
	return api.mark(ctx, func(a *alert.Alert) { a.ActionTaken = true })
}

func (api *alertApi) mark(ctx echo.Context, fn func(*alert.Alert)) error {
	a, err := api.repo.GetAlertByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == alert.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting alert")
	}
	fn(&a)
	a, err = api.repo.UpdateAlert(ctx.Request().Context(), a)
	if err != nil {
		return errors.Wrap(err, "updating alert")
	}
	return ctx.JSON(http.StatusOK, a)
}
