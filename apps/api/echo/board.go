package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmahmud/shikkha/core/board"
)

type boardApi struct {
	svc      *board.Service
	validate *validator.Validate
}

func registerBoardAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *board.Service, validate *validator.Validate) {
	api := boardApi{
		svc:      svc,
		validate: validate,
	}

	// read-only listings, any authed user
	bg := g.Group("/board", jwt)
	bg.GET("/notices", api.queryNotices)
	bg.GET("/banners", api.queryBanners)
	bg.GET("/links", api.queryLinks)

	// content administration
	ag := g.Group("/admin", jwt, adminMiddleware())
	ag.POST("/notices", api.createNotice)
	ag.DELETE("/notices/:id", api.destroyNotice)
	ag.POST("/banners", api.createBanner)
	ag.DELETE("/banners/:id", api.destroyBanner)
	ag.POST("/links", api.createLink)
	ag.DELETE("/links/:id", api.destroyLink)
}

// Handlers

func (api *boardApi) createNotice(ctx echo.Context) error {
	var data board.NewNotice
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotice")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	n, err := api.svc.CreateNotice(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating notice")
	}
	return ctx.JSON(http.StatusCreated, n)
}

func (api *boardApi) queryNotices(ctx echo.Context) error {
	notices, err := api.svc.Notices(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying notices")
	}
	if notices == nil {
		notices = []board.Notice{}
	}
	return ctx.JSON(http.StatusOK, notices)
}

func (api *boardApi) destroyNotice(ctx echo.Context) error {
	if err := api.svc.DeleteNotice(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == board.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting notice")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *boardApi) createBanner(ctx echo.Context) error {
	var data board.NewBanner
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBanner")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	b, err := api.svc.CreateBanner(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating banner")
	}
	return ctx.JSON(http.StatusCreated, b)
}

func (api *boardApi) queryBanners(ctx echo.Context) error {
	banners, err := api.svc.Banners(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying banners")
	}
	if banners == nil {
		banners = []board.Banner{}
	}
	return ctx.JSON(http.StatusOK, banners)
}

func (api *boardApi) destroyBanner(ctx echo.Context) error {
	if err := api.svc.DeleteBanner(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == board.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting banner")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *boardApi) createLink(ctx echo.Context) error {
	var data board.NewLink
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLink")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	l, err := api.svc.CreateLink(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating link")
	}
	return ctx.JSON(http.StatusCreated, l)
}

func (api *boardApi) queryLinks(ctx echo.Context) error {
	links, err := api.svc.Links(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying links")
	}
	if links == nil {
		links = []board.SchoolLink{}
	}
	return ctx.JSON(http.StatusOK, links)
}

func (api *boardApi) destroyLink(ctx echo.Context) error {
	if err := api.svc.DeleteLink(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == board.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting link")
	}
	return ctx.NoContent(http.StatusNoContent)
}
