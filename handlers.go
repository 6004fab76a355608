package frontweb

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/thefrontweb/frontweb/content"
	"github.com/thefrontweb/frontweb/views"
)

func (a *App) handleIndex(c echo.Context) error {
	page, err := a.indexPage()
	if err != nil {
		return err
	}
	return Render(c, page)
}

func (a *App) handleArticle(c echo.Context) error {
	page, err := a.articlePage(c.Param("slug"))
	if errors.Is(err, content.ErrNotFound) {
		return RenderStatus(c, http.StatusNotFound, a.notFoundPage())
	}
	if err != nil {
		return err
	}
	return Render(c, page)
}

func (a *App) handleSitemap(c echo.Context) error {
	listing, err := a.listing()
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeSitemap(c.Response(), a.Config.URL, listing)
}

func (a *App) handleFeed(c echo.Context) error {
	listing, err := a.listing()
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return writeRSS(c.Response(), a.Config, listing)
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, a.robotsTxt())
}

func (a *App) handleSyntaxCSS(c echo.Context) error {
	css, err := a.syntaxCSS()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(css))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.notFoundPage())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.Config.views()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
