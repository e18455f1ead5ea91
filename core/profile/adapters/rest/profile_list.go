package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListProfiles returns every profile as a JSON array, never null.
func (p *ProfileAPI) ListProfiles(c echo.Context) error {
	profiles, err := p.app.ListProfiles(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, mapProfiles(profiles))
}
