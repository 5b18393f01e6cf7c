package server

import (
	"net/http"

	"github.com/dtnitsch/wiki-outline/models"
	"github.com/dtnitsch/wiki-outline/pkg/outline"
	"github.com/labstack/echo/v4"
)

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) root(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: Banner})
}

func (s *Server) healthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) getOutline(c echo.Context) error {
	req := models.OutlineRequest{
		Country: c.QueryParam("country"),
		Scope:   models.Scope(c.QueryParam("scope")),
	}

	resp, err := s.outliner.GetOutline(c.Request().Context(), req)
	if err != nil {
		return c.JSON(outline.StatusCode(err), errorResponse{Detail: outline.Detail(err)})
	}
	return c.JSON(http.StatusOK, resp)
}
