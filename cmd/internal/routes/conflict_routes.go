package routes

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"calassist/cmd/internal/service"
	"calassist/cmd/internal/utils"
	"calassist/cmd/internal/utils/apierror"
)

type ConflictService interface {
	CheckConflict(req *service.ConflictCheckRequest, userID int64) (*service.ConflictCheckResponse, apierror.ErrorResponse)
	SmartSuggestions(req *service.SmartSuggestionsRequest, userID int64) (*service.SmartSuggestionsResponse, apierror.ErrorResponse)
}

type DefaultConflictRoute struct {
	ConflictService ConflictService
}

func NewConflictDefault(conflictService ConflictService) *DefaultConflictRoute {
	return &DefaultConflictRoute{ConflictService: conflictService}
}

func (r *DefaultConflictRoute) CheckConflict(c echo.Context) error {
	var req service.ConflictCheckRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	userID, err := utils.UserIDFromCtx(c)
	if err != nil {
		return c.JSON(apierror.MissingUserError.Code(), apierror.MissingUserError)
	}

	resp, apierr := r.ConflictService.CheckConflict(&req, userID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (r *DefaultConflictRoute) GetSuggestions(c echo.Context) error {
	userID, err := utils.UserIDFromCtx(c)
	if err != nil {
		return c.JSON(apierror.MissingUserError.Code(), apierror.MissingUserError)
	}

	date := c.QueryParam("date")
	if date == "" {
		apierr := apierror.NewMissingParamError("date")
		return c.JSON(apierr.Code(), apierr)
	}

	duration := 0
	if raw := c.QueryParam("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			apierr := apierror.NewInvalidParamTypeError("duration", "int")
			return c.JSON(apierr.Code(), apierr)
		}
	}

	req := service.SmartSuggestionsRequest{
		Date:      date,
		Duration:  duration,
		EventType: c.QueryParam("eventType"),
		Location:  c.QueryParam("location"),
	}

	resp, apierr := r.ConflictService.SmartSuggestions(&req, userID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}
