package routes

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"calassist/cmd/internal/service"
	"calassist/cmd/internal/utils"
	"calassist/cmd/internal/utils/apierror"
)

type EventService interface {
	CreateEvent(req *service.CreateEventRequest, userID int64) (*service.EventResponse, apierror.ErrorResponse)
	GetEvents(userID int64, date string) ([]*service.EventResponse, apierror.ErrorResponse)
	GetEvent(id, userID int64) (*service.EventResponse, apierror.ErrorResponse)
	RescheduleEvent(id int64, req *service.RescheduleEventRequest, userID int64) (*service.EventResponse, apierror.ErrorResponse)
	CancelEvent(id, userID int64) apierror.ErrorResponse
	ExportCalendar(userID int64) ([]byte, apierror.ErrorResponse)
}

type DefaultEventRoute struct {
	EventService EventService
}

func NewEventDefault(eventService EventService) *DefaultEventRoute {
	return &DefaultEventRoute{EventService: eventService}
}

func (r *DefaultEventRoute) GetEvents(c echo.Context) error {
	userID, err := utils.UserIDFromCtx(c)
	if err != nil {
		return c.JSON(apierror.MissingUserError.Code(), apierror.MissingUserError)
	}

	events, apierr := r.EventService.GetEvents(userID, c.QueryParam("date"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"events": events}
	return c.JSON(http.StatusOK, &resp)
}

func (r *DefaultEventRoute) CreateEvent(c echo.Context) error {
	var req service.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	userID, err := utils.UserIDFromCtx(c)
	if err != nil {
		return c.JSON(apierror.MissingUserError.Code(), apierror.MissingUserError)
	}

	ev, apierr := r.EventService.CreateEvent(&req, userID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, ev)
}

func (r *DefaultEventRoute) GetEvent(c echo.Context) error {
	id, apierr := eventIDParam(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	userID, err := utils.UserIDFromCtx(c)
	if err != nil {
		return c.JSON(apierror.MissingUserError.Code(), apierror.MissingUserError)
	}

	ev, apierr := r.EventService.GetEvent(id, userID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, ev)
}

func (r *DefaultEventRoute) RescheduleEvent(c echo.Context) error {
	id, apierr := eventIDParam(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req service.RescheduleEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	userID, err := utils.UserIDFromCtx(c)
	if err != nil {
		return c.JSON(apierror.MissingUserError.Code(), apierror.MissingUserError)
	}

	ev, apierr := r.EventService.RescheduleEvent(id, &req, userID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, ev)
}

func (r *DefaultEventRoute) CancelEvent(c echo.Context) error {
	id, apierr := eventIDParam(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	userID, err := utils.UserIDFromCtx(c)
	if err != nil {
		return c.JSON(apierror.MissingUserError.Code(), apierror.MissingUserError)
	}

	if apierr := r.EventService.CancelEvent(id, userID); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusOK)
}

func (r *DefaultEventRoute) ExportCalendar(c echo.Context) error {
	userID, err := utils.UserIDFromCtx(c)
	if err != nil {
		return c.JSON(apierror.MissingUserError.Code(), apierror.MissingUserError)
	}

	data, apierr := r.EventService.ExportCalendar(userID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", data)
}

func eventIDParam(c echo.Context) (int64, apierror.ErrorResponse) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError("id", "int64")
	}
	return id, nil
}
