package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"calassist/cmd/internal/service"
	"calassist/cmd/internal/utils"
	"calassist/cmd/internal/utils/apierror"
)

type PreferenceService interface {
	GetPreferences(userID int64) (*service.PreferenceResponse, apierror.ErrorResponse)
	UpdatePreferences(req *service.UpdatePreferencesRequest, userID int64) (*service.PreferenceResponse, apierror.ErrorResponse)
}

type DefaultPreferenceRoute struct {
	PreferenceService PreferenceService
}

func NewPreferenceDefault(prefService PreferenceService) *DefaultPreferenceRoute {
	return &DefaultPreferenceRoute{PreferenceService: prefService}
}

func (r *DefaultPreferenceRoute) GetPreferences(c echo.Context) error {
	userID, err := utils.UserIDFromCtx(c)
	if err != nil {
		return c.JSON(apierror.MissingUserError.Code(), apierror.MissingUserError)
	}

	pref, apierr := r.PreferenceService.GetPreferences(userID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, pref)
}

func (r *DefaultPreferenceRoute) UpdatePreferences(c echo.Context) error {
	var req service.UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	userID, err := utils.UserIDFromCtx(c)
	if err != nil {
		return c.JSON(apierror.MissingUserError.Code(), apierror.MissingUserError)
	}

	pref, apierr := r.PreferenceService.UpdatePreferences(&req, userID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, pref)
}
