package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"calassist/cmd/internal/conflict"
	"calassist/cmd/internal/domain/entity"
	"calassist/cmd/internal/utils"
	"calassist/cmd/internal/utils/apierror"
)

type PreferenceRepository interface {
	FindByUserID(userID int64) (*entity.UserPreference, error)
	Save(pref *entity.UserPreference) error
}

// Defaults written on first access.
const (
	defaultWorkDayStart  = "09:00"
	defaultWorkDayEnd    = "17:00"
	defaultEventDuration = 60
	defaultBufferMinutes = 15
	defaultReminderTime  = 30
	defaultTheme         = "light"
)

type UpdatePreferencesRequest struct {
	WorkDayStart           string `json:"workDayStart" validate:"required,clocktime"`
	WorkDayEnd             string `json:"workDayEnd" validate:"required,clocktime"`
	IncludeWeekends        bool   `json:"includeWeekends"`
	DefaultEventDuration   int    `json:"defaultEventDuration" validate:"min=5,max=480"`
	BufferTimeBeforeEvents int    `json:"bufferTimeBeforeEvents" validate:"min=0,max=120"`
	BufferTimeAfterEvents  int    `json:"bufferTimeAfterEvents" validate:"min=0,max=120"`
	DefaultReminderTime    int    `json:"defaultReminderTime" validate:"min=0,max=1440"`
	Theme                  string `json:"theme" validate:"omitempty,oneof=light dark"`
	NotificationEnabled    bool   `json:"notificationEnabled"`
	EmailNotifications     bool   `json:"emailNotifications"`
}

type PreferenceResponse struct {
	UserID                 int64  `json:"userId"`
	WorkDayStart           string `json:"workDayStart"`
	WorkDayEnd             string `json:"workDayEnd"`
	IncludeWeekends        bool   `json:"includeWeekends"`
	DefaultEventDuration   int    `json:"defaultEventDuration"`
	BufferTimeBeforeEvents int    `json:"bufferTimeBeforeEvents"`
	BufferTimeAfterEvents  int    `json:"bufferTimeAfterEvents"`
	DefaultReminderTime    int    `json:"defaultReminderTime"`
	Theme                  string `json:"theme"`
	NotificationEnabled    bool   `json:"notificationEnabled"`
	EmailNotifications     bool   `json:"emailNotifications"`
	CreatedAt              string `json:"createdAt"`
	UpdatedAt              string `json:"updatedAt"`
}

type DefaultPreferenceService struct {
	PreferenceRepo PreferenceRepository
	Validate       *validator.Validate
}

func NewPreferenceService(prefRepo PreferenceRepository, validate *validator.Validate) *DefaultPreferenceService {
	return &DefaultPreferenceService{PreferenceRepo: prefRepo, Validate: validate}
}

// GetOrCreate returns the user's preference row, synthesizing and
// persisting defaults on first access. It satisfies the conflict engine's
// PreferenceSource.
func (p *DefaultPreferenceService) GetOrCreate(userID int64) (*entity.UserPreference, error) {
	pref, err := p.PreferenceRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if pref != nil {
		return pref, nil
	}

	now := utils.NowUTC()
	pref = &entity.UserPreference{
		UserID:                 userID,
		WorkDayStart:           defaultWorkDayStart,
		WorkDayEnd:             defaultWorkDayEnd,
		IncludeWeekends:        false,
		DefaultEventDuration:   defaultEventDuration,
		BufferTimeBeforeEvents: defaultBufferMinutes,
		BufferTimeAfterEvents:  defaultBufferMinutes,
		DefaultReminderTime:    defaultReminderTime,
		Theme:                  defaultTheme,
		NotificationEnabled:    true,
		EmailNotifications:     true,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := p.PreferenceRepo.Save(pref); err != nil {
		return nil, err
	}
	log.Infof("created default preferences for user %d", userID)
	return pref, nil
}

func (p *DefaultPreferenceService) GetPreferences(userID int64) (*PreferenceResponse, apierror.ErrorResponse) {
	pref, err := p.GetOrCreate(userID)
	if err != nil {
		log.Errorf("failed to load preferences for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}
	return toPreferenceResponse(pref), nil
}

func (p *DefaultPreferenceService) UpdatePreferences(req *UpdatePreferencesRequest, userID int64) (*PreferenceResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := p.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	ws, _ := conflict.ParseClock(req.WorkDayStart)
	we, _ := conflict.ParseClock(req.WorkDayEnd)
	if ws >= we {
		return nil, apierror.InvalidWorkDayError
	}

	pref, err := p.GetOrCreate(userID)
	if err != nil {
		log.Errorf("failed to load preferences for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	pref.WorkDayStart = req.WorkDayStart
	pref.WorkDayEnd = req.WorkDayEnd
	pref.IncludeWeekends = req.IncludeWeekends
	pref.DefaultEventDuration = req.DefaultEventDuration
	pref.BufferTimeBeforeEvents = req.BufferTimeBeforeEvents
	pref.BufferTimeAfterEvents = req.BufferTimeAfterEvents
	pref.DefaultReminderTime = req.DefaultReminderTime
	if req.Theme != "" {
		pref.Theme = req.Theme
	}
	pref.NotificationEnabled = req.NotificationEnabled
	pref.EmailNotifications = req.EmailNotifications
	pref.UpdatedAt = utils.NowUTC()

	if err := p.PreferenceRepo.Save(pref); err != nil {
		log.Errorf("failed to save preferences for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}
	return toPreferenceResponse(pref), nil
}

func toPreferenceResponse(pref *entity.UserPreference) *PreferenceResponse {
	return &PreferenceResponse{
		UserID:                 pref.UserID,
		WorkDayStart:           pref.WorkDayStart,
		WorkDayEnd:             pref.WorkDayEnd,
		IncludeWeekends:        pref.IncludeWeekends,
		DefaultEventDuration:   pref.DefaultEventDuration,
		BufferTimeBeforeEvents: pref.BufferTimeBeforeEvents,
		BufferTimeAfterEvents:  pref.BufferTimeAfterEvents,
		DefaultReminderTime:    pref.DefaultReminderTime,
		Theme:                  pref.Theme,
		NotificationEnabled:    pref.NotificationEnabled,
		EmailNotifications:     pref.EmailNotifications,
		CreatedAt:              utils.FormatEpoch(pref.CreatedAt),
		UpdatedAt:              utils.FormatEpoch(pref.UpdatedAt),
	}
}
