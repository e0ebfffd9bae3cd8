package service

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"calassist/cmd/internal/conflict"
	"calassist/cmd/internal/utils"
	"calassist/cmd/internal/utils/apierror"
)

// ConflictEngine is the decision core this service fronts.
type ConflictEngine interface {
	CheckConflict(req *conflict.CheckRequest, userID int64) (*conflict.CheckResult, error)
	SmartSuggestions(req *conflict.SuggestionsRequest, userID int64) (*conflict.SuggestionsResult, error)
}

const defaultSuggestionDuration = 60 // minutes

type ConflictCheckRequest struct {
	EventTitle   string `json:"eventTitle" validate:"max=128"`
	ProposedDate string `json:"proposedDate" validate:"required,dateonly"`
	StartTime    string `json:"startTime" validate:"required,clocktime"`
	EndTime      string `json:"endTime" validate:"required,clocktime"`
	Location     string `json:"location" validate:"max=256"`
	Description  string `json:"description" validate:"max=1024"`
}

type ConflictCheckResponse struct {
	HasConflict       bool                      `json:"hasConflict"`
	ConflictingEvents []*EventResponse          `json:"conflictingEvents"`
	Severity          string                    `json:"severity"`
	Suggestions       []conflict.TimeSuggestion `json:"suggestions"`
	Message           string                    `json:"message"`
}

type SmartSuggestionsRequest struct {
	Date      string `json:"date" validate:"required,dateonly"`
	Duration  int    `json:"duration" validate:"min=5,max=480"`
	EventType string `json:"eventType" validate:"max=32"`
	Location  string `json:"location" validate:"max=256"`
}

type SmartSuggestionsResponse struct {
	Date            string                    `json:"date"`
	OptimalSlots    []conflict.TimeSuggestion `json:"optimalSlots"`
	UserPreferences *PreferenceResponse       `json:"userPreferences"`
	Message         string                    `json:"message"`
}

type DefaultConflictService struct {
	Engine   ConflictEngine
	Validate *validator.Validate
}

func NewConflictService(engine ConflictEngine, validate *validator.Validate) *DefaultConflictService {
	return &DefaultConflictService{Engine: engine, Validate: validate}
}

func (s *DefaultConflictService) CheckConflict(req *ConflictCheckRequest, userID int64) (*ConflictCheckResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	result, err := s.Engine.CheckConflict(&conflict.CheckRequest{
		EventTitle:   req.EventTitle,
		ProposedDate: req.ProposedDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Location:     req.Location,
		Description:  req.Description,
	}, userID)
	if err != nil {
		// The engine only errors on malformed input.
		return nil, apierror.NewSimple(http.StatusBadRequest, err.Error())
	}

	conflicting := make([]*EventResponse, len(result.ConflictingEvents))
	for i, ev := range result.ConflictingEvents {
		conflicting[i] = toEventResponse(ev)
	}

	return &ConflictCheckResponse{
		HasConflict:       result.HasConflict,
		ConflictingEvents: conflicting,
		Severity:          string(result.Severity),
		Suggestions:       result.Suggestions,
		Message:           result.Message,
	}, nil
}

func (s *DefaultConflictService) SmartSuggestions(req *SmartSuggestionsRequest, userID int64) (*SmartSuggestionsResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if req.Duration == 0 {
		req.Duration = defaultSuggestionDuration
	}
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	result, err := s.Engine.SmartSuggestions(&conflict.SuggestionsRequest{
		Date:      req.Date,
		Duration:  req.Duration,
		EventType: req.EventType,
		Location:  req.Location,
	}, userID)
	if err != nil {
		log.Errorf("failed to generate suggestions for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	return &SmartSuggestionsResponse{
		Date:            result.Date,
		OptimalSlots:    result.OptimalSlots,
		UserPreferences: toPreferenceResponse(result.Preferences),
		Message:         result.Message,
	}, nil
}
