package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"calassist/cmd/internal/domain/entity"
	"calassist/cmd/internal/ical"
	"calassist/cmd/internal/utils"
	"calassist/cmd/internal/utils/apierror"
)

type EventRepository interface {
	FindByID(id int64) (*entity.CalendarEvent, error)
	FindByUserID(userID int64) ([]*entity.CalendarEvent, error)
	EventsBetween(userID, dayStart, dayEnd int64) ([]*entity.CalendarEvent, error)
	Save(ev *entity.CalendarEvent) error
}

type CreateEventRequest struct {
	Title       string `json:"title" validate:"required,max=128"`
	Date        string `json:"date" validate:"required,dateonly"`
	From        string `json:"from" validate:"required,clocktime"`
	To          string `json:"to" validate:"required,clocktime"`
	Description string `json:"description" validate:"max=1024"`
	Location    string `json:"location" validate:"max=256"`
	Timezone    string `json:"timezone" validate:"max=64"`
	EventType   string `json:"eventType" validate:"omitempty,oneof=MEETING APPOINTMENT TASK REMINDER PERSONAL OTHER"`
	Priority    string `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	AllDay      bool   `json:"allDay"`
}

type RescheduleEventRequest struct {
	Date string `json:"date" validate:"required,dateonly"`
	From string `json:"from" validate:"required,clocktime"`
	To   string `json:"to" validate:"required,clocktime"`
}

type EventResponse struct {
	ID          int64  `json:"id"`
	UID         string `json:"uid"`
	UserID      int64  `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	StartsAt    string `json:"startsAt"`
	EndsAt      string `json:"endsAt"`
	Timezone    string `json:"timezone,omitempty"`
	EventType   string `json:"eventType"`
	Priority    string `json:"priority"`
	AllDay      bool   `json:"allDay"`
	Status      string `json:"status"`
	Visibility  string `json:"visibility"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type DefaultEventService struct {
	EventRepo EventRepository
	Validate  *validator.Validate
}

func NewEventService(eventRepo EventRepository, validate *validator.Validate) *DefaultEventService {
	return &DefaultEventService{EventRepo: eventRepo, Validate: validate}
}

// CreateEvent books a new event. It does not re-run the conflict check:
// the engine is a decision aid and callers decide whether to book over a
// reported conflict.
func (s *DefaultEventService) CreateEvent(req *CreateEventRequest, userID int64) (*EventResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	startsAt, err := utils.EpochAt(req.Date, req.From)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}
	endsAt, err := utils.EpochAt(req.Date, req.To)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}
	if endsAt < startsAt {
		return nil, apierror.InvalidTimeRangeError
	}

	now := utils.NowUTC()
	ev := &entity.CalendarEvent{
		UID:         uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		Timezone:    orDefault(req.Timezone, "UTC"),
		EventType:   orDefault(req.EventType, entity.EventTypeMeeting),
		Priority:    orDefault(req.Priority, entity.PriorityMedium),
		AllDay:      req.AllDay,
		Status:      entity.StatusNotStarted,
		Visibility:  entity.VisibilityPrivate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.EventRepo.Save(ev); err != nil {
		log.Errorf("failed to save event for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}
	return toEventResponse(ev), nil
}

// GetEvents lists the user's events. With a date it returns the
// non-cancelled events of that day (the engine's read model); without, it
// returns everything including cancelled rows.
func (s *DefaultEventService) GetEvents(userID int64, date string) ([]*EventResponse, apierror.ErrorResponse) {
	var events []*entity.CalendarEvent
	var err error

	if date == "" {
		events, err = s.EventRepo.FindByUserID(userID)
	} else {
		var dayStart int64
		dayStart, err = utils.EpochAt(date, "00:00")
		if err != nil {
			return nil, apierror.NewInvalidParamTypeError("date", "YYYY-MM-DD")
		}
		events, err = s.EventRepo.EventsBetween(userID, dayStart, dayStart+24*60*60*1000)
	}

	if err != nil {
		log.Errorf("failed to find events for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*EventResponse, len(events))
	for i, ev := range events {
		resp[i] = toEventResponse(ev)
	}
	return resp, nil
}

func (s *DefaultEventService) GetEvent(id, userID int64) (*EventResponse, apierror.ErrorResponse) {
	ev, apierr := s.fetchOwned(id, userID)
	if apierr != nil {
		return nil, apierr
	}
	return toEventResponse(ev), nil
}

func (s *DefaultEventService) RescheduleEvent(id int64, req *RescheduleEventRequest, userID int64) (*EventResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	ev, apierr := s.fetchOwned(id, userID)
	if apierr != nil {
		return nil, apierr
	}
	if ev.Status == entity.StatusCancelled {
		return nil, apierror.NotFoundError
	}

	startsAt, err := utils.EpochAt(req.Date, req.From)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}
	endsAt, err := utils.EpochAt(req.Date, req.To)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}
	if endsAt < startsAt {
		return nil, apierror.InvalidTimeRangeError
	}

	ev.StartsAt = startsAt
	ev.EndsAt = endsAt
	ev.UpdatedAt = utils.NowUTC()

	if err := s.EventRepo.Save(ev); err != nil {
		log.Errorf("failed to reschedule event %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	return toEventResponse(ev), nil
}

// CancelEvent flips the event to CANCELLED. Rows are never deleted, so
// the audit trail keeps its references while the engine stops seeing the
// event.
func (s *DefaultEventService) CancelEvent(id, userID int64) apierror.ErrorResponse {
	ev, apierr := s.fetchOwned(id, userID)
	if apierr != nil {
		return apierr
	}
	if ev.Status == entity.StatusCancelled {
		return apierror.NotFoundError
	}

	ev.Status = entity.StatusCancelled
	ev.UpdatedAt = utils.NowUTC()

	if err := s.EventRepo.Save(ev); err != nil {
		log.Errorf("failed to cancel event %d: %v", id, err)
		return apierror.InternalServerError
	}
	return nil
}

// ExportCalendar renders the user's non-cancelled events as an iCalendar
// document.
func (s *DefaultEventService) ExportCalendar(userID int64) ([]byte, apierror.ErrorResponse) {
	events, err := s.EventRepo.FindByUserID(userID)
	if err != nil {
		log.Errorf("failed to find events for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	active := make([]*entity.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if ev.Status != entity.StatusCancelled {
			active = append(active, ev)
		}
	}

	data, err := ical.Encode(active)
	if err != nil {
		log.Errorf("failed to encode calendar for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}
	return data, nil
}

func (s *DefaultEventService) fetchOwned(id, userID int64) (*entity.CalendarEvent, apierror.ErrorResponse) {
	ev, err := s.EventRepo.FindByID(id)
	if err != nil {
		log.Errorf("failed to fetch event by id %d: %v", id, err)
		return nil, apierror.InternalServerError
	}
	if ev == nil || ev.UserID != userID {
		return nil, apierror.NotFoundError
	}
	return ev, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func toEventResponse(ev *entity.CalendarEvent) *EventResponse {
	return &EventResponse{
		ID:          ev.ID,
		UID:         ev.UID,
		UserID:      ev.UserID,
		Title:       ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		StartsAt:    utils.FormatEpoch(ev.StartsAt),
		EndsAt:      utils.FormatEpoch(ev.EndsAt),
		Timezone:    ev.Timezone,
		EventType:   ev.EventType,
		Priority:    ev.Priority,
		AllDay:      ev.AllDay,
		Status:      ev.Status,
		Visibility:  ev.Visibility,
		CreatedAt:   utils.FormatEpoch(ev.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(ev.UpdatedAt),
	}
}
