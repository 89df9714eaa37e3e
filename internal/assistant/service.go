// Package assistant handles one natural-language meeting request end to
// end: classify the message, resolve the meetings it refers to, apply
// at most one mutation, and render the reply.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/strelka-labs/meeting-assistant/internal/datequery"
	"github.com/strelka-labs/meeting-assistant/internal/geocode"
	"github.com/strelka-labs/meeting-assistant/internal/intent"
	"github.com/strelka-labs/meeting-assistant/internal/model"
	"github.com/strelka-labs/meeting-assistant/internal/ownerlock"
	"github.com/strelka-labs/meeting-assistant/internal/query"
	"github.com/strelka-labs/meeting-assistant/internal/store"
)

const defaultDurationMinutes = 30

// Service wires the classifier, store, geocoder and resolution policies
// together. All dependencies are passed in explicitly; the caller owns
// their lifecycles.
type Service struct {
	meetings   store.Meetings
	classifier intent.Classifier
	geocoder   geocode.Geocoder // nil disables geocoding
	routing    *query.RoutingLookup
	locks      *ownerlock.Keyed
	locations  *LocationRegistry
	log        zerolog.Logger

	now func() time.Time
}

func NewService(s store.Store, classifier intent.Classifier, geocoder geocode.Geocoder, log zerolog.Logger) *Service {
	meetings := s.Meetings()
	return &Service{
		meetings:   meetings,
		classifier: classifier,
		geocoder:   geocoder,
		routing:    query.NewRoutingLookup(meetings),
		locks:      ownerlock.New(),
		locations:  NewLocationRegistry(),
		log:        log,
		now:        time.Now,
	}
}

// HandleMessage processes one message and always returns a reply.
// External failures recover to a generic apology and are never
// propagated or retried.
func (s *Service) HandleMessage(ctx context.Context, ownerID, senderName, text string) string {
	name := fallbackName(senderName)
	now := s.now().UTC()

	in, err := s.classifier.Classify(ctx, text, now)
	if err != nil {
		s.log.Warn().Err(err).Str("owner", ownerID).Msg("intent classification failed")
		return clarifyReply(name)
	}

	unlock := s.locks.Lock(ownerID)
	defer unlock()

	reply, err := s.dispatch(ctx, ownerID, name, in, now)
	if err != nil {
		s.log.Error().Stack().Err(err).Str("owner", ownerID).Str("action", in.Action).Msg("request failed")
		return apologyReply(name)
	}
	return reply
}

// ReportLocation remembers the owner's position for route replies.
func (s *Service) ReportLocation(ownerID string, lat, lon float64) string {
	s.locations.Set(ownerID, geocode.Point{Lat: lat, Lon: lon})
	return "📍 Ваше местоположение сохранено! Теперь маршруты будут от вас."
}

// CreateMeeting inserts a meeting directly, bypassing classification.
// Used by the REST surface.
func (s *Service) CreateMeeting(ctx context.Context, m *model.Meeting) (*model.Meeting, error) {
	if m.Title == "" || m.StartTime.IsZero() {
		return nil, fmt.Errorf("%w: title and startTime are required", model.ErrValidation)
	}
	if m.DurationMinutes <= 0 {
		m.DurationMinutes = defaultDurationMinutes
	}
	return s.meetings.Create(ctx, m)
}

// ListMeetings runs the smart filter directly. Used by the REST surface.
func (s *Service) ListMeetings(ctx context.Context, ownerID, rawText string, timeMin, timeMax *time.Time) ([]*model.Meeting, error) {
	return query.Search(ctx, s.meetings, ownerID, rawText, timeMin, timeMax, s.now().UTC())
}

func (s *Service) dispatch(ctx context.Context, ownerID, name string, in *intent.Intent, now time.Time) (string, error) {
	switch in.Action {
	case intent.ActionCreate:
		return s.create(ctx, ownerID, name, in)
	case intent.ActionList:
		return s.list(ctx, ownerID, name, in, now)
	case intent.ActionRoute, intent.ActionGetLocation:
		return s.route(ctx, ownerID, name, in, now)
	case intent.ActionUpdateLocation:
		return s.updateLocation(ctx, ownerID, name, in, now)
	case intent.ActionUpdateSummary:
		return s.updateSummary(ctx, ownerID, name, in, now)
	default:
		return clarifyReply(name), nil
	}
}

func (s *Service) create(ctx context.Context, ownerID, name string, in *intent.Intent) (string, error) {
	if in.Datetime == "" {
		return fmt.Sprintf("%s, укажите время.", name), nil
	}
	start, err := parseDatetime(in.Datetime)
	if err != nil {
		s.log.Warn().Err(err).Str("datetime", in.Datetime).Msg("classifier produced unparseable datetime")
		return clarifyReply(name), nil
	}

	title := in.Summary
	if title == "" {
		title = "Встреча"
	}
	duration := in.DurationMinutes
	if duration <= 0 {
		duration = defaultDurationMinutes
	}
	var location *string
	if in.Location != "" {
		location = &in.Location
	}

	created, err := s.meetings.Create(ctx, &model.Meeting{
		OwnerID:         ownerID,
		Title:           title,
		StartTime:       start,
		DurationMinutes: duration,
		Location:        location,
	})
	if err != nil {
		return "", err
	}
	return createdReply(name, created), nil
}

func (s *Service) list(ctx context.Context, ownerID, name string, in *intent.Intent, now time.Time) (string, error) {
	// Default window: from now onwards.
	timeMin := &now
	var timeMax *time.Time
	period := "в ближайшее время"

	if in.DateFilter != "" {
		if r, ok := datequery.MonthRange(in.DateFilter, now); ok {
			timeMin, timeMax = &r.Start, &r.End
			period = monthPeriodLabel(in.DateFilter)
		}
	}

	items, err := query.Search(ctx, s.meetings, ownerID, in.Query, timeMin, timeMax, now)
	if err != nil {
		return "", err
	}
	return scheduleReply(name, period, items), nil
}

func (s *Service) route(ctx context.Context, ownerID, name string, in *intent.Intent, now time.Time) (string, error) {
	q := in.Query
	if q == "" {
		q = in.Summary
	}
	if q == "" {
		return fmt.Sprintf("%s, уточните встречу.", name), nil
	}

	m, err := s.routing.Resolve(ctx, ownerID, q, now)
	if errors.Is(err, model.ErrNotFound) {
		return notFoundReply(q), nil
	}
	if err != nil {
		return "", err
	}
	return s.routeReply(ctx, ownerID, name, m), nil
}

// routeReply renders the destination with the best link available:
// a full route when geocoding succeeded and the owner's position is
// known, otherwise a destination-only link, otherwise a plain address
// search link. Geocoder failures degrade, they do not fail the request.
func (s *Service) routeReply(ctx context.Context, ownerID, name string, m *model.Meeting) string {
	if m.Location == nil || *m.Location == "" {
		return fmt.Sprintf("У встречи «%s» адрес не указан. Добавьте: «Добавь адрес ... к встрече с ...»", m.Title)
	}
	dest := *m.Location

	if s.geocoder != nil {
		p, err := s.geocoder.Geocode(ctx, dest)
		if err == nil {
			if from, ok := s.locations.Get(ownerID); ok {
				return fmt.Sprintf("Готово, %s! 🗺️\nВстреча «%s»\n📍 %s\n🚀 Построить маршрут от вас: %s",
					name, m.Title, dest, geocode.RouteLink(from, p))
			}
			return fmt.Sprintf("Конечно, %s! 🚗\nВстреча «%s»\n📍 %s\n🚀 Открыть навигатор: %s\n\n💡 Отправьте геопозицию, и маршрут будет от вас!",
				name, m.Title, dest, geocode.PointLink(p))
		}
		if !errors.Is(err, model.ErrNotFound) {
			s.log.Warn().Err(err).Str("address", dest).Msg("geocoding failed")
		}
	}
	return fmt.Sprintf("📍 %s\n🚗 Открыть в навигаторе: %s", dest, geocode.AddressLink(dest))
}

func (s *Service) updateLocation(ctx context.Context, ownerID, name string, in *intent.Intent, now time.Time) (string, error) {
	if in.Query == "" || in.Location == "" {
		return fmt.Sprintf("%s, уточните встречу и адрес.", name), nil
	}

	candidates, err := query.Search(ctx, s.meetings, ownerID, in.Query, nil, nil, now)
	if err != nil {
		return "", err
	}
	switch res := query.ResolveUnique(candidates); res.Outcome {
	case query.OutcomeUnique:
		if err := s.meetings.UpdateLocation(ctx, ownerID, res.Meeting.Title, res.Meeting.StartTime, in.Location); err != nil {
			return "", err
		}
		return fmt.Sprintf("✅ Адрес обновлён:\n📍 %s", in.Location), nil
	case query.OutcomeAmbiguous:
		return ambiguousReply(res.Candidates), nil
	default:
		return notFoundReply(in.Query), nil
	}
}

func (s *Service) updateSummary(ctx context.Context, ownerID, name string, in *intent.Intent, now time.Time) (string, error) {
	if in.Query == "" || in.NewSummary == "" {
		return fmt.Sprintf("%s, уточните какую встречу и новое название.", name), nil
	}

	candidates, err := query.Search(ctx, s.meetings, ownerID, in.Query, nil, nil, now)
	if err != nil {
		return "", err
	}
	switch res := query.ResolveUnique(candidates); res.Outcome {
	case query.OutcomeUnique:
		if err := s.meetings.UpdateTitle(ctx, ownerID, res.Meeting.Title, res.Meeting.StartTime, in.NewSummary); err != nil {
			return "", err
		}
		return fmt.Sprintf("✅ Название встречи обновлено на «%s»", in.NewSummary), nil
	case query.OutcomeAmbiguous:
		return ambiguousReply(res.Candidates), nil
	default:
		return notFoundReply(in.Query), nil
	}
}

// parseDatetime accepts the classifier's bare ISO form and RFC3339.
// Times without an offset are taken as UTC.
func parseDatetime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
