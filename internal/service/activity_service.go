package service

import (
	"context"

	"afom-board-be/internal/board"
	"afom-board-be/internal/pkg/logger"
	"afom-board-be/internal/repository/unitofwork"
	"afom-board-be/pkg/events"
	pktNats "afom-board-be/pkg/nats"
)

const (
	activityModule  = "ActivityService"
	activityDurable = "workshop-activity-worker"
)

// EventSubscriber is satisfied by *nats.Subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, pattern string, durableName string, handler pktNats.EventHandler) error
}

// ActivityService stamps the session's last activity from board gesture events.
type ActivityService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber EventSubscriber
	logger     logger.ILogger
}

func NewActivityService(uowFactory unitofwork.RepositoryFactory, sub EventSubscriber, log logger.ILogger) *ActivityService {
	return &ActivityService{
		uowFactory: uowFactory,
		subscriber: sub,
		logger:     log,
	}
}

func (s *ActivityService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, events.WorkshopPrefix+">", activityDurable, s.HandleEvent); err != nil {
		s.logger.Error(activityModule, "Failed to start activity subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info(activityModule, "Activity service started", nil)
	return nil
}

func (s *ActivityService) HandleEvent(ctx context.Context, event events.Event) error {
	token, err := board.NormalizeSessionToken(events.String(event, events.KeySessionID))
	if err != nil {
		// nothing to stamp; acking is correct
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().TouchActivity(ctx, token, event.Timestamp()); err != nil {
		s.logger.Error(activityModule, "Failed to touch session activity", map[string]interface{}{
			"session_id": token,
			"type":       event.EventType(),
			"error":      err.Error(),
		})
		return err
	}
	return nil
}
