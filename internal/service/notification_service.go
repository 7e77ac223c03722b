package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"steam-recs-be/internal/model"
	"steam-recs-be/internal/pkg/logger"
	"steam-recs-be/internal/repository"
	"steam-recs-be/pkg/events"
	pktNats "steam-recs-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

type NotificationService struct {
	repo       repository.NotificationRepository
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(repo repository.NotificationRepository, sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		repo:       repo,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	subject := pktNats.SubjectPrefix + ".>"
	err := s.subscriber.Subscribe(subject, "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", fmt.Sprintf("Notification service started, listening to %s", subject), nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	s.logger.Info("NotificationService", fmt.Sprintf("Processing event: %s", event.EventType()), map[string]interface{}{"type": event.EventType()})

	title, message, ok := renderNotification(event)
	if !ok {
		// Unknown or internal-only event type; nothing to show the user.
		return nil
	}

	userID, ok := recipientFromPayload(event.Payload())
	if !ok {
		s.logger.Warn("NotificationService", fmt.Sprintf("No user_id in payload for event %s", event.EventType()), nil)
		return nil
	}

	notif := model.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		TypeCode:  event.EventType(),
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
		IsRead:    false,
	}
	if metaJSON, err := json.Marshal(event.Payload()); err == nil {
		notif.Metadata = datatypes.JSON(metaJSON)
	}

	if err := s.repo.CreateNotification(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", fmt.Sprintf("Error saving notification for user %s", userID), map[string]interface{}{"error": err})
		return err // NATS will retry
	}

	if s.delivery != nil {
		s.delivery.Send(userID, notif)
	}

	return nil
}

// renderNotification maps a domain event onto inbox copy. Events without an
// entry here stay off the user's inbox.
func renderNotification(event events.Event) (title, message string, ok bool) {
	payload := event.Payload()
	switch event.EventType() {
	case events.TypeProfileRebuilt:
		games := fmt.Sprintf("%v", payload["games_analyzed"])
		return "Taste profile updated",
			fmt.Sprintf("Your preference profile was rebuilt from %s games. Fresh recommendations are ready.", games),
			true
	case events.TypeFeedbackRecorded:
		gameTitle, _ := payload["game_title"].(string)
		feedbackType, _ := payload["feedback_type"].(string)
		if gameTitle == "" {
			gameTitle = "a game"
		}
		return "Feedback recorded",
			fmt.Sprintf("Your %q feedback on %s is now shaping your recommendations.", feedbackType, gameTitle),
			true
	default:
		return "", "", false
	}
}

func recipientFromPayload(payload map[string]interface{}) (uuid.UUID, bool) {
	uidStr, ok := payload["user_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	uid, err := uuid.Parse(uidStr)
	if err != nil {
		return uuid.Nil, false
	}
	return uid, true
}

// GetNotifications fetches notifications for a user.
func (s *NotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

// GetUnreadCount fetches unread count.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// MarkAsRead marks a notification as read.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
