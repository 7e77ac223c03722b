package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"steam-recs-be/internal/dto"
	"steam-recs-be/internal/entity"
	"steam-recs-be/internal/repository/specification"
	"steam-recs-be/internal/repository/unitofwork"
	"steam-recs-be/pkg/embedding"
	"steam-recs-be/pkg/events"
	pktNats "steam-recs-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedGameMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing game embedding for GameId: %s", payload.GameId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	game, err := uow.GameRepository().FindOne(ctx, specification.ByID{ID: payload.GameId})
	if err != nil {
		log.Printf("[ERROR] Failed to get game %s: %v", payload.GameId, err)
		msg.Nack()
		return
	}
	if game == nil {
		// Game was deleted before the message got picked up.
		log.Printf("[WARN] Game not found: %s", payload.GameId)
		msg.Ack()
		return
	}

	document := BuildGameDocument(game)

	res, err := cs.embeddingProvider.Generate(document, embedding.TaskDocument)
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for game %s: %v", payload.GameId, err)
		msg.Nack()
		return
	}

	newEmbedding := &entity.GameEmbedding{
		Id:             uuid.New(),
		Document:       document,
		EmbeddingValue: res.Embedding.Values,
		GameId:         game.Id,
		CreatedAt:      time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	// Replace whatever vector the game had before; one vector per game.
	if err := uow.GameEmbeddingRepository().DeleteByGameId(ctx, game.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embedding: %v", err)
		msg.Nack()
		return
	}

	if err := uow.GameEmbeddingRepository().Create(ctx, newEmbedding); err != nil {
		log.Printf("[ERROR] Failed to create embedding: %v", err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeGameEmbedded,
			Data: map[string]interface{}{
				"game_id": game.Id,
				"title":   game.Title,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish %s event: %v", events.TypeGameEmbedded, err)
		}
	}

	log.Printf("[SUCCESS] Game embedded: %s (%s)", game.Title, payload.GameId)
	msg.Ack()
}

// BuildGameDocument flattens a game's metadata into the text that gets
// embedded. Genres and tags carry most of the taste signal, so they are
// spelled out rather than left as raw arrays.
func BuildGameDocument(game *entity.Game) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", game.Title)
	if len(game.Genres) > 0 {
		fmt.Fprintf(&b, "Genres: %s\n", strings.Join(game.Genres, ", "))
	}
	if len(game.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(game.Tags, ", "))
	}
	if game.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", game.Description)
	}
	return b.String()
}
