package service

import (
	"context"
	"fmt"
	"time"

	"steam-recs-be/internal/constant"
	"steam-recs-be/internal/dto"
	"steam-recs-be/internal/pkg/logger"
	"steam-recs-be/internal/repository/unitofwork"
	"steam-recs-be/pkg/events"
	pktNats "steam-recs-be/pkg/nats"
	"steam-recs-be/pkg/recommend"

	"github.com/google/uuid"
)

type IPreferenceService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GeneratePreferenceRequest) (*dto.GeneratePreferenceResponse, error)
	ShowProfile(ctx context.Context, userId uuid.UUID) (*dto.ShowProfileResponse, error)
}

type preferenceService struct {
	uowFactory     unitofwork.RepositoryFactory
	entitlements   EntitlementChecker
	vectorCache    *VectorCache
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewPreferenceService(
	uowFactory unitofwork.RepositoryFactory,
	entitlements EntitlementChecker,
	vectorCache *VectorCache,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IPreferenceService {
	return &preferenceService{
		uowFactory:     uowFactory,
		entitlements:   entitlements,
		vectorCache:    vectorCache,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// Generate rebuilds the user's preference vector from a library snapshot.
// The pipeline: weight every game by playtime/recency/quality, keep the
// top-N, resolve embeddings, down-weight overrepresented genres and
// franchises, average, normalize, persist. The learned vector is untouched.
func (s *preferenceService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GeneratePreferenceRequest) (*dto.GeneratePreferenceResponse, error) {
	if err := s.entitlements.CanGeneratePreference(ctx, userId); err != nil {
		return nil, err
	}

	opts := s.buildOptions(req)
	entries := make([]recommend.LibraryEntry, 0, len(req.Games))
	for _, g := range req.Games {
		entries = append(entries, recommend.LibraryEntry{
			GameID:             g.SteamAppId,
			PlaytimeMinutes:    g.PlaytimeMinutes,
			LastPlayed:         g.LastPlayed,
			AchievementsEarned: g.AchievementsEarned,
			AchievementsTotal:  g.AchievementsTotal,
			Genres:             g.Genres,
			Tags:               g.Tags,
			AvgCompletionHours: g.AvgCompletionHours,
		})
	}

	candidates, stats := recommend.SelectCandidates(entries, time.Now(), opts)
	if len(candidates) == 0 {
		s.logger.Warn("PreferenceService", "No candidates after playtime filter", map[string]interface{}{
			"user_id": userId,
			"games":   len(req.Games),
			"skipped": stats.Skipped,
		})
		return &dto.GeneratePreferenceResponse{
			Status:       constant.StatusInsufficientData,
			GamesSkipped: stats.Skipped,
		}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	appIds := make([]string, 0, len(candidates))
	for _, c := range candidates {
		appIds = append(appIds, c.Entry.GameID)
	}
	embeddings, err := uow.GameEmbeddingRepository().FindBySteamAppIds(ctx, appIds)
	if err != nil {
		return nil, err
	}

	// Games without a catalog embedding contribute nothing; they are
	// counted so the caller can see how much signal was dropped.
	missing := 0
	weights := make(map[string]float64, len(candidates))
	resolved := make([]recommend.ScoredEntry, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := embeddings[c.Entry.GameID]; !ok {
			missing++
			continue
		}
		weights[c.Entry.GameID] = c.Weight
		resolved = append(resolved, c)
	}
	if len(resolved) == 0 {
		s.logger.Warn("PreferenceService", "No candidate has a stored embedding", map[string]interface{}{
			"user_id":    userId,
			"candidates": len(candidates),
		})
		return &dto.GeneratePreferenceResponse{
			Status:             constant.StatusInsufficientData,
			GamesSkipped:       stats.Skipped,
			GamesMissingVector: missing,
		}, nil
	}

	if opts.EnableGenreDiversification {
		weightedGames := make([]recommend.WeightedGame, 0, len(resolved))
		for _, c := range resolved {
			weightedGames = append(weightedGames, recommend.WeightedGame{
				GameID: c.Entry.GameID,
				Weight: c.Weight,
				Genres: c.Entry.Genres,
				Tags:   c.Entry.Tags,
			})
		}
		weights = recommend.ApplyDiversity(weightedGames)
	}

	items := make([]recommend.WeightedEmbedding, 0, len(resolved))
	var totalPlaytimeHours float64
	for _, c := range resolved {
		items = append(items, recommend.WeightedEmbedding{
			GameID: c.Entry.GameID,
			Weight: weights[c.Entry.GameID],
			Vector: embeddings[c.Entry.GameID].EmbeddingValue,
		})
		totalPlaytimeHours += c.Entry.PlaytimeHours()
	}

	vector, totalWeight := recommend.WeightedAverage(items)
	if vector == nil || totalWeight == 0 {
		return &dto.GeneratePreferenceResponse{
			Status:             constant.StatusInsufficientData,
			GamesSkipped:       stats.Skipped,
			GamesMissingVector: missing,
		}, nil
	}
	vector = recommend.Normalize(vector)

	err = uow.UserProfileRepository().SavePreferenceVector(ctx, userId, vector, len(resolved), totalPlaytimeHours)
	if err != nil {
		return nil, err
	}

	s.vectorCache.Invalidate(userId)

	s.logger.Info("PreferenceService", "Preference vector rebuilt", map[string]interface{}{
		"user_id":        userId,
		"games_analyzed": len(resolved),
		"games_skipped":  stats.Skipped,
		"missing_vector": missing,
		"total_weight":   totalWeight,
		"avg_hours":      stats.AvgHours,
		"dimensions":     len(vector),
	})

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeProfileRebuilt,
			Data: map[string]interface{}{
				"user_id":        userId,
				"games_analyzed": len(resolved),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("PreferenceService", fmt.Sprintf("Failed to publish %s event", events.TypeProfileRebuilt), map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.GeneratePreferenceResponse{
		Status:             constant.StatusOk,
		GamesAnalyzed:      len(resolved),
		GamesSkipped:       stats.Skipped,
		GamesMissingVector: missing,
		TotalPlaytimeHours: totalPlaytimeHours,
		TotalWeight:        totalWeight,
		MinPlaytimeHours:   stats.MinHours,
		MaxPlaytimeHours:   stats.MaxHours,
		AvgPlaytimeHours:   stats.AvgHours,
		VectorDimensions:   len(vector),
	}, nil
}

func (s *preferenceService) ShowProfile(ctx context.Context, userId uuid.UUID) (*dto.ShowProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.UserProfileRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	return &dto.ShowProfileResponse{
		HasPreferenceVector: len(profile.PreferenceVector) > 0,
		HasLearnedVector:    len(profile.LearnedVector) > 0,
		GamesAnalyzed:       profile.GamesAnalyzed,
		TotalPlaytimeHours:  profile.TotalPlaytimeHours,
		UpdatedAt:           profile.UpdatedAt,
	}, nil
}

func (s *preferenceService) buildOptions(req *dto.GeneratePreferenceRequest) recommend.Options {
	opts := recommend.DefaultOptions()
	if req.RecencyDecayMonths > 0 {
		opts.RecencyDecayMonths = req.RecencyDecayMonths
	}
	if req.MinPlaytimeHours > 0 {
		opts.MinPlaytimeHours = req.MinPlaytimeHours
	}
	if req.MaxGamesToInclude > 0 {
		opts.MaxGamesToInclude = req.MaxGamesToInclude
	}
	if req.DisableDiversity {
		opts.EnableGenreDiversification = false
	}
	if req.DisableQualityWeight {
		opts.EnableQualityWeighting = false
	}
	return opts
}
