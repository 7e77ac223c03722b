package memory

import (
	"context"

	"steam-recs-be/internal/repository/contract"
	"steam-recs-be/internal/repository/unitofwork"
)

// UnitOfWork wires the in-memory repositories behind the transactional
// interface. Begin/Commit/Rollback are no-ops: tests exercise service
// orchestration, not transaction semantics.
type UnitOfWork struct {
	Games          *GameRepository
	GameEmbeddings *GameEmbeddingRepository
	UserProfiles   *UserProfileRepository
	GameFeedbacks  *GameFeedbackRepository
}

func NewUnitOfWork() *UnitOfWork {
	games := NewGameRepository()
	return &UnitOfWork{
		Games:          games,
		GameEmbeddings: NewGameEmbeddingRepository(games),
		UserProfiles:   NewUserProfileRepository(),
		GameFeedbacks:  NewGameFeedbackRepository(),
	}
}

var _ unitofwork.UnitOfWork = (*UnitOfWork)(nil)
var _ unitofwork.RepositoryFactory = (*UnitOfWorkFactory)(nil)

func (u *UnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *UnitOfWork) Commit() error                   { return nil }
func (u *UnitOfWork) Rollback() error                 { return nil }

func (u *UnitOfWork) GameRepository() contract.GameRepository {
	return u.Games
}

func (u *UnitOfWork) GameEmbeddingRepository() contract.GameEmbeddingRepository {
	return u.GameEmbeddings
}

func (u *UnitOfWork) UserProfileRepository() contract.UserProfileRepository {
	return u.UserProfiles
}

func (u *UnitOfWork) GameFeedbackRepository() contract.GameFeedbackRepository {
	return u.GameFeedbacks
}

// UnitOfWorkFactory always hands out the same shared UnitOfWork so a test
// can seed data through the same stores the service under test sees.
type UnitOfWorkFactory struct {
	UoW *UnitOfWork
}

func NewUnitOfWorkFactory() *UnitOfWorkFactory {
	return &UnitOfWorkFactory{UoW: NewUnitOfWork()}
}

func (f *UnitOfWorkFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.UoW
}
