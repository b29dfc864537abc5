package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"skill-directory/internal/domain"
	"skill-directory/internal/domain/skill"
	"skill-directory/internal/domain/user"
	"skill-directory/internal/repository/repotest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu      sync.Mutex
	created []skill.UserSkill
	deleted []uuid.UUID
}

func (n *recordingNotifier) UserSkillCreated(us skill.UserSkill) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, us)
}

func (n *recordingNotifier) UserSkillDeleted(_ uuid.UUID, id uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.deleted = append(n.deleted, id)
}

func seedUserAndSkill(t *testing.T, store *repotest.Store, username, skillName string) (user.User, skill.Skill) {
	t.Helper()
	ctx := context.Background()
	u, err := store.Users().Create(ctx, user.User{ID: uuid.New(), Username: username, PasswordHash: "x"})
	require.NoError(t, err)
	sk, err := store.Skills().CreateSkill(ctx, skillName)
	require.NoError(t, err)
	return u, sk
}

func TestUserSkillAssignListUnassign(t *testing.T) {
	store := repotest.NewStore()
	notifier := &recordingNotifier{}
	uc := NewUserSkillUsecase(store.UserSkills(), notifier)
	ctx := context.Background()
	moe, juggling := seedUserAndSkill(t, store, "moe", "juggling")

	created, err := uc.AssignSkill(ctx, moe.ID, juggling.ID)
	require.NoError(t, err)
	assert.Equal(t, moe.ID, created.UserID)
	assert.Equal(t, juggling.ID, created.SkillID)
	assert.Equal(t, "juggling", created.SkillName)

	items, err := uc.ListUserSkills(ctx, moe.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)

	require.NoError(t, uc.UnassignSkill(ctx, moe.ID, created.ID))
	items, err = uc.ListUserSkills(ctx, moe.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.Len(t, notifier.created, 1)
	assert.Equal(t, []uuid.UUID{created.ID}, notifier.deleted)
}

func TestUserSkillAssignDuplicate(t *testing.T) {
	store := repotest.NewStore()
	uc := NewUserSkillUsecase(store.UserSkills(), nil)
	ctx := context.Background()
	moe, juggling := seedUserAndSkill(t, store, "moe", "juggling")

	_, err := uc.AssignSkill(ctx, moe.ID, juggling.ID)
	require.NoError(t, err)
	_, err = uc.AssignSkill(ctx, moe.ID, juggling.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, store.AssignmentCount())
}

func TestUserSkillAssignConcurrentExactlyOneWins(t *testing.T) {
	store := repotest.NewStore()
	uc := NewUserSkillUsecase(store.UserSkills(), nil)
	moe, juggling := seedUserAndSkill(t, store, "moe", "juggling")

	const n = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := uc.AssignSkill(context.Background(), moe.ID, juggling.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, 1, store.AssignmentCount())
}

func TestUserSkillAssignMissingReference(t *testing.T) {
	store := repotest.NewStore()
	uc := NewUserSkillUsecase(store.UserSkills(), nil)
	ctx := context.Background()
	moe, juggling := seedUserAndSkill(t, store, "moe", "juggling")

	_, err := uc.AssignSkill(ctx, moe.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.AssignSkill(ctx, uuid.New(), juggling.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, store.AssignmentCount())

	_, err = uc.AssignSkill(ctx, uuid.Nil, juggling.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserSkillUnassignScopedToUser(t *testing.T) {
	store := repotest.NewStore()
	uc := NewUserSkillUsecase(store.UserSkills(), nil)
	ctx := context.Background()
	moe, juggling := seedUserAndSkill(t, store, "moe", "juggling")
	lucy, err := store.Users().Create(ctx, user.User{ID: uuid.New(), Username: "lucy"})
	require.NoError(t, err)

	created, err := uc.AssignSkill(ctx, moe.ID, juggling.ID)
	require.NoError(t, err)

	require.NoError(t, uc.UnassignSkill(ctx, lucy.ID, created.ID))
	assert.Equal(t, 1, store.AssignmentCount())

	require.NoError(t, uc.UnassignSkill(ctx, moe.ID, uuid.New()))
	assert.Equal(t, 1, store.AssignmentCount())
}

func TestUserSkillStorageErrorIsInternal(t *testing.T) {
	store := repotest.NewStore()
	uc := NewUserSkillUsecase(store.UserSkills(), nil)
	store.Err = errors.New("boom")

	_, err := uc.ListUserSkills(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrInternal)
	_, err = uc.AssignSkill(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrInternal)
	err = uc.UnassignSkill(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrInternal)
}
