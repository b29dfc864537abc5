//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"skill-directory/internal/app"
	"skill-directory/internal/config"
	"skill-directory/internal/database"
	"skill-directory/internal/database/migration"
	dbpostgres "skill-directory/internal/database/postgres"
	"skill-directory/internal/database/seeder"
	"skill-directory/internal/domain"
	"skill-directory/internal/domain/user"
	"skill-directory/internal/infrastructure/persistence/postgres"
	"skill-directory/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"
)

func startPostgres(t *testing.T) database.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("skills"),
		tcpostgres.WithUsername("skills"),
		tcpostgres.WithPassword("skills"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := dbpostgres.ConnectDSN(ctx, dsn, config.DatabaseConfig{PoolMaxConns: 20})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migration.Runner{}.Run(ctx, db))
	return db
}

func createUserAndSkill(t *testing.T, db database.DB, username, skillName string) (user.User, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	u, err := postgres.NewUserRepository(db).Create(ctx, user.User{ID: uuid.New(), Username: username, PasswordHash: "x"})
	require.NoError(t, err)
	s, err := repository.NewPostgresSkillRepository(db).CreateSkill(ctx, skillName)
	require.NoError(t, err)
	return u, s.ID
}

func countAssignments(t *testing.T, db database.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(context.Background(), `SELECT count(*) FROM user_skills`).Scan(&n))
	return n
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	require.NoError(t, migration.Runner{}.Run(ctx, db))

	var applied int
	require.NoError(t, db.QueryRow(ctx, `SELECT count(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 1, applied)
}

func TestConcurrentAssignmentExactlyOneWins(t *testing.T) {
	db := startPostgres(t)
	repo := repository.NewPostgresUserSkillRepository(db)
	moe, juggling := createUserAndSkill(t, db, "moe", "juggling")

	const n = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
		others    []error
	)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := repo.Create(context.Background(), moe.ID, juggling)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrConflict):
				conflicts++
			default:
				others = append(others, err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Empty(t, others)
	assert.Equal(t, 1, successes)
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, 1, countAssignments(t, db))
}

func TestReferentialFailurePersistsNothing(t *testing.T) {
	db := startPostgres(t)
	repo := repository.NewPostgresUserSkillRepository(db)
	moe, juggling := createUserAndSkill(t, db, "moe", "juggling")
	ctx := context.Background()

	_, err := repo.Create(ctx, moe.ID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.Create(ctx, uuid.New(), juggling)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, countAssignments(t, db))

	require.NoError(t, repo.Delete(ctx, moe.ID, uuid.New()))
}

func TestUsernameUniqueness(t *testing.T) {
	db := startPostgres(t)
	users := postgres.NewUserRepository(db)
	ctx := context.Background()

	_, err := users.Create(ctx, user.User{ID: uuid.New(), Username: "lucy", PasswordHash: "x"})
	require.NoError(t, err)
	_, err = users.Create(ctx, user.User{ID: uuid.New(), Username: "lucy", PasswordHash: "y"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = users.Create(ctx, user.User{ID: uuid.New(), Username: "Lucy", PasswordHash: "y"})
	assert.NoError(t, err)
}

type bcryptMin struct{}

func (bcryptMin) Hash(p string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(p), bcrypt.MinCost)
	return string(b), err
}

func TestSeedThenEndToEnd(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	runner := seeder.Runner{Seeders: seeder.Defaults(bcryptMin{})}
	require.NoError(t, runner.Run(ctx, db))
	require.NoError(t, runner.Run(ctx, db))
	assert.Equal(t, len(seeder.DefaultUserSkills), countAssignments(t, db))

	cfg := config.Config{
		App:  config.AppConfig{AppName: "skill-directory-it"},
		JWT:  config.JWTConfig{Secret: "integration-secret"},
		Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost},
	}
	c, err := app.Build(cfg, log.New(io.Discard, "", 0), app.Repositories{
		Users:      postgres.NewUserRepository(db),
		Skills:     repository.NewPostgresSkillRepository(db),
		UserSkills: repository.NewPostgresUserSkillRepository(db),
	}, nil)
	require.NoError(t, err)
	c.DB = db
	a := app.New(c)

	do := func(method, path, token string, body any) (int, []byte) {
		var rdr io.Reader
		if body != nil {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			rdr = bytes.NewReader(b)
		}
		req := httptest.NewRequest(method, path, rdr)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", token)
		}
		resp, err := a.Fiber.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		out, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, out
	}

	status, body := do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "moe", "password": "moe_pw"})
	require.Equal(t, http.StatusOK, status, string(body))
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &login))

	status, body = do(http.MethodGet, "/api/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, status)
	var me struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &me))

	status, body = do(http.MethodGet, "/api/skills", "", nil)
	require.Equal(t, http.StatusOK, status)
	var skills []struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	}
	require.NoError(t, json.Unmarshal(body, &skills))
	var juggling uuid.UUID
	for _, s := range skills {
		if s.Name == "juggling" {
			juggling = s.ID
		}
	}
	require.NotEqual(t, uuid.Nil, juggling)

	path := "/api/users/" + me.ID.String() + "/userSkills"
	status, body = do(http.MethodPost, path, login.Token, map[string]string{"skill_id": juggling.String()})
	require.Equal(t, http.StatusCreated, status, string(body))
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &created))

	status, _ = do(http.MethodPost, path, login.Token, map[string]string{"skill_id": juggling.String()})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = do(http.MethodDelete, path+"/"+created.ID.String(), login.Token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = do(http.MethodGet, path, login.Token, nil)
	require.Equal(t, http.StatusOK, status)
	var remaining []struct {
		SkillID uuid.UUID `json:"skill_id"`
	}
	require.NoError(t, json.Unmarshal(body, &remaining))
	for _, r := range remaining {
		assert.NotEqual(t, juggling, r.SkillID)
	}

	status, body = do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
}
