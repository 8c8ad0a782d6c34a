package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"taskBoard/internal/logger"
	"taskBoard/internal/models"
	repo "taskBoard/internal/repository"
	"taskBoard/internal/repository/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestMain(m *testing.M) {
	logger.Init(true)
	os.Exit(m.Run())
}

// PostgresTestSuite для интеграционных тестов с PostgreSQL
type PostgresTestSuite struct {
	suite.Suite
	container  testcontainers.Container
	storage    *postgres.Storage
	ctx        context.Context
	connString string
}

// SetupSuite запускается один раз перед всеми тестами
func (s *PostgresTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)

	port, err := container.MappedPort(s.ctx, "5432")
	require.NoError(s.T(), err)

	s.connString = fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	s.storage, err = postgres.New(s.ctx, s.connString, 5, 1, time.Minute)
	require.NoError(s.T(), err)

	// схема накатывается встроенными миграциями
	require.NoError(s.T(), s.storage.Migrate())
}

// TearDownSuite очищает после всех тестов
func (s *PostgresTestSuite) TearDownSuite() {
	if s.storage != nil {
		s.storage.Close()
	}
	if s.container != nil {
		s.container.Terminate(s.ctx)
	}
}

// SetupTest очищает таблицы перед каждым тестом
func (s *PostgresTestSuite) SetupTest() {
	conn, err := pgx.Connect(s.ctx, s.connString)
	require.NoError(s.T(), err)
	defer conn.Close(s.ctx)

	// tasks первыми из-за внешних ключей
	for _, table := range []string{"tasks", "teams", "users"} {
		_, err = conn.Exec(s.ctx, "DELETE FROM "+table)
		require.NoError(s.T(), err)
	}
}

func (s *PostgresTestSuite) createUser(username string) *models.User {
	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(s.T(), s.storage.CreateUser(s.ctx, user))
	return user
}

func (s *PostgresTestSuite) createTeam(name string, members ...uuid.UUID) *models.Team {
	team := &models.Team{
		ID:      uuid.New(),
		Name:    name,
		Members: members,
	}
	require.NoError(s.T(), s.storage.CreateTeam(s.ctx, team))
	return team
}

func (s *PostgresTestSuite) createTask(userID uuid.UUID, title string, priority int) *models.Task {
	task := &models.Task{
		ID:        uuid.New(),
		Title:     title,
		Priority:  priority,
		Workspace: models.WorkspacePersonal,
		UserID:    userID,
	}
	require.NoError(s.T(), s.storage.Create(s.ctx, task))
	return task
}

// TestPostgresTestSuite запускает suite
func TestPostgresTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Пропускаем интеграционные тесты в коротком режиме")
	}
	suite.Run(t, new(PostgresTestSuite))
}

func (s *PostgresTestSuite) TestStorage_CreateAndGet() {
	user := s.createUser("alice")

	due := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	task := &models.Task{
		ID:          uuid.New(),
		Title:       "Test Task",
		Description: "Test Description",
		DueDate:     &due,
		Priority:    3,
		Workspace:   models.WorkspacePersonal,
		UserID:      user.ID,
	}

	err := s.storage.Create(s.ctx, task)
	require.NoError(s.T(), err)
	assert.False(s.T(), task.CreatedAt.IsZero())
	assert.NotZero(s.T(), task.Seq)

	got, err := s.storage.GetByID(s.ctx, task.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Test Task", got.Title)
	assert.Equal(s.T(), "Test Description", got.Description)
	assert.Equal(s.T(), 3, got.Priority)
	require.NotNil(s.T(), got.DueDate)
	assert.Equal(s.T(), due.Unix(), got.DueDate.Unix())

	_, err = s.storage.GetByID(s.ctx, uuid.New())
	assert.ErrorIs(s.T(), err, repo.ErrNotFound)
}

func (s *PostgresTestSuite) TestStorage_GetByUser_Order() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	s.createTask(alice.ID, "low", 1)
	s.createTask(alice.ID, "high", 5)
	s.createTask(alice.ID, "mid", 3)
	s.createTask(bob.ID, "foreign", 9)

	s.T().Run("insertion order", func(t *testing.T) {
		tasks, err := s.storage.GetByUser(s.ctx, alice.ID, models.SortNone)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, "low", tasks[0].Title)
		assert.Equal(t, "high", tasks[1].Title)
		assert.Equal(t, "mid", tasks[2].Title)
	})

	s.T().Run("priority descending", func(t *testing.T) {
		tasks, err := s.storage.GetByUser(s.ctx, alice.ID, models.SortPriority)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, 5, tasks[0].Priority)
		assert.Equal(t, 3, tasks[1].Priority)
		assert.Equal(t, 1, tasks[2].Priority)
	})

	s.T().Run("newest first", func(t *testing.T) {
		tasks, err := s.storage.GetByUser(s.ctx, alice.ID, models.SortDateAdded)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, "mid", tasks[0].Title)
		assert.Equal(t, "low", tasks[2].Title)
	})
}

func (s *PostgresTestSuite) TestStorage_GetByTeam() {
	alice := s.createUser("alice")
	team := s.createTeam("backend", alice.ID)

	for _, title := range []string{"one", "two"} {
		task := &models.Task{
			ID:        uuid.New(),
			Title:     title,
			Workspace: models.WorkspaceNone,
			UserID:    alice.ID,
			TeamID:    &team.ID,
		}
		require.NoError(s.T(), s.storage.Create(s.ctx, task))
	}
	s.createTask(alice.ID, "personal", 0)

	tasks, err := s.storage.GetByTeam(s.ctx, team.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), tasks, 2)
	assert.Equal(s.T(), "one", tasks[0].Title)
	assert.Equal(s.T(), "two", tasks[1].Title)
	require.NotNil(s.T(), tasks[0].TeamID)
	assert.Equal(s.T(), team.ID, *tasks[0].TeamID)
}

func (s *PostgresTestSuite) TestStorage_Update() {
	alice := s.createUser("alice")
	task := s.createTask(alice.ID, "Original Title", 1)

	task.Title = "Updated Title"
	task.Description = "Updated Description"
	task.Priority = 4
	require.NoError(s.T(), s.storage.Update(s.ctx, task))

	got, err := s.storage.GetByID(s.ctx, task.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "Updated Title", got.Title)
	assert.Equal(s.T(), "Updated Description", got.Description)
	assert.Equal(s.T(), 4, got.Priority)

	missing := &models.Task{ID: uuid.New(), Title: "ghost", UserID: alice.ID}
	assert.ErrorIs(s.T(), s.storage.Update(s.ctx, missing), repo.ErrNotFound)
}

func (s *PostgresTestSuite) TestStorage_SetCompleted() {
	alice := s.createUser("alice")
	task := s.createTask(alice.ID, "toggle", 0)

	updated, err := s.storage.SetCompleted(s.ctx, task.ID, true)
	require.NoError(s.T(), err)
	assert.True(s.T(), updated.Completed)
	assert.Equal(s.T(), task.ID, updated.ID)

	updated, err = s.storage.SetCompleted(s.ctx, task.ID, false)
	require.NoError(s.T(), err)
	assert.False(s.T(), updated.Completed)

	_, err = s.storage.SetCompleted(s.ctx, uuid.New(), true)
	assert.ErrorIs(s.T(), err, repo.ErrNotFound)
}

func (s *PostgresTestSuite) TestStorage_Delete() {
	alice := s.createUser("alice")
	task := s.createTask(alice.ID, "doomed", 0)

	require.NoError(s.T(), s.storage.Delete(s.ctx, task.ID))
	assert.ErrorIs(s.T(), s.storage.Delete(s.ctx, task.ID), repo.ErrNotFound)

	_, err := s.storage.GetByID(s.ctx, task.ID)
	assert.ErrorIs(s.T(), err, repo.ErrNotFound)
}

func (s *PostgresTestSuite) TestStorage_Teams() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	team := s.createTeam("backend", alice.ID, bob.ID)

	got, err := s.storage.GetTeamByID(s.ctx, team.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "backend", got.Name)
	assert.True(s.T(), got.HasMember(alice.ID))
	assert.True(s.T(), got.HasMember(bob.ID))
	assert.False(s.T(), got.HasMember(uuid.New()))

	_, err = s.storage.GetTeamByID(s.ctx, uuid.New())
	assert.ErrorIs(s.T(), err, repo.ErrNotFound)
}

func (s *PostgresTestSuite) TestStorage_Users() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	s.T().Run("duplicate email", func(t *testing.T) {
		duplicate := &models.User{
			ID:           uuid.New(),
			Username:     "alice2",
			Email:        "alice@example.com",
			PasswordHash: "hash",
		}
		assert.ErrorIs(t, s.storage.CreateUser(s.ctx, duplicate), repo.ErrAlreadyExists)
	})

	s.T().Run("get by id and email", func(t *testing.T) {
		got, err := s.storage.GetUserByID(s.ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)

		got, err = s.storage.GetUserByEmail(s.ctx, "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, bob.ID, got.ID)

		_, err = s.storage.GetUserByEmail(s.ctx, "nobody@example.com")
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})

	s.T().Run("usernames batch", func(t *testing.T) {
		names, err := s.storage.GetUsernames(s.ctx, []uuid.UUID{alice.ID, bob.ID, uuid.New()})
		require.NoError(t, err)
		assert.Equal(t, "alice", names[alice.ID])
		assert.Equal(t, "bob", names[bob.ID])
		assert.Len(t, names, 2)
	})
}

func (s *PostgresTestSuite) TestStorage_HealthCheck() {
	require.NoError(s.T(), s.storage.HealthCheck(s.ctx))
}

// Unit тесты (без базы данных)
func TestStorage_New_InvalidConnString(t *testing.T) {
	ctx := context.Background()

	_, err := postgres.New(ctx, "invalid", 0, 0, 0)
	assert.Error(t, err)
}
