package repository_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/airisk/pkg/domain/interfaces"
	"github.com/secmon-lab/airisk/pkg/domain/model"
	"github.com/secmon-lab/airisk/pkg/domain/types"
	"github.com/secmon-lab/airisk/pkg/repository/firestore"
	"github.com/secmon-lab/airisk/pkg/repository/memory"
	"github.com/secmon-lab/airisk/pkg/repository/postgres"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newAssessment(userID string) *model.Assessment {
	return &model.Assessment{
		UserID:       userID,
		UserEmail:    userID + "@example.com",
		UserName:     "User " + userID,
		ProjectType:  types.ProjectDataAnalytics,
		ToolID:       types.ToolChatGPT,
		Autonomy:     types.AutonomyAutomated,
		DataTags:     []types.DataSensitivity{types.DataPersonalData, types.DataClientConfidential},
		Impact:       types.ImpactCriticalOperations,
		Transparency: types.TransparencyLow,
		UseCaseTags:  []types.UseCase{types.UseCaseRiskAssessment},
		TotalScore:   18,
		Tier:         types.TierCritical,
		MeasureTags: []types.MeasureTag{
			types.MeasureITApprovalRequired,
			types.MeasureDocumentationGovernance,
			types.MeasureStakeholderCommunication,
		},
	}
}

// uniqueUser keeps runs against shared backends from seeing each other's data
func uniqueUser(name string) string {
	return name + "-" + types.NewAssessmentID().String()
}

func runAssessmentRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		user := uniqueUser("alice")

		input := newAssessment(user)
		created, err := repo.Assessment().Create(ctx, input)
		gt.NoError(t, err).Required()

		gt.NoError(t, created.ID.Validate())
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Value(t, created.UserID).Equal(user)
		gt.Value(t, created.TotalScore).Equal(18)
		gt.Value(t, created.Tier).Equal(types.TierCritical)
		gt.Array(t, created.DataTags).Length(2)
		gt.Array(t, created.MeasureTags).Length(3)

		// input is not modified
		gt.Value(t, input.ID).Equal(types.AssessmentID(""))
	})

	t.Run("Create requires user ID", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Assessment().Create(context.Background(), newAssessment(""))
		gt.Value(t, err).NotNil()
	})

	t.Run("Get retrieves own assessment", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		user := uniqueUser("alice")

		created, err := repo.Assessment().Create(ctx, newAssessment(user))
		gt.NoError(t, err).Required()

		got, err := repo.Assessment().Get(ctx, user, created.ID)
		gt.NoError(t, err).Required()

		gt.Value(t, got.ID).Equal(created.ID)
		gt.Value(t, got.UserEmail).Equal(created.UserEmail)
		gt.Value(t, got.UserName).Equal(created.UserName)
		gt.Value(t, got.ProjectType).Equal(created.ProjectType)
		gt.Value(t, got.ToolID).Equal(created.ToolID)
		gt.Value(t, got.Autonomy).Equal(created.Autonomy)
		gt.Value(t, got.DataTags).Equal(created.DataTags)
		gt.Value(t, got.Impact).Equal(created.Impact)
		gt.Value(t, got.Transparency).Equal(created.Transparency)
		gt.Value(t, got.UseCaseTags).Equal(created.UseCaseTags)
		gt.Value(t, got.TotalScore).Equal(created.TotalScore)
		gt.Value(t, got.Tier).Equal(created.Tier)
		gt.Value(t, got.MeasureTags).Equal(created.MeasureTags)
		gt.Bool(t, got.CreatedAt.Equal(created.CreatedAt)).True()
	})

	t.Run("Get hides other users' assessments", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Assessment().Create(ctx, newAssessment(uniqueUser("alice")))
		gt.NoError(t, err).Required()

		_, err = repo.Assessment().Get(ctx, uniqueUser("bob"), created.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("Get returns ErrNotFound for unknown ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Assessment().Get(ctx, uniqueUser("alice"), types.NewAssessmentID())
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("List returns own assessments newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		alice := uniqueUser("alice")
		bob := uniqueUser("bob")

		var ids []types.AssessmentID
		for i := 0; i < 3; i++ {
			created, err := repo.Assessment().Create(ctx, newAssessment(alice))
			gt.NoError(t, err).Required()
			ids = append(ids, created.ID)
			time.Sleep(5 * time.Millisecond)
		}
		_, err := repo.Assessment().Create(ctx, newAssessment(bob))
		gt.NoError(t, err).Required()

		list, err := repo.Assessment().List(ctx, alice)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(3)
		gt.Value(t, list[0].ID).Equal(ids[2])
		gt.Value(t, list[1].ID).Equal(ids[1])
		gt.Value(t, list[2].ID).Equal(ids[0])
		for _, a := range list {
			gt.Value(t, a.UserID).Equal(alice)
		}
	})

	t.Run("List returns empty slice for unknown user", func(t *testing.T) {
		repo := newRepo(t)
		list, err := repo.Assessment().List(context.Background(), uniqueUser("nobody"))
		gt.NoError(t, err).Required()
		gt.B(t, list != nil).True()
		gt.A(t, list).Length(0)
	})

	t.Run("Delete removes own assessment", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		user := uniqueUser("alice")

		created, err := repo.Assessment().Create(ctx, newAssessment(user))
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Assessment().Delete(ctx, user, created.ID)).Required()

		_, err = repo.Assessment().Get(ctx, user, created.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)

		err = repo.Assessment().Delete(ctx, user, created.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)
	})

	t.Run("Delete does not touch other users' assessments", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		alice := uniqueUser("alice")

		created, err := repo.Assessment().Create(ctx, newAssessment(alice))
		gt.NoError(t, err).Required()

		err = repo.Assessment().Delete(ctx, uniqueUser("mallory"), created.ID)
		gt.Error(t, err).Is(interfaces.ErrNotFound)

		_, err = repo.Assessment().Get(ctx, alice, created.ID)
		gt.NoError(t, err)
	})

	t.Run("concurrent creates", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		user := uniqueUser("alice")

		var wg sync.WaitGroup
		errs := make(chan error, 10)
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := repo.Assessment().Create(ctx, newAssessment(user)); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			gt.NoError(t, err)
		}

		list, err := repo.Assessment().List(ctx, user)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(10)
	})

	t.Run("Ping", func(t *testing.T) {
		repo := newRepo(t)
		gt.NoError(t, repo.Ping(context.Background()))
	})
}

func TestAssessmentRepository_Memory(t *testing.T) {
	runAssessmentRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestAssessmentRepository_Firestore(t *testing.T) {
	runAssessmentRepositoryTest(t, newFirestoreRepository)
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix("test"))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func TestAssessmentRepository_Postgres(t *testing.T) {
	if os.Getenv("TEST_POSTGRES") == "" {
		t.Skip("TEST_POSTGRES not set")
	}

	dsn := startPostgres(t)
	gt.NoError(t, postgres.MigrateUp(dsn)).Required()
	// Running again is a no-op
	gt.NoError(t, postgres.MigrateUp(dsn)).Required()

	version, dirty, err := postgres.MigrationVersion(dsn)
	gt.NoError(t, err).Required()
	gt.Value(t, version).Equal(uint(1))
	gt.Bool(t, dirty).False()

	runAssessmentRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := postgres.New(context.Background(), dsn)
		gt.NoError(t, err).Required()
		t.Cleanup(func() {
			gt.NoError(t, repo.Close())
		})
		return repo
	})

	t.Run("Get with malformed ID is not found", func(t *testing.T) {
		repo, err := postgres.New(context.Background(), dsn)
		gt.NoError(t, err).Required()
		defer repo.Close()

		_, err = repo.Assessment().Get(context.Background(), "alice", "42")
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("MigrateDown drops the schema", func(t *testing.T) {
		gt.NoError(t, postgres.MigrateDown(dsn)).Required()
		version, _, err := postgres.MigrationVersion(dsn)
		gt.NoError(t, err).Required()
		gt.Value(t, version).Equal(uint(0))
	})
}

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("airisk"),
		tcpostgres.WithUsername("airisk"),
		tcpostgres.WithPassword("airisk"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	gt.NoError(t, err).Required()
	return dsn
}
