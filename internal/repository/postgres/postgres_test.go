package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aidar/rat-api/internal/domain"
	"github.com/aidar/rat-api/migrations"
)

// setupPool запускает PostgreSQL контейнер и применяет миграции
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("rat_test"),
		tcpostgres.WithUsername("test_user"),
		tcpostgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	applied, err := Migrate(ctx, pool, migrations.FS)
	require.NoError(t, err)
	require.Equal(t, 1, applied)

	return pool
}

func TestRepositories(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := setupPool(t)

	projects := NewProjectRepository(pool)
	projectTypes := NewProjectTypeRepository(pool)
	members := NewMemberRepository(pool)
	links := NewMemberProjectRepository(pool)
	meta := domain.NewInsertMeta(1)

	t.Run("Migrations Are Idempotent", func(t *testing.T) {
		applied, err := Migrate(ctx, pool, migrations.FS)
		require.NoError(t, err)
		assert.Zero(t, applied)
	})

	t.Run("Seeded Project Types", func(t *testing.T) {
		types, err := projectTypes.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.ProjectType{
			{ID: 1, Name: "other"},
			{ID: 2, Name: "js"},
			{ID: 3, Name: "csharp"},
		}, types)

		id, err := projectTypes.GetIDByName(ctx, "csharp")
		require.NoError(t, err)
		assert.Equal(t, 3, id)

		_, err = projectTypes.GetIDByName(ctx, "cobol")
		assert.ErrorIs(t, err, domain.ErrProjectTypeNotFound)
	})

	t.Run("Project Round Trip", func(t *testing.T) {
		typeID, err := projectTypes.GetIDByName(ctx, "csharp")
		require.NoError(t, err)

		id, err := projects.Insert(ctx, "P1", typeID, meta)
		require.NoError(t, err)
		assert.Positive(t, id)

		project, err := projects.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, &domain.ProjectDetail{ID: id, Name: "P1", TypeID: 3, TypeName: "csharp"}, project)
	})

	t.Run("Project Not Found", func(t *testing.T) {
		_, err := projects.GetByID(ctx, 999999)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})

	t.Run("Project With Unknown Type", func(t *testing.T) {
		_, err := projects.Insert(ctx, "orphan", 999, meta)
		assert.ErrorIs(t, err, domain.ErrProjectTypeNotFound)
	})

	t.Run("Member Unique External ID", func(t *testing.T) {
		externalID := uuid.NewString()

		id, err := members.Insert(ctx, externalID, meta)
		require.NoError(t, err)

		_, err = members.Insert(ctx, externalID, meta)
		assert.ErrorIs(t, err, domain.ErrMemberExists)

		member, err := members.GetByExternalID(ctx, externalID)
		require.NoError(t, err)
		assert.Equal(t, id, member.ID)

		member, err = members.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, externalID, member.ExternalUserID)

		_, err = members.GetByExternalID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrMemberNotFound)
	})

	t.Run("Projects For Member", func(t *testing.T) {
		memberID, err := members.Insert(ctx, uuid.NewString(), meta)
		require.NoError(t, err)

		empty, err := projects.ListByMember(ctx, memberID)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		projectA, err := projects.Insert(ctx, "A", 3, meta)
		require.NoError(t, err)
		projectB, err := projects.Insert(ctx, "B", 2, meta)
		require.NoError(t, err)
		_, err = projects.Insert(ctx, "not linked", 1, meta)
		require.NoError(t, err)

		// Порядок привязки не влияет на порядок выдачи
		require.NoError(t, links.Insert(ctx, memberID, projectB, meta))
		require.NoError(t, links.Insert(ctx, memberID, projectA, meta))

		err = links.Insert(ctx, memberID, projectA, meta)
		assert.ErrorIs(t, err, domain.ErrMemberProjectExists)

		list, err := projects.ListByMember(ctx, memberID)
		require.NoError(t, err)
		assert.Equal(t, []domain.ProjectSummary{
			{ID: projectA, Name: "A"},
			{ID: projectB, Name: "B"},
		}, list)
	})

	t.Run("Link Unknown Entities", func(t *testing.T) {
		memberID, err := members.Insert(ctx, uuid.NewString(), meta)
		require.NoError(t, err)
		projectID, err := projects.Insert(ctx, "lonely", 1, meta)
		require.NoError(t, err)

		assert.ErrorIs(t, links.Insert(ctx, 999999, projectID, meta), domain.ErrMemberNotFound)
		assert.ErrorIs(t, links.Insert(ctx, memberID, 999999, meta), domain.ErrProjectNotFound)
	})

	t.Run("Insert With Member Is Atomic", func(t *testing.T) {
		memberID, err := members.Insert(ctx, uuid.NewString(), meta)
		require.NoError(t, err)

		projectID, err := projects.InsertWithMember(ctx, "owned", 2, memberID, domain.NewInsertMeta(memberID))
		require.NoError(t, err)

		list, err := projects.ListByMember(ctx, memberID)
		require.NoError(t, err)
		assert.Equal(t, []domain.ProjectSummary{{ID: projectID, Name: "owned"}}, list)

		var before int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM project`).Scan(&before))

		// Несуществующий участник откатывает и вставку проекта
		_, err = projects.InsertWithMember(ctx, "rolled back", 2, 999999, meta)
		assert.ErrorIs(t, err, domain.ErrMemberNotFound)

		var after int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM project`).Scan(&after))
		assert.Equal(t, before, after)
	})

	t.Run("Audit Columns Are Written", func(t *testing.T) {
		memberID, err := members.Insert(ctx, uuid.NewString(), domain.NewInsertMeta(42))
		require.NoError(t, err)

		var operator int
		var operation string
		var operatedAt time.Time
		err = pool.QueryRow(ctx,
			`SELECT operator_id, operation, operated_at FROM member WHERE id = $1`, memberID,
		).Scan(&operator, &operation, &operatedAt)
		require.NoError(t, err)

		assert.Equal(t, 42, operator)
		assert.Equal(t, "insert", operation)
		assert.WithinDuration(t, time.Now(), operatedAt, time.Minute)
	})

	t.Run("Concurrent Member Inserts", func(t *testing.T) {
		externalID := uuid.NewString()

		const workers = 8
		var wg sync.WaitGroup
		errs := make([]error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = members.Insert(ctx, externalID, meta)
			}(i)
		}
		wg.Wait()

		created := 0
		for _, err := range errs {
			if err == nil {
				created++
				continue
			}
			assert.ErrorIs(t, err, domain.ErrMemberExists)
		}
		assert.Equal(t, 1, created)
	})
}
