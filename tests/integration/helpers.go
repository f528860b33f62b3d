package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aidar/rat-api/internal/app"
	"github.com/aidar/rat-api/internal/config"
	"github.com/aidar/rat-api/internal/domain"
	"github.com/aidar/rat-api/internal/repository/postgres"
	"github.com/aidar/rat-api/internal/service"
)

const (
	testJWTSecret      = "test-jwt-secret-key-for-integration-tests"
	testIdentityHeader = "X-Test-User"
)

// TestEnvironment содержит все ресурсы необходимые для интеграционных тестов
type TestEnvironment struct {
	PostgresContainer *tcpostgres.PostgresContainer
	App               *app.App
	BaseURL           string
	DB                *pgxpool.Pool
	Auth              *service.AuthService
	ctx               context.Context
}

// SetupTestEnvironment создает и инициализирует полное тестовое окружение
func SetupTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	ctx := context.Background()

	// Запускаем PostgreSQL контейнер
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

	// Получаем строку подключения
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	// Парсим строку подключения для получения компонентов
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	// Создаем конфигурацию для приложения
	// Используем высокий порт для тестов чтобы избежать конфликтов
	testPort := "18081"
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           testPort,
			Host:           "127.0.0.1",
			RequestTimeout: 10 * time.Second,
		},
		Database: config.DatabaseConfig{
			Host:     host,
			Port:     port.Port(),
			User:     "test_user",
			Password: "test_password",
			Name:     "rat_test",
			SSLMode:  "disable",
			MaxConns: 25,
			MinConns: 5,
			// Схему создает само приложение при инициализации
			AutoMigrate: true,
		},
		Auth: config.AuthConfig{
			JWTSecret:      testJWTSecret,
			TokenTTLHours:  1,
			IdentityHeader: testIdentityHeader,
		},
		Audit: config.AuditConfig{
			SystemOperatorID: 1,
		},
	}

	// Создаем и инициализируем приложение
	application, err := app.New(cfg)
	require.NoError(t, err, "Failed to create application")

	err = application.Initialize(ctx)
	require.NoError(t, err, "Failed to initialize application")

	// Запускаем сервер в фоне
	serverStarted := make(chan bool, 1)
	go func() {
		serverStarted <- true
		if err := application.Run(); err != nil && err != http.ErrServerClosed {
			t.Logf("Server error: %v", err)
		}
	}()

	// Ждем запуска сервера
	<-serverStarted
	time.Sleep(500 * time.Millisecond)

	// Создаем базовый URL с тестовым портом
	baseURL := fmt.Sprintf("http://%s:%s", cfg.Server.Host, testPort)

	// Создаем подключение к БД для прямых запросов в тестах
	poolConfig, err := pgxpool.ParseConfig(connStr)
	require.NoError(t, err)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	require.NoError(t, err)

	return &TestEnvironment{
		PostgresContainer: pgContainer,
		App:               application,
		BaseURL:           baseURL,
		DB:                pool,
		Auth:              service.NewAuthService(testJWTSecret, time.Hour),
		ctx:               ctx,
	}
}

// Cleanup очищает все тестовые ресурсы
func (te *TestEnvironment) Cleanup(t *testing.T) {
	t.Helper()

	// Останавливаем приложение
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if te.App != nil {
		_ = te.App.Shutdown(shutdownCtx)
	}

	// Закрываем подключение к БД
	if te.DB != nil {
		te.DB.Close()
	}

	// Останавливаем PostgreSQL контейнер
	if te.PostgresContainer != nil {
		_ = te.PostgresContainer.Terminate(te.ctx)
	}
}

// MakeRequest вспомогательная функция для HTTP запросов в тестах.
// Непустой claim передается как subject подписанного JWT
func (te *TestEnvironment) MakeRequest(t *testing.T, method, path string, body io.Reader, claim string) *http.Response {
	t.Helper()

	headers := map[string]string{}
	if claim != "" {
		token, err := te.Auth.IssueToken(claim)
		require.NoError(t, err)
		headers["Authorization"] = "Bearer " + token
	}

	return te.MakeRequestWithHeaders(t, method, path, body, headers)
}

// MakeRequestWithHeaders выполняет запрос с произвольными заголовками
func (te *TestEnvironment) MakeRequestWithHeaders(t *testing.T, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, te.BaseURL+path, body)
	require.NoError(t, err, "Failed to create request")

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	resp, err := client.Do(req)
	require.NoError(t, err, "Failed to make request")

	return resp
}

// SeedProject создает проект напрямую через репозиторий
func (te *TestEnvironment) SeedProject(t *testing.T, name, typeName string) int {
	t.Helper()

	typeID, err := postgres.NewProjectTypeRepository(te.DB).GetIDByName(te.ctx, typeName)
	require.NoError(t, err)

	id, err := postgres.NewProjectRepository(te.DB).Insert(te.ctx, name, typeID, domain.NewInsertMeta(1))
	require.NoError(t, err)

	return id
}

// SeedMember создает участника напрямую через репозиторий
func (te *TestEnvironment) SeedMember(t *testing.T, externalUserID string) int {
	t.Helper()

	id, err := postgres.NewMemberRepository(te.DB).Insert(te.ctx, externalUserID, domain.NewInsertMeta(1))
	require.NoError(t, err)

	return id
}

// LinkMember привязывает участника к проекту
func (te *TestEnvironment) LinkMember(t *testing.T, memberID, projectID int) {
	t.Helper()

	err := postgres.NewMemberProjectRepository(te.DB).Insert(te.ctx, memberID, projectID, domain.NewInsertMeta(1))
	require.NoError(t, err)
}

// WaitForHealthCheck ждет пока приложение станет доступным
func (te *TestEnvironment) WaitForHealthCheck(t *testing.T) {
	t.Helper()

	maxRetries := 30
	for i := 0; i < maxRetries; i++ {
		resp, err := http.Get(te.BaseURL + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Fatal("Application did not become healthy in time")
}
