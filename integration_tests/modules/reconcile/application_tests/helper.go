package reconcileintegrationtests

import (
	"context"
	"log"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	reconcileservice "github.com/artifa-fest/registration/app/modules/reconcile/application"
	"github.com/artifa-fest/registration/integration_tests/testutils"
	"github.com/artifa-fest/registration/internal/observability"
)

var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

// TestDeps holds dependencies needed by individual tests.
type TestDeps struct {
	Ctx       context.Context
	Env       *testutils.TestEnvironment
	Service   reconcileservice.Service
	Generator *testutils.TestDataGenerator
}

func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()

	testEnvOnce.Do(func() {
		log.Println("Initializing reconcile test environment...")
		env, err := testutils.NewTestEnvironment(t)
		if err != nil {
			testEnvErr = err
			log.Printf("Failed to set up test environment: %v", err)
			return
		}
		testEnv = env
	})

	if testEnvErr != nil {
		t.Fatalf("Reconcile test environment initialization failed: %v", testEnvErr)
	}
	if testEnv == nil {
		t.Fatalf("Reconcile test environment not initialized")
	}
	return testEnv
}

func SetupTestReconcileService(t *testing.T) TestDeps {
	t.Helper()

	env := GetTestEnv(t)

	resetCtx, resetCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer resetCancel()
	if err := env.Reset(resetCtx); err != nil {
		t.Fatalf("Failed to reset environment: %v", err)
	}

	testLogger := slog.New(slog.NewTextHandler(testWriter{t: t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	service := reconcileservice.NewReconcileService(
		env.DBService.RegistrationDB,
		env.DBService.TeamDB,
		env.DB,
		testLogger,
		&observability.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test_reconcile_service"),
	)

	return TestDeps{
		Ctx:       env.Ctx,
		Env:       env,
		Service:   service,
		Generator: testutils.NewTestDataGenerator(),
	}
}

type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (n int, err error) {
	tw.t.Log(string(p))
	return len(p), nil
}
