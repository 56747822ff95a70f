package registrationintegrationtests

import (
	"context"
	"log"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	eligibilityservice "github.com/artifa-fest/registration/app/modules/eligibility/application"
	registrationservice "github.com/artifa-fest/registration/app/modules/registration/application"
	teamservice "github.com/artifa-fest/registration/app/modules/team/application"
	"github.com/artifa-fest/registration/integration_tests/testutils"
	"github.com/artifa-fest/registration/internal/observability"
)

// Global variables for the test environment, initialized once.
var (
	testEnv     *testutils.TestEnvironment
	testEnvOnce sync.Once
	testEnvErr  error
)

// TestDeps holds dependencies needed by individual tests.
type TestDeps struct {
	Ctx       context.Context
	Env       *testutils.TestEnvironment
	Service   registrationservice.Service
	Generator *testutils.TestDataGenerator
}

func GetTestEnv(t *testing.T) *testutils.TestEnvironment {
	t.Helper()

	testEnvOnce.Do(func() {
		log.Println("Initializing registration test environment...")
		env, err := testutils.NewTestEnvironment(t)
		if err != nil {
			testEnvErr = err
			log.Printf("Failed to set up test environment: %v", err)
			return
		}
		testEnv = env
	})

	if testEnvErr != nil {
		t.Fatalf("Registration test environment initialization failed: %v", testEnvErr)
	}
	if testEnv == nil {
		t.Fatalf("Registration test environment not initialized")
	}
	return testEnv
}

func SetupTestRegistrationService(t *testing.T) TestDeps {
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
	noOpMetrics := &observability.NoOpMetrics{}
	noOpTracer := noop.NewTracerProvider().Tracer("test_registration_service")

	eligibility := eligibilityservice.NewEligibilityService(
		env.DBService.RegistrationDB,
		env.DB,
		testLogger,
		noOpMetrics,
		noOpTracer,
	)
	teams := teamservice.NewTeamService(
		env.DBService.TeamDB,
		env.DBService.RegistrationDB,
		env.DBService.EventDB,
		eligibility,
		env.DB,
		testLogger,
		noOpMetrics,
		noOpTracer,
	)
	service := registrationservice.NewRegistrationService(
		env.DBService.RegistrationDB,
		env.DBService.IdentityDB,
		env.DBService.EventDB,
		eligibility,
		teams,
		env.DB,
		testLogger,
		noOpMetrics,
		noOpTracer,
	)

	return TestDeps{
		Ctx:       env.Ctx,
		Env:       env,
		Service:   service,
		Generator: testutils.NewTestDataGenerator(),
	}
}

// testWriter wraps a testing.T to implement io.Writer for slog.
type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (n int, err error) {
	tw.t.Log(string(p))
	return len(p), nil
}
