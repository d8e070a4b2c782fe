package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	sheltermemory "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/adapters/memory"
	shelterapp "github.com/Apurer/go-gin-shelter-server/internal/domains/shelters/application"
	usermemory "github.com/Apurer/go-gin-shelter-server/internal/domains/users/adapters/memory"
	userapp "github.com/Apurer/go-gin-shelter-server/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-shelter-server/internal/domains/users/ports"
)

func newInstrumented(t *testing.T) (userports.Service, *tracetest.SpanRecorder, *bytes.Buffer) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	var buf bytes.Buffer
	core := userapp.NewService(usermemory.NewRepository(), usermemory.NewSessionStore(), shelterapp.NewService(sheltermemory.NewRepository()))
	svc := New(core,
		WithTracer(provider.Tracer("test")),
		WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))),
	)
	return svc, recorder, &buf
}

func TestRegister_LogsAndTraces(t *testing.T) {
	svc, recorder, buf := newInstrumented(t)

	_, err := svc.Register(context.Background(), userports.RegisterInput{
		Username: "staff", Password: "long-password", IsShelter: true, ShelterName: "Happy Tails",
	})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "user registered")
	require.Contains(t, buf.String(), `"shelter.id":1`)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, "UserService.Register", spans[0].Name())
}

func TestLogin_FailureMarksSpan(t *testing.T) {
	svc, recorder, buf := newInstrumented(t)

	_, err := svc.Login(context.Background(), "ghost", "whatever-password")
	require.ErrorIs(t, err, userapp.ErrAuthentication)
	require.Contains(t, buf.String(), "login failed")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, codes.Error, spans[0].Status().Code)
}
