package main

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/services"
)

type shutdownRecorder struct {
	calls []string
}

type recordingServer struct{ r *shutdownRecorder }

func (s recordingServer) Shutdown() error {
	s.r.calls = append(s.r.calls, "server")
	return errors.New("already closed")
}

type recordingWorker struct{ r *shutdownRecorder }

func (w recordingWorker) Start(context.Context) {}
func (w recordingWorker) EnqueueJob(uuid.UUID) {}
func (w recordingWorker) Stop() {
	w.r.calls = append(w.r.calls, "worker")
}

type recordingNotifier struct{ r *shutdownRecorder }

func (n recordingNotifier) Publish(context.Context, services.StatusUpdate) error { return nil }
func (n recordingNotifier) Close() error {
	n.r.calls = append(n.r.calls, "notifier")
	return nil
}

func TestShutdown_StopsWorkerFirst(t *testing.T) {
	r := &shutdownRecorder{}

	shutdown(recordingServer{r}, recordingWorker{r}, recordingNotifier{r}, zap.NewNop())

	assert.Equal(t, []string{"worker", "server", "notifier"}, r.calls)
}
