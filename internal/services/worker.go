package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/metrics"
	"alfredoptarigan/cv-analyzer/internal/repositories"
)

const (
	jobQueueSize   = 100
	pendingJobsMax = 10
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(analysisID uuid.UUID)
}

type WorkerOptions struct {
	Concurrency  int
	PollInterval time.Duration
	// JobTimeout bounds one analysis. Zero means no limit.
	JobTimeout time.Duration
}

type worker struct {
	repo        repositories.AnalysisRepository
	service     AnalysisService
	jobQueue    chan uuid.UUID
	concurrency int
	interval    time.Duration
	timeout     time.Duration
	logger      *zap.Logger
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewWorker(
	repo repositories.AnalysisRepository,
	service AnalysisService,
	opts WorkerOptions,
	log *zap.Logger,
) Worker {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 10 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &worker{
		repo:        repo,
		service:     service,
		jobQueue:    make(chan uuid.UUID, jobQueueSize),
		concurrency: opts.Concurrency,
		interval:    opts.PollInterval,
		timeout:     opts.JobTimeout,
		logger:      log,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.logger.Info("🚀 Starting worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	w.logger.Info("✅ Worker started successfully")
}

// Stop implements Worker. It is safe to call more than once.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.logger.Info("🛑 Stopping worker...")
		close(w.stopChan)
		w.wg.Wait()
		w.logger.Info("✅ Worker stopped")
	})
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(analysisID uuid.UUID) {
	select {
	case w.jobQueue <- analysisID:
		metrics.WorkerQueueDepth.Set(float64(len(w.jobQueue)))
		w.logger.Debug("📥 Job enqueued", zap.String("analysis_id", analysisID.String()))
	case <-w.stopChan:
		w.logger.Warn("⚠️ Worker stopped, cannot enqueue job", zap.String("analysis_id", analysisID.String()))
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log := w.logger.With(zap.Int("worker", workerID))
	log.Debug("👷 Worker started processing jobs")

	for {
		select {
		case <-w.stopChan:
			log.Debug("👷 Worker stopped")
			return
		case <-ctx.Done():
			return
		case analysisID := <-w.jobQueue:
			metrics.WorkerQueueDepth.Set(float64(len(w.jobQueue)))
			if err := w.process(ctx, analysisID); err != nil {
				log.Error("❌ Failed to process job", zap.String("analysis_id", analysisID.String()), zap.Error(err))
			}
		}
	}
}

func (w *worker) process(ctx context.Context, analysisID uuid.UUID) error {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	return w.service.Process(ctx, analysisID)
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Debug("🔄 Starting pending jobs poller", zap.Duration("interval", w.interval))

	for {
		select {
		case <-w.stopChan:
			w.logger.Debug("🔄 Pending jobs poller stopped")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pendingJobs, err := w.repo.FindPendingJobs(pendingJobsMax)
			if err != nil {
				w.logger.Warn("⚠️ Failed to fetch pending jobs", zap.Error(err))
				continue
			}

			if len(pendingJobs) > 0 {
				w.logger.Info("📋 Found pending jobs", zap.Int("count", len(pendingJobs)))
			}

			for _, job := range pendingJobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
