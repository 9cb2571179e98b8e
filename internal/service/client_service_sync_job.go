package service

import (
	"context"
	"sync"
	"time"

	"github.com/adilfashion/tailorsync/internal/connectivity"
	"github.com/adilfashion/tailorsync/internal/logger"
)

type clientSyncJob struct {
	engine  SyncEngine
	monitor connectivity.Monitor
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates the background job that triggers sync cycles when
// connectivity comes back and, optionally, on a fixed interval. The job is
// idle until Start is called.
func NewClientSyncJob(engine SyncEngine, monitor connectivity.Monitor, log *logger.Logger) ClientSyncJob {
	return &clientSyncJob{
		engine:  engine,
		monitor: monitor,
		logger:  log.GetChildLogger(),
	}
}

// Start stops any previously running job, then launches a goroutine that
// listens for reconnect events and interval ticks. The goroutine exits when
// ctx is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	transitions := j.monitor.Subscribe()

	go func() {
		defer j.wg.Done()

		var tick <-chan time.Time
		if interval > 0 {
			t := time.NewTicker(interval)
			defer t.Stop()
			tick = t.C
		}

		// Flush anything queued while the app was closed.
		if j.monitor.Connected() {
			j.engine.TriggerSync(jobCtx)
		}

		for {
			select {
			case <-jobCtx.Done():
				return
			case state, ok := <-transitions:
				if !ok {
					return
				}
				if state == connectivity.StateConnected {
					j.logger.Info().
						Str("func", "clientSyncJob").
						Msg("reconnected, triggering sync")
					j.engine.TriggerSync(jobCtx)
				}
			case <-tick:
				if j.monitor.Connected() {
					j.engine.TriggerSync(jobCtx)
				}
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has exited. Safe
// to call when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
