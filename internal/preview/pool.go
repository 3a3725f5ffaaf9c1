package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/paperlens/internal/config"
)

// ErrQueueFull is returned by Submit when no worker slot is free.
var ErrQueueFull = errors.New("preview queue is full")

// Pool owns the session store and the workers that fill it.
type Pool struct {
	sessions *Store
	queue    chan *Session
	stats    *LatencyStats
	log      *slog.Logger
	cfg      config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPool(cfg config.Config, log *slog.Logger) *Pool {
	return &Pool{
		sessions: NewStore(cfg.SessionTTL),
		queue:    make(chan *Session, cfg.MaxQueueSize),
		stats:    NewLatencyStats(cfg.StatsWindow),
		log:      log,
		cfg:      cfg,
	}
}

// Start launches worker goroutines and the session cleanup loop.
func (p *Pool) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for range p.cfg.WorkerCount {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			w := NewWorker(p.log, p.stats, p.cfg.ConvertTimeout)
			for {
				select {
				case <-workerCtx.Done():
					return
				case s, ok := <-p.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, s)
				}
			}
		}()
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.cfg.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				if n := p.sessions.Cleanup(); n > 0 {
					p.log.Info("evicted idle preview sessions", "count", n)
				}
			}
		}
	}()
}

// Stop cancels in-flight work and waits for the workers to exit.
func (p *Pool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	close(p.queue)
	p.wg.Wait()
}

// Submit registers a session and queues it for processing.
func (p *Pool) Submit(s *Session) error {
	p.sessions.Put(s)
	select {
	case p.queue <- s:
		return nil
	default:
		p.sessions.Delete(s.ID)
		return fmt.Errorf("%w (%d)", ErrQueueFull, p.cfg.MaxQueueSize)
	}
}

// Get returns a live session by ID, or nil.
func (p *Pool) Get(id string) *Session {
	return p.sessions.Get(id)
}

// Delete resets a session. Work already running for it is discarded.
func (p *Pool) Delete(id string) bool {
	return p.sessions.Delete(id)
}

// QueueDepth returns current queue depth.
func (p *Pool) QueueDepth() int {
	return len(p.queue)
}

// Sessions returns the number of live sessions.
func (p *Pool) Sessions() int {
	return p.sessions.Len()
}

func (p *Pool) Stats() StatsSnapshot {
	return p.stats.Snapshot()
}
