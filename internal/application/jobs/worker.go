package jobs

import (
	"context"
	"log"
	"time"
)

// Job 是可重複執行的背景工作。
type Job interface {
	Execute(ctx context.Context) error
}

// JobFunc 讓函式直接作為 Job 使用。
type JobFunc func(ctx context.Context) error

// Execute 執行函式本身。
func (f JobFunc) Execute(ctx context.Context) error { return f(ctx) }

// Worker 以固定間隔重複執行單一 Job,啟動後先立即執行一次。
type Worker struct {
	name     string
	job      Job
	interval time.Duration
	stopChan chan struct{}
}

// NewWorker 建立背景工作者。
func NewWorker(name string, job Job, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 1 * time.Minute
	}
	return &Worker{
		name:     name,
		job:      job,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start 啟動迴圈。
func (w *Worker) Start() {
	log.Printf("[Worker] Starting %s worker with interval: %v", w.name, w.interval)
	ticker := time.NewTicker(w.interval)
	go func() {
		// 啟動後立即執行一次
		w.runOnce()

		for {
			select {
			case <-ticker.C:
				w.runOnce()
			case <-w.stopChan:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop 停止迴圈。
func (w *Worker) Stop() {
	close(w.stopChan)
}

func (w *Worker) runOnce() {
	ctx := context.Background()
	if err := w.job.Execute(ctx); err != nil {
		log.Printf("[Worker] %s run failed: %v", w.name, err)
	}
}
