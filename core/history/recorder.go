package history

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// DefaultMaxPending 默认最多等待写入的记录数
const DefaultMaxPending = 64

// Recorder 异步写入历史记录
// 单个worker顺序写入；调用方最多等待一次正在进行的写入，排队数超过上限时丢弃
type Recorder struct {
	store   *Store
	pool    *ants.Pool
	logger  *zap.Logger
	wg      sync.WaitGroup
	dropped atomic.Int64
	failed  atomic.Int64
	closed  atomic.Bool
}

// NewRecorder 创建异步记录器
func NewRecorder(store *Store, maxPending int, logger *zap.Logger) (*Recorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxPending <= 0 {
		maxPending = DefaultMaxPending
	}

	pool, err := ants.NewPool(1,
		ants.WithMaxBlockingTasks(maxPending),
		ants.WithPanicHandler(func(p interface{}) {
			logger.Error("历史记录写入panic", zap.Any("panic", p))
		}),
	)
	if err != nil {
		return nil, err
	}

	return &Recorder{store: store, pool: pool, logger: logger}, nil
}

// Submit 提交一条记录，不返回错误
func (r *Recorder) Submit(record Record) {
	if r.closed.Load() {
		r.dropped.Add(1)
		return
	}

	r.wg.Add(1)
	err := r.pool.Submit(func() {
		defer r.wg.Done()
		if _, err := r.store.Append(record); err != nil {
			r.failed.Add(1)
			r.logger.Warn("写入历史记录失败", zap.Error(err))
		}
	})
	if err != nil {
		r.wg.Done()
		r.dropped.Add(1)
		if !errors.Is(err, ants.ErrPoolOverload) && !errors.Is(err, ants.ErrPoolClosed) {
			r.logger.Warn("提交历史记录失败", zap.Error(err))
		}
	}
}

// Flush 等待已提交的记录写完
func (r *Recorder) Flush() {
	r.wg.Wait()
}

// Dropped 被丢弃的记录数
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Failed 写入失败的记录数
func (r *Recorder) Failed() int64 {
	return r.failed.Load()
}

// Store 底层存储
func (r *Recorder) Store() *Store {
	return r.store
}

// Close 写完剩余记录后释放池并关闭存储
func (r *Recorder) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	r.Flush()
	if err := r.pool.ReleaseTimeout(3 * time.Second); err != nil {
		r.logger.Warn("释放写入池超时", zap.Error(err))
	}
	return r.store.Close()
}
