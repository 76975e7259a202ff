package logger

import (
	"sync"

	"imgproc/core/history"
	"imgproc/core/imageops"

	"go.uber.org/zap"
)

// OperationLog 进程级、只追加的操作日志
// 写日志是尽力而为：任何失败都被吞掉，不影响操作结果
type OperationLog struct {
	logger   *zap.Logger
	recorder *history.Recorder
	mu       sync.Mutex
}

// NewOperationLog 创建操作日志，recorder 可为nil
func NewOperationLog(logger *zap.Logger, recorder *history.Recorder) *OperationLog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OperationLog{logger: logger, recorder: recorder}
}

// Record 记录一次操作
func (ol *OperationLog) Record(event imageops.Event) {
	defer func() {
		// 日志丢失不是正确性问题
		_ = recover()
	}()

	ol.mu.Lock()
	defer ol.mu.Unlock()

	switch event.Severity {
	case imageops.SeverityError:
		ol.logger.Error(event.Message)
	default:
		ol.logger.Info(event.Message)
	}

	if ol.recorder != nil {
		ol.recorder.Submit(history.Record{
			Time:        event.Time,
			Operation:   string(event.Operation),
			Source:      event.Source,
			Destination: event.Destination,
			Succeeded:   event.Severity != imageops.SeverityError,
			Kind:        string(event.Kind),
			Message:     event.Message,
		})
	}
}

// Close 刷新日志并关闭历史记录器
func (ol *OperationLog) Close() error {
	ol.mu.Lock()
	defer ol.mu.Unlock()

	// Sync 在终端上可能返回 EINVAL，忽略
	_ = ol.logger.Sync()
	if ol.recorder != nil {
		return ol.recorder.Close()
	}
	return nil
}
