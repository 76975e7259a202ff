package history

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Record 一条操作历史
type Record struct {
	Seq         uint64    `json:"seq"`
	Time        time.Time `json:"time"`
	Operation   string    `json:"operation"`
	Source      string    `json:"source"`
	Destination string    `json:"destination,omitempty"`
	Succeeded   bool      `json:"succeeded"`
	Kind        string    `json:"kind,omitempty"`
	Message     string    `json:"message"`
}

// Stats 历史统计
type Stats struct {
	Total     uint64 `json:"total"`
	Succeeded uint64 `json:"succeeded"`
	Failed    uint64 `json:"failed"`
}

// 数据库桶名称
const (
	operationsBucket = "operations"
	metaBucket       = "meta"
)

var (
	succeededKey = []byte("succeeded")
	failedKey    = []byte("failed")
)

// Store bbolt操作历史存储
type Store struct {
	db     *bbolt.DB
	dbPath string
	mu     sync.RWMutex
	logger *zap.Logger
}

// DefaultPath 默认数据库路径 ~/.imgproc/history.db
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "imgproc", "history.db")
	}
	return filepath.Join(home, ".imgproc", "history.db")
}

// Open 打开（必要时创建）历史数据库
func Open(dbPath string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dbPath == "" {
		dbPath = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, dbPath: dbPath, logger: logger}

	// 初始化数据库桶
	if err := store.initBuckets(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			var builder strings.Builder
			builder.WriteString("failed to initialize buckets: ")
			builder.WriteString(err.Error())
			builder.WriteString(", and failed to close db: ")
			builder.WriteString(closeErr.Error())
			return nil, fmt.Errorf("%s", builder.String())
		}
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return store, nil
}

// initBuckets 初始化数据库桶
func (s *Store) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, bucket := range []string{operationsBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
}

// Path 数据库文件路径
func (s *Store) Path() string {
	return s.dbPath
}

// Append 追加一条记录，返回分配的序号
func (s *Store) Append(record Record) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var seq uint64
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(operationsBucket))
		if bucket == nil {
			return fmt.Errorf("operations bucket not found")
		}

		next, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate sequence: %w", err)
		}
		record.Seq = next
		if record.Time.IsZero() {
			record.Time = time.Now()
		}

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		if err := bucket.Put(itob(next), data); err != nil {
			return err
		}

		seq = next
		return incrementCounter(tx.Bucket([]byte(metaBucket)), record.Succeeded)
	})
	return seq, err
}

// Recent 返回最近 n 条记录，最新的在前；n<=0 返回全部
func (s *Store) Recent(n int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]Record, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(operationsBucket))
		if bucket == nil {
			return fmt.Errorf("operations bucket not found")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.Last(); k != nil; k, v = cursor.Prev() {
			if n > 0 && len(records) >= n {
				break
			}
			var record Record
			if err := json.Unmarshal(v, &record); err != nil {
				s.logger.Warn("跳过无法解析的历史记录", zap.Uint64("seq", btoi(k)), zap.Error(err))
				continue
			}
			records = append(records, record)
		}
		return nil
	})
	return records, err
}

// Stats 返回成功/失败计数
func (s *Store) Stats() (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(metaBucket))
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}
		stats.Succeeded = readCounter(bucket, succeededKey)
		stats.Failed = readCounter(bucket, failedKey)
		stats.Total = stats.Succeeded + stats.Failed
		return nil
	})
	return stats, err
}

// Close 关闭数据库
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func incrementCounter(bucket *bbolt.Bucket, succeeded bool) error {
	if bucket == nil {
		return fmt.Errorf("meta bucket not found")
	}
	key := failedKey
	if succeeded {
		key = succeededKey
	}
	return bucket.Put(key, itob(readCounter(bucket, key)+1))
}

func readCounter(bucket *bbolt.Bucket, key []byte) uint64 {
	data := bucket.Get(key)
	if len(data) != 8 {
		return 0
	}
	return btoi(data)
}

// itob 序号转为大端字节，保证游标按序遍历
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}
