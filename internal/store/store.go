package store

import (
    "context"

    "github.com/pkg/errors"
    "gorm.io/driver/mysql"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"
    "gorm.io/gorm/logger"
)

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("quiz record not found")

// ErrDuplicate is returned when a record for the URL already exists. A
// caller losing the same-URL insert race should re-read by URL.
var ErrDuplicate = errors.New("quiz record already exists for url")

// Store persists quiz records behind a gorm connection.
type Store struct {
    db *gorm.DB
}

// Open connects to the configured database and migrates the schema.
// Supported drivers are "sqlite" (default) and "mysql".
func Open(driver, dsn string) (*Store, error) {
    var dialector gorm.Dialector
    switch driver {
    case "", "sqlite":
        dialector = sqlite.Open(dsn)
    case "mysql":
        dialector = mysql.Open(dsn)
    default:
        return nil, errors.Errorf("unsupported database driver %q", driver)
    }
    db, err := gorm.Open(dialector, &gorm.Config{
        TranslateError: true,
        Logger:         logger.Default.LogMode(logger.Silent),
    })
    if err != nil {
        return nil, errors.Wrap(err, "open database")
    }
    if err := db.AutoMigrate(&Record{}); err != nil {
        return nil, errors.Wrap(err, "migrate quizzes table")
    }
    return &Store{db: db}, nil
}

// Create inserts a new record and fills in its assigned id and timestamp.
func (s *Store) Create(ctx context.Context, r *Record) error {
    err := s.db.WithContext(ctx).Create(r).Error
    if errors.Is(err, gorm.ErrDuplicatedKey) {
        return ErrDuplicate
    }
    return errors.Wrap(err, "insert quiz record")
}

// FindByURL returns the record for the exact source URL, or ErrNotFound.
func (s *Store) FindByURL(ctx context.Context, url string) (*Record, error) {
    var r Record
    err := s.db.WithContext(ctx).Where("url = ?", url).First(&r).Error
    if errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, errors.Wrap(err, "query quiz by url")
    }
    return &r, nil
}

// FindByID returns the record with the given id, or ErrNotFound.
func (s *Store) FindByID(ctx context.Context, id uint) (*Record, error) {
    var r Record
    err := s.db.WithContext(ctx).First(&r, id).Error
    if errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, errors.Wrap(err, "query quiz by id")
    }
    return &r, nil
}

// List returns id/url/title/created_at for every stored quiz, oldest first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
    var out []Summary
    err := s.db.WithContext(ctx).
        Model(&Record{}).
        Select("id", "url", "title", "created_at").
        Order("id").
        Find(&out).Error
    if err != nil {
        return nil, errors.Wrap(err, "list quizzes")
    }
    return out, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
    sqlDB, err := s.db.DB()
    if err != nil {
        return errors.Wrap(err, "unwrap sql db")
    }
    return sqlDB.Close()
}
