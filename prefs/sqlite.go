package prefs

import (
	"errors"
	"time"

	"github.com/d0ngw/chanstat/stats"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var _ Store = (*SQLiteStore)(nil)

// Preference is one row of the preferences table
type Preference struct {
	Name      string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName implements gorm schema.Tabler
func (Preference) TableName() string {
	return "preferences"
}

// SQLiteStore keeps the document as a row of the sqlite preferences table
type SQLiteStore struct {
	db  *gorm.DB
	key string
}

// NewSQLiteStore open the sqlite database at path and migrate the preferences table
func NewSQLiteStore(path string, key string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err = db.AutoMigrate(&Preference{}); err != nil {
		return nil, err
	}
	if key == "" {
		key = DefaultKey
	}
	return &SQLiteStore{db: db, key: key}, nil
}

// LoadStatistics implements stats.Preferences.LoadStatistics
func (p *SQLiteStore) LoadStatistics() (stats.Document, error) {
	var pref Preference
	err := p.db.Where("name = ?", p.key).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return Decode([]byte(pref.Value))
}

// SaveStatistics implements stats.Preferences.SaveStatistics
func (p *SQLiteStore) SaveStatistics(doc stats.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	pref := &Preference{Name: p.key, Value: string(data)}
	return p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(pref).Error
}

// Close implements Store.Close
func (p *SQLiteStore) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
