package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/etnz/bondbook"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// SlotsTableName is the table holding one row per slot.
const SlotsTableName = "bondbook_slots"

// SlotModel is a row of the slots table.
type SlotModel struct {
	Name      string `gorm:"primaryKey;type:text"`
	Data      string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for SlotModel.
func (SlotModel) TableName() string { return SlotsTableName }

// SQL stores the slot as a row in a database table.
type SQL struct {
	db   *gorm.DB
	name string
	log  *zap.Logger
}

// NewSQL returns the storage for slot name in db. The table must exist, see
// Migrate.
func NewSQL(db *gorm.DB, name string, log *zap.Logger) *SQL {
	return &SQL{db: db, name: name, log: log}
}

// Migrate creates or updates the slots table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&SlotModel{}); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	if !db.Migrator().HasTable(&SlotModel{}) {
		return fmt.Errorf("failed to create table %s", SlotsTableName)
	}
	return nil
}

// OpenSQL connects to the postgres database in u and migrates the slots
// table. The "slot" query parameter names the slot.
func OpenSQL(ctx context.Context, u *url.URL, log *zap.Logger) (*SQL, error) {
	name := slotParam(u, "slot")
	db, err := gorm.Open(postgres.Open(u.String()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	db = db.WithContext(ctx)
	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Info("connected to postgres", zap.String("host", u.Host), zap.String("slot", name))
	return NewSQL(db, name, log), nil
}

// Load reads the slot row. A missing row is an empty book.
func (s *SQL) Load(ctx context.Context) ([]bondbook.Instrument, error) {
	var row SlotModel
	err := s.db.WithContext(ctx).Where("name = ?", s.name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Debug("no book in database yet", zap.String("slot", s.name))
		return []bondbook.Instrument{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read slot %q: %w", s.name, err)
	}
	return bondbook.UnmarshalInstruments([]byte(row.Data))
}

// Save upserts the slot row.
func (s *SQL) Save(ctx context.Context, instruments []bondbook.Instrument) error {
	data, err := bondbook.MarshalInstruments(instruments)
	if err != nil {
		return err
	}
	row := SlotModel{Name: s.name, Data: string(data), UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("cannot write slot %q: %w", s.name, err)
	}
	return nil
}
