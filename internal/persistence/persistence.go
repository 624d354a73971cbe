package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/LucasPMagno/induction-shrink-fit/internal/state"
	"github.com/LucasPMagno/induction-shrink-fit/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketSettings = "settings"

	keyControlSettings = "control"
)

// Persistence stores the operator settings so manual power and target
// temperature survive a restart.
type Persistence interface {
	Init() error

	LoadControlSettings() (state.ControlSettings, error)
	SaveControlSettings(settings state.ControlSettings) error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	return &persistence{
		dbPath: dbPath,
	}
}

func (p persistence) Init() (err error) {
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveControlSettings writes the given settings to persistence.
func (p persistence) SaveControlSettings(settings state.ControlSettings) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketSettings))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(keyControlSettings), data)
	})
}

// LoadControlSettings reads the last saved settings from persistence.
func (p persistence) LoadControlSettings() (state.ControlSettings, error) {
	db, err := p.openPersistence()
	if err != nil {
		return state.DefaultControlSettings(), err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	settings := state.DefaultControlSettings()
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketSettings))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(keyControlSettings))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, &settings)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved settings: %v", err)
			settings = state.DefaultControlSettings()
			if err := b.Delete([]byte(keyControlSettings)); err != nil {
				ui.Error("Unable to delete corrupt settings: %v", err)
			}
			return nil
		}

		return nil
	})

	return settings, err
}
