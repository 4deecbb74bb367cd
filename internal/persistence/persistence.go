package persistence

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/bed2go/internal/safety"
	"github.com/markusressel/bed2go/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketSafetyTrips = "safetyTrips"
)

// TripRecord is a journal entry of a thermal safety trip
type TripRecord struct {
	ID uint64 `json:"id"`
	// Segment is the 1-based number of the segment that exceeded the ceiling
	Segment     int       `json:"segment"`
	Temperature float64   `json:"temperature"`
	Ceiling     float64   `json:"ceiling"`
	At          time.Time `json:"at"`
}

// Persistence is the diagnostic journal of the controller.
// It is never used to restore controller state.
type Persistence interface {
	Init() error

	SaveSafetyTrip(trip safety.Trip) (err error)
	LoadSafetyTrips() ([]TripRecord, error)
	DeleteSafetyTrips() (err error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func sequenceKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}

// SaveSafetyTrip appends the given trip to the journal
func (p persistence) SaveSafetyTrip(trip safety.Trip) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketSafetyTrips))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		id, err := b.NextSequence()
		if err != nil {
			return err
		}

		data, err := json.Marshal(TripRecord{
			ID:          id,
			Segment:     trip.Channel + 1,
			Temperature: trip.Temperature,
			Ceiling:     trip.Ceiling,
			At:          trip.At,
		})
		if err != nil {
			return err
		}
		return b.Put(sequenceKey(id), data)
	})
}

// LoadSafetyTrips returns all journal entries, oldest first
func (p persistence) LoadSafetyTrips() ([]TripRecord, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var records []TripRecord
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketSafetyTrips))
		if b == nil {
			// nothing recorded yet
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var record TripRecord
			if err := json.Unmarshal(v, &record); err != nil {
				ui.Warning("Unable to unmarshal safety trip %d: %v", binary.BigEndian.Uint64(k), err)
				return nil
			}
			records = append(records, record)
			return nil
		})
	})

	return records, err
}

// DeleteSafetyTrips removes all journal entries
func (p persistence) DeleteSafetyTrips() error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketSafetyTrips))
		if b == nil {
			// no journal yet
			return nil
		}
		return tx.DeleteBucket([]byte(BucketSafetyTrips))
	})
}
