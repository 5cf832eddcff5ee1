// Package history persists the most recent change set computed per zone so
// successive plan runs can report how the deletion surface moved.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/dnsops/zonectl/internal/dns/domain"
)

var bucketPlans = []byte("plans")

// Store is a bbolt-backed plan history keyed by zone name.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the history database at path and ensures the
// plans bucket exists.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening history db %s: %w", path, err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPlans)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Put stores the change set as the latest plan for its zone.
func (s *Store) Put(zone string, cs domain.ChangeSet) error {
	data, err := json.Marshal(cs)
	if err != nil {
		return fmt.Errorf("encoding plan for %s: %w", zone, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPlans).Put([]byte(zone), data)
	})
}

// Get returns the latest stored plan for zone, and whether one exists.
func (s *Store) Get(zone string) (domain.ChangeSet, bool, error) {
	var (
		cs    domain.ChangeSet
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketPlans).Get([]byte(zone))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &cs)
	})
	if err != nil {
		return domain.ChangeSet{}, false, fmt.Errorf("decoding plan for %s: %w", zone, err)
	}
	return cs, found, nil
}

// Zones lists the zone names with a stored plan.
func (s *Store) Zones() ([]string, error) {
	var zones []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPlans).ForEach(func(k, _ []byte) error {
			zones = append(zones, string(k))
			return nil
		})
	})
	return zones, err
}
