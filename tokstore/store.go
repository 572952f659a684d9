// Package tokstore persists discovered token metadata and caches call
// results on disk, using a bolt key-value file next to a sqlite database.
package tokstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/EllipX/libtoken/tokmeta"
	"github.com/KarpelesLab/emitter"
	"github.com/KarpelesLab/xuid"
	_ "github.com/glebarez/go-sqlite"
	bolt "go.etcd.io/bbolt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type Store struct {
	dataDir string
	db      *bolt.DB
	sql     *gorm.DB
	em      *emitter.Hub
}

// Token is a persisted token metadata record.
type Token struct {
	Id          *xuid.XUID `gorm:"primaryKey"`
	ChainId     string     `gorm:"index:chainAddr,unique"`
	Address     string     `gorm:"index:chainAddr,unique" json:"address"`
	Name        string     `json:"name"`
	Symbol      string     `json:"symbol"`
	Decimals    uint8      `json:"decimals"`
	TotalSupply string     `json:"totalSupply"`
	Created     time.Time  `gorm:"autoCreateTime"`
	Updated     time.Time  `gorm:"autoUpdateTime"`
}

// Open creates or opens the store in dataDir.
func Open(dataDir string) (*Store, error) {
	s := &Store{dataDir: dataDir, em: emitter.New()}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	// make sure dataDir exists and is a directory
	if st, err := os.Stat(s.dataDir); err != nil {
		if err := os.MkdirAll(s.dataDir, 0755); err != nil {
			return err
		}
	} else if !st.IsDir() {
		return errors.New("dataDir exists but is not a directory")
	}

	var err error

	// open bolt db
	s.db, err = bolt.Open(filepath.Join(s.dataDir, "data.db"), 0600, nil)
	if err != nil {
		return err
	}

	// open sql database
	s.sql, err = gorm.Open(sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: filepath.Join(s.dataDir, "sql.db") + "?_pragma=journal_mode(WAL)"}), &gorm.Config{NamingStrategy: schema.NamingStrategy{SingularTable: true, NoLowerCase: true}})
	if err != nil {
		return err
	}

	return s.sql.AutoMigrate(&Token{})
}

func (s *Store) Close() error {
	if db, err := s.sql.DB(); err == nil {
		db.Close()
	}
	return s.db.Close()
}

func (s *Store) Emitter() *emitter.Hub {
	return s.em
}

// SaveMetadata records m for the given chain, emitting a token:discovered
// event when the token was not known before.
func (s *Store) SaveMetadata(chainId string, m *tokmeta.Metadata) (*Token, error) {
	t, err := s.ByAddress(chainId, m.Address)
	isNew := err != nil
	if isNew {
		id, err := xuid.NewRandom("tk")
		if err != nil {
			return nil, err
		}
		t = &Token{Id: id, ChainId: chainId, Address: m.Address}
	}
	t.Name = m.Name
	t.Symbol = m.Symbol
	t.Decimals = m.Decimals
	if m.TotalSupply != nil {
		t.TotalSupply = m.TotalSupply.String()
	}

	if err := s.sql.Save(t).Error; err != nil {
		return nil, err
	}
	if isNew {
		s.em.Emit(context.Background(), "token:discovered", t)
	}
	return t, nil
}

// ByAddress returns the stored token for the given chain and contract
// address.
func (s *Store) ByAddress(chainId, address string) (*Token, error) {
	var t Token
	if err := s.sql.Where(map[string]any{"ChainId": chainId, "Address": address}).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// TokenById returns the stored token with the given id.
func (s *Store) TokenById(id *xuid.XUID) (*Token, error) {
	if id.Prefix != "tk" {
		return nil, fmt.Errorf("invalid key for token: %s", id.Prefix)
	}
	var t Token
	if err := s.sql.Where(map[string]any{"Id": id}).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all stored tokens sorted by name.
func (s *Store) List() ([]Token, error) {
	var res []Token
	if err := s.sql.Order("Name ASC").Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Store) Delete(t *Token) error {
	return s.sql.Delete(t).Error
}
