package lib

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/blevesearch/bleve"
	"github.com/boltdb/bolt"
	"github.com/google/uuid"
)

var (
	MAPS_BKT    = []byte("maps")
	ENTRIES_BKT = []byte("entries")
)

const (
	dbName    = "g85.db"
	indexName = "g85.index"
)

/*
	Entry describes a stored map. It is what the search index sees.
*/
type Entry struct {
	ID              string
	Name            string
	LotId           string
	ProductId       string
	SubstrateNumber string
	Rows            int
	Columns         int
	Defects         int
	Imported        time.Time
}

func newEntry(id, name string, m *WaferMap) *Entry {
	rows, cols := m.Dims()
	return &Entry{
		ID:              id,
		Name:            name,
		LotId:           m.Header["LotId"],
		ProductId:       m.Header["ProductId"],
		SubstrateNumber: m.Attributes.SubstrateNumber,
		Rows:            rows,
		Columns:         cols,
		Defects:         m.Count(Defect),
		Imported:        time.Now().UTC(),
	}
}

// Library keeps wafer maps on disk: maps and entries in bolt, entries also
// in a bleve index for Find.
type Library struct {
	root  string
	db    *bolt.DB
	index bleve.Index
}

/*
	Create or open library from root
*/
func NewLibrary(root string) (*Library, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(filepath.Join(root, dbName), 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(MAPS_BKT); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(ENTRIES_BKT)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	var index bleve.Index
	ipath := filepath.Join(root, indexName)
	if Exists(ipath) {
		index, err = bleve.Open(ipath)
	} else {
		index, err = bleve.New(ipath, bleve.NewIndexMapping())
	}
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Library{
		root:  root,
		db:    db,
		index: index,
	}, nil
}

func (l *Library) Root() string {
	return l.root
}

func (l *Library) Close() error {
	ierr := l.index.Close()
	if err := l.db.Close(); err != nil {
		return err
	}

	return ierr
}

// Add stores m under a new id.
func (l *Library) Add(name string, m *WaferMap) (*Entry, error) {
	entry := newEntry(uuid.NewString(), name, m)

	mdata, err := Marshal(m)
	if err != nil {
		return nil, err
	}
	edata, err := Marshal(entry)
	if err != nil {
		return nil, err
	}

	err = l.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(MAPS_BKT).Put([]byte(entry.ID), mdata); err != nil {
			return err
		}
		return tx.Bucket(ENTRIES_BKT).Put([]byte(entry.ID), edata)
	})
	if err != nil {
		return nil, err
	}

	if err := l.index.Index(entry.ID, entry); err != nil {
		l.db.Update(func(tx *bolt.Tx) error {
			tx.Bucket(MAPS_BKT).Delete([]byte(entry.ID))
			return tx.Bucket(ENTRIES_BKT).Delete([]byte(entry.ID))
		})
		return nil, fmt.Errorf("indexing %s: %w", entry.ID, err)
	}

	return entry, nil
}

// Get loads a stored map.
func (l *Library) Get(id string) (*WaferMap, error) {
	m := &WaferMap{}
	err := l.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(MAPS_BKT).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("no map with id %s", id)
		}

		return Unmarshal(data, m)
	})
	if err != nil {
		return nil, err
	}

	/*
		gob leaves empty maps nil
	*/
	if m.Header == nil {
		m.Header = Header{}
	}
	if m.Dies == nil {
		m.Dies = make(map[Coord]string)
	}
	if m.Defects == nil {
		m.Defects = make(map[Coord]DefectRecord)
	}

	return m, nil
}

func (l *Library) Entry(id string) (*Entry, error) {
	entry := &Entry{}
	err := l.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(ENTRIES_BKT).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("no map with id %s", id)
		}

		return Unmarshal(data, entry)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Entries lists every stored map, oldest first.
func (l *Library) Entries() ([]*Entry, error) {
	entries := []*Entry{}
	err := l.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(ENTRIES_BKT).ForEach(func(k, v []byte) error {
			entry := &Entry{}
			if err := Unmarshal(v, entry); err != nil {
				return err
			}

			entries = append(entries, entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Imported.Before(entries[j].Imported)
	})

	return entries, nil
}

func (l *Library) Delete(id string) error {
	err := l.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(MAPS_BKT).Delete([]byte(id)); err != nil {
			return err
		}
		return tx.Bucket(ENTRIES_BKT).Delete([]byte(id))
	})
	if err != nil {
		return err
	}

	return l.index.Delete(id)
}

/*
	Find stored maps whose lot, product, substrate or name match text
*/
func (l *Library) Find(text string) ([]*Entry, error) {
	query := bleve.NewMatchQuery(text)
	request := bleve.NewSearchRequest(query)
	request.Size = 50

	result, err := l.index.Search(request)
	if err != nil {
		return nil, err
	}

	entries := []*Entry{}
	for _, hit := range result.Hits {
		entry, err := l.Entry(hit.ID)
		if err != nil {
			continue
		}

		entries = append(entries, entry)
	}

	return entries, nil
}
