package targa

import (
	"database/sql"
	"errors"
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/bodgit/targa/tga"
	_ "github.com/mattn/go-sqlite3"
)

// Catalog is a sqlite database of decoded TGA images.
type Catalog struct {
	db *sql.DB
}

// Entry describes one catalogued image.
type Entry struct {
	SHA1   string
	Type   tga.DataType
	Width  int
	Height int
	Depth  int
	// CRC is the CRC-32 of the decoded pixels
	CRC string
}

// NewCatalog opens or creates a catalog in file.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS image (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, type INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, depth INTEGER NOT NULL, crc TEXT NOT NULL, pixels BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS file (path TEXT NOT NULL UNIQUE, image_id INTEGER NOT NULL, FOREIGN KEY(image_id) REFERENCES image(id))"); err != nil {
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add decodes the TGA image in file and records it. Adding identical
// content under another path only records the new path.
func (c *Catalog) Add(file string) (*Entry, error) {
	path, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}

	b, sha, err := readFile(path)
	if err != nil {
		return nil, err
	}

	g, err := tga.DecodeBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	e := &Entry{
		SHA1:   sha,
		Type:   g.Type,
		Width:  g.Width,
		Height: g.Height,
		Depth:  g.Depth,
		CRC:    crcGrid(g),
	}

	tx, err := c.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	id, err := addImage(tx, e, g)
	if err != nil {
		return nil, err
	}

	if err := addFile(tx, path, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return e, nil
}

func addImage(tx *sql.Tx, e *Entry, g *tga.Grid) (int64, error) {
	var id int64
	switch err := tx.QueryRow("SELECT id FROM image WHERE sha1 = ?", e.SHA1).Scan(&id); err {
	case sql.ErrNoRows:
		pixels, err := compress(g.Bytes())
		if err != nil {
			return 0, err
		}
		result, err := tx.Exec("INSERT INTO image (sha1, type, width, height, depth, crc, pixels) VALUES (?, ?, ?, ?, ?, ?, ?)", e.SHA1, int(e.Type), e.Width, e.Height, e.Depth, e.CRC, pixels)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

func addFile(tx *sql.Tx, path string, image int64) error {
	if _, err := tx.Exec("INSERT OR REPLACE INTO file (path, image_id) VALUES (?, ?)", path, image); err != nil {
		return err
	}
	return nil
}

// Find returns the entry with the given SHA-1, or nil if there is none.
func (c *Catalog) Find(sha string) (*Entry, error) {
	e := Entry{SHA1: sha}
	var typ int
	switch err := c.db.QueryRow("SELECT type, width, height, depth, crc FROM image WHERE sha1 = ?", sha).Scan(&typ, &e.Width, &e.Height, &e.Depth, &e.CRC); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		e.Type = tga.DataType(typ)
		return &e, nil
	default:
		return nil, err
	}
}

// Paths returns every file path recorded for the given SHA-1.
func (c *Catalog) Paths(sha string) ([]string, error) {
	rows, err := c.db.Query("SELECT f.path FROM file AS f JOIN image AS i ON f.image_id = i.id WHERE i.sha1 = ? ORDER BY f.path", sha)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}

// List returns all catalogued images ordered by SHA-1.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query("SELECT sha1, type, width, height, depth, crc FROM image ORDER BY sha1")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var typ int
		if err := rows.Scan(&e.SHA1, &typ, &e.Width, &e.Height, &e.Depth, &e.CRC); err != nil {
			return nil, err
		}
		e.Type = tga.DataType(typ)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Grid returns the decoded pixels stored for the given SHA-1, or nil if
// there is no such image.
func (c *Catalog) Grid(sha string) (*tga.Grid, error) {
	var typ int
	var crc string
	var pixels []byte
	g := new(tga.Grid)
	switch err := c.db.QueryRow("SELECT type, width, height, depth, crc, pixels FROM image WHERE sha1 = ?", sha).Scan(&typ, &g.Width, &g.Height, &g.Depth, &crc, &pixels); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
	default:
		return nil, err
	}
	g.Type = tga.DataType(typ)

	b, err := decompress(pixels)
	if err != nil {
		return nil, err
	}
	if len(b) != g.Width*g.Height*4 {
		return nil, errors.New("stored pixels do not match image dimensions")
	}

	g.Pix = make([]color.NRGBA, g.Width*g.Height)
	for i := range g.Pix {
		g.Pix[i] = color.NRGBA{b[i*4], b[i*4+1], b[i*4+2], b[i*4+3]}
	}

	if crcGrid(g) != crc {
		return nil, errors.New("stored pixels fail checksum")
	}

	return g, nil
}
