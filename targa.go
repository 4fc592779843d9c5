/*
Package targa is a library for cataloguing collections of Truevision TGA
images.

Images are decoded with the tga package and recorded in a sqlite database
keyed by the SHA-1 of the file contents, along with their dimensions and the
decoded pixels.
*/
package targa

import "log"

// Targa scans directories of TGA images into a Catalog.
type Targa struct {
	catalog *Catalog
	logger  *log.Logger
}

// New opens or creates the catalog database at file.
func New(file string, logger *log.Logger) (*Targa, error) {
	c, err := NewCatalog(file)
	if err != nil {
		return nil, err
	}
	return &Targa{
		catalog: c,
		logger:  logger,
	}, nil
}

// Catalog returns the underlying catalog.
func (t *Targa) Catalog() *Catalog {
	return t.catalog
}

// Close closes the catalog database.
func (t *Targa) Close() error {
	return t.catalog.Close()
}
