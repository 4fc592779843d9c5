package targa

import (
	"crypto/sha1"
	"fmt"
	"hash/crc32"
	"io"
	"io/ioutil"
	"os"

	"github.com/bodgit/targa/tga"
)

// readFile returns the contents of file and its SHA-1 as upper case hex.
func readFile(file string) ([]byte, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	h := sha1.New()
	b, err := ioutil.ReadAll(io.TeeReader(f, h))
	if err != nil {
		return nil, "", err
	}

	return b, fmt.Sprintf("%X", h.Sum(nil)), nil
}

// crcGrid computes the CRC-32 of the decoded pixels as R, G, B, A bytes in
// stored order.
func crcGrid(g *tga.Grid) string {
	return fmt.Sprintf("%.*X", crc32.Size<<1, crc32.ChecksumIEEE(g.Bytes()))
}
