package targa

import (
	"bytes"
	"io/ioutil"
	"runtime"

	"github.com/klauspost/compress/zstd"
)

func compress(raw []byte) ([]byte, error) {
	b := new(bytes.Buffer)
	enc, err := zstd.NewWriter(b, zstd.WithEncoderConcurrency(runtime.NumCPU()))
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func decompress(b []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return ioutil.ReadAll(dec)
}
