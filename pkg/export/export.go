// Package export writes generated models to disk.
package export

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-velgen/pkg/pipeline/model"
)

var ErrNilVelocity = errors.New("export: velocity is nil")

// WriteRaw writes vel as little-endian float32 samples, x-major: the ny
// samples of column 0 first, then column 1, and so on.
func WriteRaw(w io.Writer, vel *mat.Dense) error {
	if vel == nil {
		return ErrNilVelocity
	}
	nx, ny := vel.Dims()
	bw := bufio.NewWriter(w)
	buf := make([]byte, 4*ny)
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			binary.LittleEndian.PutUint32(buf[4*iy:], math.Float32bits(float32(vel.At(ix, iy))))
		}
		if _, err := bw.Write(buf); err != nil {
			return errors.Wrapf(err, "unable to write column %d", ix)
		}
	}

	return errors.Wrap(bw.Flush(), "unable to flush")
}

// ReadRaw reads an nx by ny field written by WriteRaw.
func ReadRaw(r io.Reader, nx, ny int) (*mat.Dense, error) {
	buf := make([]byte, 4*nx*ny)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "unable to read samples")
	}
	data := make([]float64, nx*ny)
	for i := range data {
		data[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:])))
	}

	return mat.NewDense(nx, ny, data), nil
}

// WriteRawFile writes vel to path, creating parent directories.
func WriteRawFile(path string, vel *mat.Dense) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteRaw(w, vel)
	})
}

// WriteHistory writes the provenance log as a YAML mapping. Keys keep their
// recording order and every key maps to the list of values recorded under it.
func WriteHistory(w io.Writer, h *model.History) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	if h != nil {
		for _, key := range h.Keys() {
			values := &yaml.Node{}
			if err := values.Encode(h.All(key)); err != nil {
				return errors.Wrapf(err, "unable to encode %s", key)
			}
			doc.Content = append(doc.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: key},
				values,
			)
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "unable to encode history")
	}

	return errors.Wrap(enc.Close(), "unable to close history encoder")
}

// WriteHistoryFile writes the provenance log to path.
func WriteHistoryFile(path string, h *model.History) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteHistory(w, h)
	})
}

func writeFile(path string, write func(w io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "unable to create directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "unable to close %s", path)
		}
	}()

	return write(f)
}
