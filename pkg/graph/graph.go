package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/rootfront/pkg/errors"
	"github.com/matzehuels/rootfront/pkg/tree"
)

// ReadGraph decodes one graph document from r. Both the native and the
// NetworkX node-link layouts are accepted. Undecodable input and documents
// that do not form a valid graph are INVALID_FORMAT errors.
func ReadGraph(r io.Reader) (*tree.Graph, error) {
	var doc Graph
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}
	g, err := ToTree(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "build graph")
	}
	return g, nil
}

// ReadGraphFile is [ReadGraph] on the file at path. A missing file is a
// FILE_NOT_FOUND error.
func ReadGraphFile(path string) (*tree.Graph, error) {
	f, err := os.Open(path)
	switch {
	case os.IsNotExist(err):
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", path)
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadGraph(f)
}

// WriteGraph encodes g as indented native-layout JSON, nodes in ID order.
func WriteGraph(g *tree.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromTree(g)); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// MarshalGraph returns the [WriteGraph] encoding of g. Equal graphs marshal
// to equal bytes, which makes the output usable as a cache key input.
func MarshalGraph(g *tree.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes the [WriteGraph] encoding of g to path.
func WriteGraphFile(g *tree.Graph, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteGraph(g, f)
}
