package jsonstore

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/journal/pkg/types"
)

// indent matches the layout of journal files written by earlier tools.
const indent = "    "

// defaultFileMode applies to files that do not exist yet. A rewrite keeps
// the permissions of the file it replaces.
const defaultFileMode fs.FileMode = 0o644

// readElements reads the file at path as a JSON array of objects and
// returns each element exactly as it appears in the file. A zero-byte file
// is an empty sequence. Any other failure is returned as a
// *types.ReadError; a missing file wraps fs.ErrNotExist.
func readElements(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.ReadError{Path: path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []json.RawMessage{}, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, &types.ReadError{Path: path, Err: fmt.Errorf("%w: %w", types.ErrMalformedStore, err)}
	}
	for i, e := range elems {
		if b := bytes.TrimSpace(e); len(b) == 0 || b[0] != '{' {
			return nil, &types.ReadError{Path: path, Err: fmt.Errorf("%w: element %d is not an object", types.ErrMalformedStore, i)}
		}
	}
	if elems == nil {
		elems = []json.RawMessage{}
	}
	return elems, nil
}

// readArray reads the file at path as a sequence of records. Non-string
// values from hand-edited files are kept in their JSON form, with numbers
// spelled exactly as in the file.
func readArray(path string) ([]types.Record, error) {
	elems, err := readElements(path)
	if err != nil {
		return nil, err
	}
	records := make([]types.Record, 0, len(elems))
	for i, e := range elems {
		rec, err := decodeRecord(e)
		if err != nil {
			return nil, &types.ReadError{Path: path, Err: fmt.Errorf("%w: element %d: %w", types.ErrMalformedStore, i, err)}
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeRecord(elem json.RawMessage) (types.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(elem))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	rec := make(types.Record, len(obj))
	for k, v := range obj {
		s, ok := v.(string)
		if !ok {
			b, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			s = string(b)
		}
		rec[k] = s
	}
	return rec, nil
}

// encodeRecord renders rec as one compact array element. HTML characters
// are written as-is, the same way existing elements are carried over.
func encodeRecord(rec types.Record) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return nil, err
	}
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// fileMode returns the permissions a rewrite of path should carry.
func fileMode(path string) fs.FileMode {
	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
		return fi.Mode().Perm()
	}
	return defaultFileMode
}

// writeArray atomically writes elems to path as an indented JSON array
// using the temp-file, fsync, rename pattern. Elements are re-indented but
// their tokens are left as they are. The temp file lives in the same
// directory so the rename stays on one volume. On failure the temp file is
// removed and the canonical file is left as it was.
func writeArray(path string, elems []json.RawMessage) error {
	if elems == nil {
		elems = []json.RawMessage{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(elems); err != nil {
		return &types.WriteError{Path: path, Op: "serialize", Err: err}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return &types.WriteError{Path: path, Op: "create temp file", Err: err}
	}
	tmpName := tmp.Name()

	fail := func(op string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &types.WriteError{Path: path, Op: op, Err: err}
	}

	if err := tmp.Chmod(fileMode(path)); err != nil {
		return fail("chmod temp file", err)
	}
	w := bufio.NewWriter(tmp)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fail("write temp file", err)
	}
	if err := w.Flush(); err != nil {
		return fail("flush buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &types.WriteError{Path: path, Op: "close temp file", Err: err}
	}
	if err := fileOps.rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &types.WriteError{Path: path, Op: "rename temp file", Err: err}
	}
	return nil
}
