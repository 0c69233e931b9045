// Copyright 2026 The Execlog Authors. All rights reserved. Use of this
// source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xmlstream

import (
	"bytes"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// Source identifies where a document comes from: a file path, an
// already-open reader, or in-memory bytes. The zero Source is invalid.
type Source struct {
	name string
	path string
	r    io.Reader
	data []byte
}

// FilePath returns a Source reading from the file at path. The file is
// opened by Open and closed when the Reader is closed.
func FilePath(path string) Source {
	return Source{name: path, path: path}
}

// FromReader returns a Source reading from r. The caller retains
// ownership of r; name is used only to identify the source in errors.
func FromReader(name string, r io.Reader) Source {
	return Source{name: name, r: r}
}

// FromBytes returns a Source reading the document from an in-memory
// buffer.
func FromBytes(name string, data []byte) Source {
	return Source{name: name, data: data}
}

// FromString returns a Source reading the document from an in-memory
// string.
func FromString(name, doc string) Source {
	return Source{name: name, data: []byte(doc)}
}

// Name returns the identity of the source, for error messages and
// result attribution.
func (s Source) Name() string {
	if s.name != "" {
		return s.name
	}
	return "<in-memory>"
}

// Open acquires the underlying resource and returns a Reader over it.
// The returned Reader owns any resource Open acquired and releases it
// in Close, which must be called on every exit path.
func (s Source) Open() (*Reader, error) {
	switch {
	case s.path != "":
		f, err := os.Open(s.path)
		if err != nil {
			return nil, err
		}
		return newReader(s.Name(), f, f), nil
	case s.r != nil:
		return newReader(s.Name(), s.r, nil), nil
	case s.data != nil:
		return newReader(s.Name(), bytes.NewReader(s.data), nil), nil
	}
	return nil, errors.New("xmlstream: empty source")
}
