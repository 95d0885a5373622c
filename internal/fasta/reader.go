package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one parsed FASTA entry. ID is the header's first
// whitespace-delimited token; Seq is the concatenated sequence with line
// breaks removed.
type Record struct {
	ID  string
	Seq string
}

// ReadFile parses every record of a FASTA file into memory. Locus files
// are small, so whole-file reads keep the pipeline simple. Gzipped input
// is detected by magic number or .gz suffix.
func ReadFile(path string) ([]Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	records, err := Read(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Read parses FASTA records from r. Blank lines are skipped; sequence
// lines belonging to one record are concatenated. Sequence data before
// the first header is an error.
func Read(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	const maxLine = 16 * 1024 * 1024
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		records []Record
		id      string
		started bool
		seq     bytes.Buffer
	)

	flush := func() {
		records = append(records, Record{ID: id, Seq: seq.String()})
		seq.Reset()
	}

	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if started {
				flush()
			}
			id = parseHeaderID(line[1:])
			started = true
			continue
		}
		if !started {
			return nil, fmt.Errorf("sequence data before first header")
		}
		seq.Write(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("fasta scan: %w", err)
	}
	if started {
		flush()
	}

	return records, nil
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}

// openReader opens path for reading, transparently unwrapping gzip.
// Detection uses the magic number (1F 8B) with the .gz suffix as fallback.
func openReader(path string) (io.ReadCloser, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, err
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &gzipReadCloser{Reader: gr, gz: gr, file: fh}, nil
	}
	return fh, nil
}

// gzipReadCloser closes both the gzip layer and the underlying file.
type gzipReadCloser struct {
	io.Reader
	gz   *gzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Close() error {
	err := g.gz.Close()
	if cerr := g.file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
