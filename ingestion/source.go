package ingestion

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/poiesic/corpus/core"
)

// recordDocument is the on-disk JSON shape of a document record.
type recordDocument struct {
	Id       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

func (d *recordDocument) toRecord() *core.Record {
	return &core.Record{
		Id:       d.Id,
		Title:    d.Title,
		Content:  d.Content,
		Category: d.Category,
	}
}

// ReadRecords decodes document records from JSON. Accepts either a JSON
// array of objects or a stream of concatenated objects (JSON Lines).
func ReadRecords(r io.Reader) ([]*core.Record, error) {
	br := bufio.NewReader(r)

	first, err := peekNonSpace(br)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}

	if first == '[' {
		var docs []recordDocument
		if err := json.NewDecoder(br).Decode(&docs); err != nil {
			return nil, fmt.Errorf("decoding records: %w", err)
		}
		records := make([]*core.Record, len(docs))
		for i := range docs {
			records[i] = docs[i].toRecord()
		}
		return records, nil
	}

	var records []*core.Record
	dec := json.NewDecoder(br)
	for {
		var doc recordDocument
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decoding record %d: %w", len(records), err)
		}
		records = append(records, doc.toRecord())
	}
}

// peekNonSpace returns the first non-whitespace byte without consuming it.
func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if !bytes.ContainsRune([]byte(" \t\r\n"), rune(b)) {
			return b, br.UnreadByte()
		}
	}
}

// LoadRecords reads document records from a JSON file.
func LoadRecords(path string) ([]*core.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecords(f)
}
