package storage

import (
	"fmt"
	"io"
)

// Responsible for encoding and decoding record streams sent to and retrieved
// from disk. A record file has no header; it is simply records back to back
type Codec struct{}

// Encode lays out records back to back in a byte array ready to be written
// to a data file
func (c *Codec) Encode(records []Record) []byte {
	data := make([]byte, 0, len(records)*RecordSize)
	for _, rec := range records {
		data = append(data, rec[:]...)
	}

	return data
}

// Decode splits a byte array into records. Fails if data is not a whole
// number of records
func (c *Codec) Decode(data []byte) ([]Record, error) {
	if len(data)%RecordSize != 0 {
		return nil, fmt.Errorf("data length %d is not a multiple of record size %d", len(data), RecordSize)
	}

	records := make([]Record, 0, len(data)/RecordSize)
	for i := 0; i < len(data); i += RecordSize {
		var rec Record
		copy(rec[:], data[i:i+RecordSize])
		records = append(records, rec)
	}

	return records, nil
}

// DecodeFromReader reads the next record from reader. Returns io.EOF when the
// reader is exhausted on a record boundary and io.ErrUnexpectedEOF when a
// partial record is found
func (c *Codec) DecodeFromReader(reader io.Reader) (Record, error) {
	var rec Record
	if _, err := io.ReadFull(reader, rec[:]); err == io.EOF {
		return rec, err
	} else if err != nil {
		return rec, fmt.Errorf("failed to read record: %w", err)
	}

	return rec, nil
}

// EncodeToWriter writes records to writer
func (c *Codec) EncodeToWriter(writer io.Writer, records []Record) error {
	data := c.Encode(records)
	if n, err := writer.Write(data); n != len(data) {
		return fmt.Errorf("failed to write all records. wrote=%d, expected=%d", n, len(data))
	} else if err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	return nil
}
