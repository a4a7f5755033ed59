package repo

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Packing file: one item per line, "trip,category,name,packed", where packed
// is the literal True or False.
const (
	packingFields = 4
	packedTrue    = "True"
	packedFalse   = "False"
)

// encodePacking writes items one per line. Fields that contain a comma or a
// quote are quoted; plain fields are written as is.
func encodePacking(w io.Writer, items []domain.PackingItem) error {
	cw := csv.NewWriter(w)
	for _, it := range items {
		packed := packedFalse
		if it.Packed {
			packed = packedTrue
		}
		//nolint:errcheck // errors surface through cw.Error after Flush.
		cw.Write([]string{it.Trip, it.Category, it.Name, packed})
	}
	cw.Flush()
	return cw.Error()
}

// badLine describes a packing line that was skipped during decoding.
type badLine struct {
	Line   int
	Reason string
}

// decodePacking parses the packing file. Lines that do not hold exactly four
// fields are skipped and reported in the second return value instead of
// failing the whole load.
func decodePacking(b []byte) ([]domain.PackingItem, []badLine, error) {
	cr := csv.NewReader(bytes.NewReader(b))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var (
		items   []domain.PackingItem
		skipped []badLine
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			skipped = append(skipped, badLine{Line: perr.Line, Reason: perr.Err.Error()})
			continue
		}
		if err != nil {
			return nil, nil, err
		}

		if len(rec) != packingFields {
			line, _ := cr.FieldPos(0)
			skipped = append(skipped, badLine{Line: line, Reason: "wrong number of fields"})
			continue
		}
		items = append(items, domain.PackingItem{
			Trip:     rec[0],
			Category: rec[1],
			Name:     rec[2],
			Packed:   strings.TrimSpace(rec[3]) == packedTrue,
		})
	}
	return items, skipped, nil
}
