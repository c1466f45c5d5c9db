// Package feed decodes order-flow messages from the CSV files the replay
// tooling consumes. Columns are Time,Type,OrderID,Size,Price,Direction;
// the Time column is pacing metadata and is not part of the event.
package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"huginn/internal/common"
)

// ErrBadRecord marks a row that could not be decoded. The reader keeps
// its position, so callers may skip the row and continue.
var ErrBadRecord = errors.New("bad feed record")

// Reader streams events off a message file. It tolerates an optional
// header row and both encodings of the type column: numeric codes
// (1 limit, 2 cancel, 3 delete, 4/5 execute, 7 halt) and the synthetic
// file's Limit/Market names.
type Reader struct {
	csv  *csv.Reader
	line int
}

func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 6
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr}
}

// Next returns the next event, or io.EOF at end of feed.
func (r *Reader) Next() (common.Event, error) {
	record, err := r.csv.Read()
	if err != nil {
		return common.Event{}, err
	}
	r.line++
	if r.line == 1 && isHeader(record) {
		return r.Next()
	}
	ev, err := parseRecord(record)
	if err != nil {
		return common.Event{}, fmt.Errorf("%w: line %d: %v", ErrBadRecord, r.line, err)
	}
	return ev, nil
}

// ReadAll drains the feed into a slice.
func (r *Reader) ReadAll() ([]common.Event, error) {
	var events []common.Event
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
}

func isHeader(record []string) bool {
	_, err := strconv.ParseFloat(record[0], 64)
	return err != nil
}

func parseRecord(record []string) (common.Event, error) {
	kind, err := parseKind(record[1])
	if err != nil {
		return common.Event{}, err
	}
	orderID, err := strconv.ParseUint(record[2], 10, 64)
	if err != nil {
		return common.Event{}, fmt.Errorf("order id %q: %v", record[2], err)
	}
	size, err := strconv.ParseUint(record[3], 10, 64)
	if err != nil {
		return common.Event{}, fmt.Errorf("size %q: %v", record[3], err)
	}
	price, err := parsePrice(record[4])
	if err != nil {
		return common.Event{}, err
	}
	side, err := parseSide(record[5])
	if err != nil {
		return common.Event{}, err
	}
	return common.Event{
		Kind:    kind,
		OrderID: orderID,
		Price:   price,
		Size:    size,
		Side:    side,
	}, nil
}

func parseKind(field string) (common.EventKind, error) {
	switch strings.TrimSpace(field) {
	case "1", "Limit":
		return common.NewLimit, nil
	case "2":
		return common.Cancel, nil
	case "3":
		return common.Delete, nil
	case "4", "5":
		return common.Execute, nil
	case "7":
		return common.Halt, nil
	case "Market":
		return common.NewMarket, nil
	}
	return 0, fmt.Errorf("unrecognised type %q", field)
}

// parsePrice treats an empty field as absent, which market orders use.
func parsePrice(field string) (decimal.Decimal, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return decimal.Decimal{}, nil
	}
	price, err := decimal.NewFromString(field)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("price %q: %v", field, err)
	}
	return price, nil
}

func parseSide(field string) (common.Side, error) {
	switch strings.TrimSpace(field) {
	case "1":
		return common.Buy, nil
	case "-1":
		return common.Sell, nil
	}
	return 0, fmt.Errorf("unrecognised direction %q", field)
}
