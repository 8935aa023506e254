package inbox

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ReviewItem is one row in queue/review.csv: a scan that could not be
// posted automatically and is waiting for the user (or a smarter parser).
type ReviewItem struct {
	QueuedAt  time.Time
	File      string
	Reason    string
	Amount    string // partial fields kept as text; may be empty
	Direction string
	Timestamp string
	Channel   string
	RawText   string
}

// queueHeader is the CSV header for review.csv.
const queueHeader = "queued_at,file,reason,amount,direction,timestamp,channel,raw_text"

const (
	queueFields  = 8
	queueFile    = "queue/review.csv"
	colQueuedAt  = 0
	colFile      = 1
	colReason    = 2
	colAmount    = 3
	colDirection = 4
	colTimestamp = 5
	colChannel   = 6
	colRawText   = 7
)

// AppendReview writes items to <root>/queue/review.csv, creating the file
// and header if needed.
func AppendReview(root string, items []ReviewItem) error {
	dir := filepath.Join(root, "queue")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating queue dir: %w", err)
	}

	path := filepath.Join(root, queueFile)
	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening review queue: %w", err)
	}
	defer f.Close()

	if needsHeader {
		if _, err := f.WriteString(queueHeader + "\n"); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	cw := csv.NewWriter(f)
	defer cw.Flush()
	for _, item := range items {
		row := make([]string, queueFields)
		row[colQueuedAt] = item.QueuedAt.Format(time.RFC3339)
		row[colFile] = item.File
		row[colReason] = item.Reason
		row[colAmount] = item.Amount
		row[colDirection] = item.Direction
		row[colTimestamp] = item.Timestamp
		row[colChannel] = item.Channel
		row[colRawText] = item.RawText
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing review row: %w", err)
		}
	}
	return cw.Error()
}

// ReadReview reads all queued items from <root>/queue/review.csv.
func ReadReview(root string) ([]ReviewItem, error) {
	f, err := os.Open(filepath.Join(root, queueFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening review queue: %w", err)
	}
	defer f.Close()

	return readReviewItems(f)
}

func readReviewItems(r io.Reader) ([]ReviewItem, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = queueFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading review queue: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var items []ReviewItem
	for i, rec := range records[1:] {
		queuedAt, err := time.Parse(time.RFC3339, rec[colQueuedAt])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing queued_at %q: %w", i+2, rec[colQueuedAt], err)
		}
		items = append(items, ReviewItem{
			QueuedAt:  queuedAt,
			File:      rec[colFile],
			Reason:    rec[colReason],
			Amount:    rec[colAmount],
			Direction: rec[colDirection],
			Timestamp: rec[colTimestamp],
			Channel:   rec[colChannel],
			RawText:   rec[colRawText],
		})
	}
	return items, nil
}
