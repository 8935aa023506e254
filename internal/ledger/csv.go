package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/daybook-dev/daybook/internal/model"
)

// Header is the CSV header for ledger.csv.
const Header = "entry_id,date,amount,direction,category_id,counterparty,channel,source,confidence,status,note"

const (
	numFields  = 11
	dateFormat = "2006-01-02"
	colEntryID = 0
	colDate    = 1
	colAmount  = 2
	colDir     = 3
	colCatID   = 4
	colCparty  = 5
	colChannel = 6
	colSource  = 7
	colConf    = 8
	colStatus  = 9
	colNote    = 10
)

// ReadTransactions reads all transactions from a ledger.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions to a ledger.csv writer (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendTransactions appends transactions to an existing ledger.csv writer (no header).
func AppendTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row ([]string).
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colEntryID] = txn.EntryID
	row[colDate] = txn.Date.Format(dateFormat)
	row[colAmount] = txn.Amount.StringFixed(2)
	row[colDir] = string(txn.Direction)
	row[colCatID] = strconv.Itoa(txn.CategoryID)
	row[colCparty] = txn.Counterparty
	row[colChannel] = string(txn.Channel)
	row[colSource] = string(txn.Source)

	if !txn.Confidence.IsZero() {
		row[colConf] = txn.Confidence.String()
	}

	row[colStatus] = string(txn.Status)
	row[colNote] = txn.Note

	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	catID, err := strconv.Atoi(record[colCatID])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing category_id %q: %w", record[colCatID], err)
	}

	var confidence decimal.Decimal
	if record[colConf] != "" {
		confidence, err = decimal.NewFromString(record[colConf])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing confidence %q: %w", record[colConf], err)
		}
	}

	return model.Transaction{
		EntryID:      record[colEntryID],
		Date:         date,
		Amount:       amount,
		Direction:    model.Direction(record[colDir]),
		CategoryID:   catID,
		Counterparty: record[colCparty],
		Channel:      model.Channel(record[colChannel]),
		Source:       model.TxSource(record[colSource]),
		Confidence:   confidence,
		Status:       model.TxStatus(record[colStatus]),
		Note:         record[colNote],
	}, nil
}
