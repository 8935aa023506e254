package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/daybook-dev/daybook/internal/id"
	"github.com/daybook-dev/daybook/internal/model"
)

// Service provides business logic for ledger transactions.
type Service struct {
	root string
	cats CategoryChecker
}

// NewService creates a ledger Service.
func NewService(root string, cats CategoryChecker) *Service {
	return &Service{root: root, cats: cats}
}

// AddParams holds parameters for recording a transaction.
type AddParams struct {
	Date         time.Time
	Amount       decimal.Decimal
	Direction    model.Direction
	CategoryID   int
	Counterparty string
	Channel      model.Channel
	Source       model.TxSource
	Confidence   decimal.Decimal
	Status       model.TxStatus
	Note         string
}

// Add validates a new transaction against the month's existing rows and
// appends it to the month's ledger.csv. Returns the entry ID.
func (s *Service) Add(params AddParams) (string, error) {
	year := params.Date.Year()
	month := int(params.Date.Month())

	seq, err := s.NextEntrySeq(year, month)
	if err != nil {
		return "", err
	}

	txn := model.Transaction{
		EntryID:      id.FormatEntryID(year, month, seq),
		Date:         params.Date,
		Amount:       params.Amount,
		Direction:    params.Direction,
		CategoryID:   params.CategoryID,
		Counterparty: params.Counterparty,
		Channel:      params.Channel,
		Source:       params.Source,
		Confidence:   params.Confidence,
		Status:       params.Status,
		Note:         params.Note,
	}
	if txn.Channel == "" {
		txn.Channel = model.ChannelUnknown
	}

	// Read existing rows for validation.
	existing, err := s.ReadMonth(year, month)
	if err != nil {
		return "", err
	}

	all := append(existing, txn)
	if verrs := ValidateTransactions(all, s.cats, year, month); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return "", fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	// Append to the ledger file (create dir + header if new).
	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := f.WriteString(Header + "\n"); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendTransactions(f, []model.Transaction{txn}); err != nil {
		return "", fmt.Errorf("appending transaction: %w", err)
	}

	return txn.EntryID, nil
}

// ReadMonth reads all transactions for a month. A missing file is an empty month.
func (s *Service) ReadMonth(year, month int) ([]model.Transaction, error) {
	f, err := os.Open(s.monthPath(year, month))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	return ReadTransactions(f)
}

// NextEntrySeq returns the next free sequence number for a month.
func (s *Service) NextEntrySeq(year, month int) (int, error) {
	txns, err := s.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, txn := range txns {
		_, _, seq, err := id.ParseEntryID(txn.EntryID)
		if err != nil {
			return 0, fmt.Errorf("corrupt entry ID %q: %w", txn.EntryID, err)
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}

// MonthBalance sums signed amounts for a month (income positive, expense negative).
func (s *Service) MonthBalance(year, month int) (decimal.Decimal, error) {
	txns, err := s.ReadMonth(year, month)
	if err != nil {
		return decimal.Decimal{}, err
	}

	total := decimal.Zero
	for _, txn := range txns {
		if txn.Status == model.StatusVoided {
			continue
		}
		total = total.Add(txn.Signed())
	}
	return total, nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.root, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "ledger.csv")
}
