package inbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/daybook-dev/daybook/internal/categories"
	"github.com/daybook-dev/daybook/internal/config"
	"github.com/daybook-dev/daybook/internal/extract"
	"github.com/daybook-dev/daybook/internal/ledger"
	"github.com/daybook-dev/daybook/internal/model"
	"github.com/daybook-dev/daybook/internal/scancache"
)

// fallbackTimeout bounds a single secondary-parser call.
const fallbackTimeout = 30 * time.Second

// Timestamp layouts accepted from the extractor, matching its three
// timestamp patterns.
var timestampLayouts = []string{
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006/1/2 15:04:05",
	"2006/1/2 15:04",
	"2006年1月2日 15:04:05",
	"2006年1月2日 15:04",
}

// Processor turns inbox text files into ledger transactions.
type Processor struct {
	root       string
	inboxDir   string
	ledger     *ledger.Service
	cats       *categories.Service
	cache      *scancache.Cache
	thresholds config.ThresholdsConfig
	fallback   extract.Fallback // may be nil
	log        *logrus.Logger
}

// NewProcessor creates a Processor. cache may be nil to disable skip
// tracking and fallback may be nil when no secondary parser is configured.
func NewProcessor(root string, cfg *config.Config, led *ledger.Service, cats *categories.Service, cache *scancache.Cache, fallback extract.Fallback, log *logrus.Logger) *Processor {
	if log == nil {
		log = logrus.New()
		log.SetOutput(os.Stderr)
	}
	return &Processor{
		root:       root,
		inboxDir:   cfg.Inbox.Dir,
		ledger:     led,
		cats:       cats,
		cache:      cache,
		thresholds: cfg.Thresholds,
		fallback:   fallback,
		log:        log,
	}
}

// Result summarizes one Process run.
type Result struct {
	Scanned int
	Skipped int
	Posted  int
	Queued  int
}

// Process scans the inbox and handles every new or changed text file.
// today supplies the transaction date when the text carries no timestamp.
func (p *Processor) Process(ctx context.Context, today time.Time) (Result, error) {
	files, err := Scan(p.root, p.inboxDir)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if p.cache != nil {
			unchanged, err := p.cache.Unchanged(file.Path, file.MtimeNs, file.Size)
			if err != nil {
				return res, fmt.Errorf("checking cache for %s: %w", file.Name, err)
			}
			if unchanged {
				res.Skipped++
				continue
			}
		}
		res.Scanned++

		data, err := os.ReadFile(file.Path)
		if err != nil {
			return res, fmt.Errorf("reading %s: %w", file.Name, err)
		}

		if err := p.processOne(ctx, file, string(data), today, &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (p *Processor) processOne(ctx context.Context, file FileInfo, text string, today time.Time, res *Result) error {
	info, err := extract.Extract(text)

	var lce *extract.LowConfidenceError
	if errors.As(err, &lce) && p.fallback != nil {
		fbCtx, cancel := context.WithTimeout(ctx, fallbackTimeout)
		fbInfo, fbErr := p.fallback.ParsePayment(fbCtx, text)
		cancel()
		if fbErr == nil && fbInfo.Amount.IsPositive() {
			p.log.WithFields(logrus.Fields{"file": file.Name, "reason": lce.Reason}).
				Info("fallback parser recovered payment")
			return p.post(file, fbInfo, today, decimal.NewFromFloat(0.5), res)
		}
		if fbErr != nil {
			p.log.WithFields(logrus.Fields{"file": file.Name, "error": fbErr.Error()}).
				Warn("fallback parser failed")
		}
	}

	if err != nil {
		if !errors.As(err, &lce) {
			return fmt.Errorf("extracting %s: %w", file.Name, err)
		}
		return p.queue(file, lce, res)
	}

	confidence := scoreConfidence(info)
	if confidence.LessThan(decimal.NewFromFloat(p.thresholds.ReviewFlag)) {
		return p.queue(file, &extract.LowConfidenceError{Reason: "below review threshold", Partial: info}, res)
	}
	return p.post(file, info, today, confidence, res)
}

// scoreConfidence estimates how trustworthy an extraction is from how many
// optional fields the cascade filled. An ambiguous direction caps the score
// so it can never auto-confirm.
func scoreConfidence(info model.PaymentInfo) decimal.Decimal {
	score := 0.5 // the amount matched, or we would not be here
	if info.Counterparty != "" {
		score += 0.15
	}
	if info.Timestamp != "" {
		score += 0.15
	}
	if info.Channel != model.ChannelUnknown {
		score += 0.1
	}
	if !info.DirectionAmbiguous {
		score += 0.1
	}
	if info.DirectionAmbiguous && score > 0.85 {
		score = 0.85
	}
	return decimal.NewFromFloat(score)
}

func (p *Processor) post(file FileInfo, info model.PaymentInfo, today time.Time, confidence decimal.Decimal, res *Result) error {
	status := model.StatusPendingReview
	if confidence.GreaterThanOrEqual(decimal.NewFromFloat(p.thresholds.AutoConfirm)) {
		status = model.StatusAutoConfirmed
	}

	cat, ok := p.cats.DefaultForDirection(info.Direction)
	if !ok {
		return fmt.Errorf("no category for direction %s", info.Direction)
	}

	entryID, err := p.ledger.Add(ledger.AddParams{
		Date:         txnDate(info.Timestamp, today),
		Amount:       info.Amount.Round(2),
		Direction:    info.Direction,
		CategoryID:   cat.ID,
		Counterparty: info.Counterparty,
		Channel:      info.Channel,
		Source:       model.SourceScan,
		Confidence:   confidence,
		Status:       status,
		Note:         file.Name,
	})
	if err != nil {
		return fmt.Errorf("posting %s: %w", file.Name, err)
	}

	p.log.WithFields(logrus.Fields{
		"file":     file.Name,
		"entry_id": entryID,
		"amount":   info.Amount.String(),
		"status":   string(status),
	}).Info("posted scanned payment")

	res.Posted++
	return p.remember(file, scancache.ExtractionRecord{
		FilePath:     file.Path,
		Amount:       info.Amount.String(),
		Direction:    string(info.Direction),
		Counterparty: info.Counterparty,
		Channel:      string(info.Channel),
		EntryID:      entryID,
		Outcome:      scancache.OutcomePosted,
	})
}

func (p *Processor) queue(file FileInfo, lce *extract.LowConfidenceError, res *Result) error {
	item := ReviewItem{
		QueuedAt:  time.Now().UTC(),
		File:      file.Name,
		Reason:    lce.Reason,
		Direction: string(lce.Partial.Direction),
		Timestamp: lce.Partial.Timestamp,
		Channel:   string(lce.Partial.Channel),
		RawText:   lce.Partial.RawText,
	}
	if !lce.Partial.Amount.IsZero() {
		item.Amount = lce.Partial.Amount.String()
	}

	if err := AppendReview(p.root, []ReviewItem{item}); err != nil {
		return fmt.Errorf("queueing %s: %w", file.Name, err)
	}

	p.log.WithFields(logrus.Fields{"file": file.Name, "reason": lce.Reason}).
		Info("queued for review")

	res.Queued++
	return p.remember(file, scancache.ExtractionRecord{
		FilePath:  file.Path,
		Amount:    item.Amount,
		Direction: item.Direction,
		Channel:   item.Channel,
		Outcome:   scancache.OutcomeQueued,
	})
}

func (p *Processor) remember(file FileInfo, rec scancache.ExtractionRecord) error {
	if p.cache == nil {
		return nil
	}
	if err := p.cache.SaveExtraction(rec, file.MtimeNs, file.Size); err != nil {
		return fmt.Errorf("caching %s: %w", file.Name, err)
	}
	return nil
}

// txnDate parses an extracted timestamp, falling back to today. Only the
// calendar date is kept.
func txnDate(timestamp string, today time.Time) time.Time {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, timestamp); err == nil {
			return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
}
