package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/ledger"
	"github.com/daybook-dev/daybook/internal/model"
)

func newAddCommand() *cobra.Command {
	var (
		dir          string
		dateStr      string
		amountStr    string
		categoryID   int
		income       bool
		counterparty string
		channel      string
		note         string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction manually",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(dir)
			if err != nil {
				return err
			}

			date := time.Now()
			if dateStr != "" {
				date, err = time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("parsing --date %q: %w", dateStr, err)
				}
			}

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("parsing --amount %q: %w", amountStr, err)
			}

			direction := model.DirectionExpense
			if income {
				direction = model.DirectionIncome
			}

			entryID, err := env.led.Add(ledger.AddParams{
				Date:         date,
				Amount:       amount,
				Direction:    direction,
				CategoryID:   categoryID,
				Counterparty: counterparty,
				Channel:      model.Channel(channel),
				Source:       model.SourceManual,
				Status:       model.StatusUserConfirmed,
				Note:         note,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Recorded %s %s%s as %s\n", direction, env.cfg.Profile.Currency, amount.StringFixed(2), entryID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "ledger directory")
	cmd.Flags().StringVar(&dateStr, "date", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().IntVar(&categoryID, "category", 0, "category ID (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().BoolVar(&income, "income", false, "record as income instead of expense")
	cmd.Flags().StringVar(&counterparty, "counterparty", "", "who the money went to or came from")
	cmd.Flags().StringVar(&channel, "channel", string(model.ChannelUnknown), "payment channel (wechat, alipay, bank, cloud_pay)")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")

	return cmd
}
