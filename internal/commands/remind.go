package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/recurring"
	"github.com/daybook-dev/daybook/internal/remind"
	"github.com/daybook-dev/daybook/internal/savings"
)

func newRemindCommand() *cobra.Command {
	var dir string
	var intervalStr string
	var once bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Run the reminder daemon",
		Long: `Periodically checks for recurring charges that are due and savings
plans that have fallen behind, logging a warning for each. Runs until
interrupted; use --once for a single sweep.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(dir)
			if err != nil {
				return err
			}

			if intervalStr == "" {
				intervalStr = env.cfg.Remind.Interval
			}
			interval, err := time.ParseDuration(intervalStr)
			if err != nil {
				return fmt.Errorf("parsing interval %q: %w", intervalStr, err)
			}

			log := logrus.New()
			log.SetFormatter(&logrus.JSONFormatter{})
			log.SetOutput(os.Stderr)

			rec := recurring.NewService(env.root, env.led)
			sav := savings.NewService(env.root, env.cfg.Thresholds.OnTrackFactor)
			svc := remind.New(remind.Config{Interval: interval}, rec, sav, log)

			if once {
				summary, err := svc.Sweep(time.Now())
				if err != nil {
					return err
				}
				fmt.Printf("Sweep done: %d charge(s) due, %d plan(s) off track\n",
					summary.DueCharges, summary.OffTrackPlans)
				return nil
			}

			if err := svc.Start(); err != nil {
				return err
			}

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig

			svc.Stop()
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "ledger directory")
	cmd.Flags().StringVar(&intervalStr, "interval", "", "sweep interval (default from config)")
	cmd.Flags().BoolVar(&once, "once", false, "run a single sweep and exit")

	return cmd
}
