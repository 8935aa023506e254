package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/auditlog"
	"github.com/daybook-dev/daybook/internal/gitops"
	"github.com/daybook-dev/daybook/internal/recurring"
)

func newDueCommand() *cobra.Command {
	var dir string
	var post bool

	cmd := &cobra.Command{
		Use:   "due",
		Short: "Show recurring charges that are due, optionally posting them",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(dir)
			if err != nil {
				return err
			}

			svc := recurring.NewService(env.root, env.led)
			today := time.Now()

			if !post {
				due, err := svc.Due(today)
				if err != nil {
					return err
				}
				if len(due) == 0 {
					fmt.Println("Nothing due.")
					return nil
				}
				for _, d := range due {
					fmt.Printf("%-20s %s%s due %s\n", d.Charge.Name,
						env.cfg.Profile.Currency, d.Charge.Amount.StringFixed(2),
						d.DueOn.Format("2006-01-02"))
				}
				return nil
			}

			entryIDs, err := svc.PostDue(today)
			if err != nil {
				return err
			}
			if len(entryIDs) == 0 {
				fmt.Println("Nothing due.")
				return nil
			}

			details := fmt.Sprintf("posted %d charge(s): %s", len(entryIDs), strings.Join(entryIDs, ", "))

			commitHash := ""
			if env.cfg.Git.AutoCommit && gitops.IsRepo(env.root) {
				commitHash, err = gitops.AutoCommit(env.root, "due: "+details,
					env.cfg.Git.AuthorName, env.cfg.Git.AuthorEmail)
				if err != nil {
					return fmt.Errorf("auto-commit: %w", err)
				}
			}

			if err := auditlog.Append(env.root, []auditlog.Entry{{
				Timestamp:  time.Now().UTC(),
				Source:     "due",
				Action:     "post-recurring",
				Details:    details,
				CommitHash: commitHash,
			}}); err != nil {
				return fmt.Errorf("audit log: %w", err)
			}

			fmt.Printf("Posted %d recurring charge(s)\n", len(entryIDs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "ledger directory")
	cmd.Flags().BoolVar(&post, "post", false, "post due charges to the ledger")

	return cmd
}
