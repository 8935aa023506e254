package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/auditlog"
	"github.com/daybook-dev/daybook/internal/gitops"
	"github.com/daybook-dev/daybook/internal/inbox"
	"github.com/daybook-dev/daybook/internal/scancache"
)

func newScanCommand() *cobra.Command {
	var dir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Extract payments from OCR text files in the inbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(dir)
			if err != nil {
				return err
			}

			cache, err := scancache.Open(filepath.Join(env.root, ".daybook", "scan.db"))
			if err != nil {
				return err
			}
			defer cache.Close()

			log := logrus.New()
			log.SetFormatter(&logrus.JSONFormatter{})
			log.SetOutput(os.Stderr)
			if !verbose {
				log.SetLevel(logrus.WarnLevel)
			}

			proc := inbox.NewProcessor(env.root, env.cfg, env.led, env.cats, cache, nil, log)
			res, err := proc.Process(cmd.Context(), time.Now())
			if err != nil {
				return err
			}

			if res.Posted+res.Queued > 0 {
				details := fmt.Sprintf("posted %d, queued %d", res.Posted, res.Queued)

				commitHash := ""
				if env.cfg.Git.AutoCommit && gitops.IsRepo(env.root) {
					commitHash, err = gitops.AutoCommit(env.root, "scan: "+details,
						env.cfg.Git.AuthorName, env.cfg.Git.AuthorEmail)
					if err != nil {
						return fmt.Errorf("auto-commit: %w", err)
					}
				}

				if err := auditlog.Append(env.root, []auditlog.Entry{{
					Timestamp:  time.Now().UTC(),
					Source:     "scan",
					Action:     "process-inbox",
					Details:    details,
					CommitHash: commitHash,
				}}); err != nil {
					return fmt.Errorf("audit log: %w", err)
				}
			}

			fmt.Printf("Scanned %d file(s): %d posted, %d queued for review, %d unchanged\n",
				res.Scanned, res.Posted, res.Queued, res.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "ledger directory")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every file processed")

	return cmd
}
