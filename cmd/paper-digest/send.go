package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-digest/internal/mail"
)

var sendCmd = &cobra.Command{
	Use:   "send <report.md>",
	Short: "Email an existing report file",
	Long: `Send mails a previously written Markdown report. When the matching
.html file sits next to it, it becomes the HTML alternative part, so the
message looks the same as one sent by report --send.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mdPath := args[0]
		data, err := os.ReadFile(mdPath)
		if err != nil {
			return fmt.Errorf("reading report: %w", err)
		}

		var htmlBody string
		htmlPath := strings.TrimSuffix(mdPath, filepath.Ext(mdPath)) + ".html"
		if b, err := os.ReadFile(htmlPath); err == nil {
			htmlBody = string(b)
		}

		subject, _ := cmd.Flags().GetString("subject")
		if subject == "" {
			// Every report entry carries one anchor tag.
			count := strings.Count(string(data), "<a id=")
			subject = mail.Subject(cfg.Mail, reportDate(mdPath), count)
		}

		mailer, err := mail.NewMailer(cfg.Mail)
		if err != nil {
			return err
		}
		msg := mail.Message{Subject: subject, TextBody: string(data), HTMLBody: htmlBody}
		if err := mailer.Send(cmd.Context(), msg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "report emailed to %s\n", strings.Join(cfg.Mail.To, ", "))
		return nil
	},
}

// reportDate recovers the digest date from a report filename like
// digest-2026-08-21.md, falling back to today.
func reportDate(path string) time.Time {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if d, err := time.Parse("digest-2006-01-02", name); err == nil {
		return d
	}
	return time.Now().UTC()
}

func init() {
	sendCmd.Flags().String("subject", "", "subject line (default derived from the filename)")

	rootCmd.AddCommand(sendCmd)
}
