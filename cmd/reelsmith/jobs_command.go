package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"reelsmith/internal/queue"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List recent render jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			store, err := queue.Open(cfg)
			if err != nil {
				return fmt.Errorf("open job store: %w", err)
			}
			defer store.Close()

			jobs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list jobs: %w", err)
			}
			if filter := strings.TrimSpace(statusFilter); filter != "" {
				status, ok := queue.ParseStatus(filter)
				if !ok {
					known := make([]string, 0, len(queue.AllStatuses()))
					for _, s := range queue.AllStatuses() {
						known = append(known, string(s))
					}
					return fmt.Errorf("unknown status %q (known: %s)", filter, strings.Join(known, ", "))
				}
				filtered := jobs[:0]
				for _, job := range jobs {
					if job.Status == status {
						filtered = append(filtered, job)
					}
				}
				jobs = filtered
			}

			out := cmd.OutOrStdout()
			if len(jobs) == 0 {
				fmt.Fprintln(out, "No jobs recorded")
				return nil
			}

			headers := []string{"Job", "Status", "Progress", "Duration", "Size", "Updated"}
			rows := make([][]string, 0, len(jobs))
			for _, job := range jobs {
				rows = append(rows, []string{
					job.ID,
					string(job.Status),
					strconv.Itoa(job.Progress) + "%",
					formatDuration(job.DurationSeconds),
					formatSize(job.SizeBytes),
					job.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
				})
			}

			if isatty.IsTerminal(os.Stdout.Fd()) {
				fmt.Fprintln(out, renderTable(headers, rows, 2, 3, 4))
				return nil
			}
			for _, row := range rows {
				fmt.Fprintln(out, strings.Join(row, "\t"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of jobs to list")
	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show jobs with this status")
	return cmd
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fs", seconds)
}

func formatSize(bytes int64) string {
	switch {
	case bytes <= 0:
		return "-"
	case bytes < 1<<20:
		return fmt.Sprintf("%.1f KiB", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%.1f MiB", float64(bytes)/(1<<20))
	}
}
