// Package progress gives ingest runs visible feedback: an interactive
// bar on a terminal, plain lines under CI.
package progress

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives ingestion progress: Start with the file count, one
// Update per file, Finish when the run ends.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// NewReporter picks a reporter for the current environment. CI runs get
// line-by-line output; everything else gets a progress bar.
func NewReporter() Reporter {
	if runningInCI() {
		return &plainReporter{}
	}
	return &barReporter{}
}

func runningInCI() bool {
	return os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != ""
}

type barReporter struct {
	bar *progressbar.ProgressBar
}

func (r *barReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Ingesting documents"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *barReporter) Update(current int, message string) {
	if r.bar == nil {
		return
	}
	r.bar.Describe(message)
	_ = r.bar.Set(current)
}

func (r *barReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

type plainReporter struct {
	total int
}

func (r *plainReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(os.Stderr, "Ingesting %d files\n", total)
}

func (r *plainReporter) Update(current int, message string) {
	fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", current, r.total, message)
}

func (r *plainReporter) Finish() {
	fmt.Fprintln(os.Stderr, "Ingestion complete")
}
