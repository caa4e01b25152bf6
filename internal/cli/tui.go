package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fieldshape/mlca/pkg/batch"
	"github.com/fieldshape/mlca/pkg/rtplan"
)

// Progress view styles
var (
	progressBarStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	progressFileStyle = lipgloss.NewStyle().Foreground(colorWhite)
	progressDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// fileDoneMsg carries one completed file into the progress model.
type fileDoneMsg struct {
	result batch.FileResult
}

// runDoneMsg signals that the whole batch finished.
type runDoneMsg struct{}

// batchModel is the bubbletea model for the live batch progress view.
type batchModel struct {
	total    int
	done     int
	analyzed int
	skipped  int
	failed   int
	cached   int
	lastFile string
	cancel   context.CancelFunc
}

func newBatchModel(total int, cancel context.CancelFunc) batchModel {
	return batchModel{total: total, cancel: cancel}
}

func (m batchModel) Init() tea.Cmd {
	return nil
}

func (m batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		}
	case fileDoneMsg:
		m.done++
		m.lastFile = msg.result.Path
		switch {
		case msg.result.Class == rtplan.ClassUsable && msg.result.Plan != nil:
			m.analyzed++
			if msg.result.Cached {
				m.cached++
			}
		case msg.result.Class == rtplan.ClassUsable:
			m.failed++
		default:
			m.skipped++
		}
	case runDoneMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m batchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Analyzing plans"))
	b.WriteString("\n")
	b.WriteString(progressDimStyle.Render("q quit"))
	b.WriteString("\n\n")

	b.WriteString(progressBarStyle.Render(progressBar(m.done, m.total, 30)))
	b.WriteString(progressDimStyle.Render(fmt.Sprintf("  %d/%d", m.done, m.total)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  %s %d analyzed", StyleSuccess.Render(iconSuccess), m.analyzed))
	if m.cached > 0 {
		b.WriteString(progressDimStyle.Render(fmt.Sprintf(" (%d cached)", m.cached)))
	}
	b.WriteString(fmt.Sprintf("   %s %d skipped", styleIconInfo.Render(iconInfo), m.skipped))
	if m.failed > 0 {
		b.WriteString(fmt.Sprintf("   %s %d failed", styleIconError.Render(iconError), m.failed))
	}
	b.WriteString("\n")

	if m.lastFile != "" {
		b.WriteString(progressDimStyle.Render("  last: "))
		b.WriteString(progressFileStyle.Render(filepath.Base(m.lastFile)))
		b.WriteString("\n")
	}

	return b.String()
}

// progressBar renders a fixed-width bar like [=========>          ].
func progressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

// runWithProgress executes the batch under a live progress view. Quitting
// the view cancels the run; the underlying context still applies.
func runWithProgress(ctx context.Context, runner *batch.Runner, files []string, opts batch.Options) (*batch.Result, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newBatchModel(len(files), cancel), tea.WithContext(runCtx))
	opts.Progress = func(fr batch.FileResult) {
		p.Send(fileDoneMsg{result: fr})
	}

	type runOutcome struct {
		res *batch.Result
		err error
	}
	outcome := make(chan runOutcome, 1)
	go func() {
		res, err := runner.Run(runCtx, files, opts)
		outcome <- runOutcome{res: res, err: err}
		p.Send(runDoneMsg{})
	}()

	if _, err := p.Run(); err != nil && runCtx.Err() == nil {
		return nil, err
	}
	out := <-outcome
	return out.res, out.err
}
