package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

// downloadCEFWithUI runs the download with a live terminal UI when stdout
// is a TTY and plain line output otherwise.
func downloadCEFWithUI(path, version string, platform Platform, force bool) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return DownloadCEF(path, version, platform, force, &plainCallback{version: version})
	}

	p := tea.NewProgram(newDownloadModel(version))
	go func() {
		err := DownloadCEF(path, version, platform, force, &teaCallback{program: p})
		p.Send(downloadDoneMsg{err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	return final.(downloadModel).err
}

// plainCallback logs download phases as lines, for non-interactive output.
type plainCallback struct {
	version   string
	total     int64
	lastTenth int64
	extracted int
}

func (c *plainCallback) DownloadStart(total int64) {
	c.total = total
	fmt.Printf("Downloading CEF %s (%s)\n", c.version, formatBytes(total))
}

func (c *plainCallback) DownloadProgress(downloaded int64) {
	if c.total <= 0 {
		return
	}
	tenth := downloaded * 10 / c.total
	if tenth > c.lastTenth {
		c.lastTenth = tenth
		fmt.Printf("  %d%%\n", tenth*10)
	}
}

func (c *plainCallback) DownloadEnd() {
	fmt.Println("Download complete")
}

func (c *plainCallback) ExtractStart() {
	fmt.Println("Extracting...")
}

func (c *plainCallback) ExtractFile(string) {
	c.extracted++
}

func (c *plainCallback) ExtractEnd() {
	fmt.Printf("Extracted %d files\n", c.extracted)
}

// teaCallback forwards download phases into the running bubbletea program.
type teaCallback struct {
	program *tea.Program
}

func (c *teaCallback) DownloadStart(total int64) {
	c.program.Send(downloadStartMsg{total: total})
}

func (c *teaCallback) DownloadProgress(downloaded int64) {
	c.program.Send(downloadProgressMsg{downloaded: downloaded})
}

func (c *teaCallback) DownloadEnd() { c.program.Send(downloadEndMsg{}) }

func (c *teaCallback) ExtractStart() { c.program.Send(extractStartMsg{}) }

func (c *teaCallback) ExtractFile(path string) { c.program.Send(extractFileMsg{path: path}) }

func (c *teaCallback) ExtractEnd() {}

type downloadStartMsg struct{ total int64 }
type downloadProgressMsg struct{ downloaded int64 }
type downloadEndMsg struct{}
type extractStartMsg struct{}
type extractFileMsg struct{ path string }
type downloadDoneMsg struct{ err error }

type downloadPhase int

const (
	phaseConnecting downloadPhase = iota
	phaseDownloading
	phaseExtracting
	phaseDone
)

type downloadModel struct {
	version    string
	bar        progress.Model
	phase      downloadPhase
	total      int64
	downloaded int64
	extracted  int
	current    string
	err        error
}

func newDownloadModel(version string) downloadModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	return downloadModel{version: version, bar: bar}
}

func (m downloadModel) Init() tea.Cmd {
	return nil
}

func (m downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.err = fmt.Errorf("interrupted")
			return m, tea.Quit
		}
	case downloadStartMsg:
		m.phase = phaseDownloading
		m.total = msg.total
	case downloadProgressMsg:
		m.downloaded = msg.downloaded
	case downloadEndMsg:
		m.downloaded = m.total
	case extractStartMsg:
		m.phase = phaseExtracting
	case extractFileMsg:
		m.extracted++
		m.current = msg.path
	case downloadDoneMsg:
		m.phase = phaseDone
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m downloadModel) View() string {
	s := titleStyle.Render("wef-tool") + "  CEF " + m.version + "\n\n"

	switch m.phase {
	case phaseConnecting:
		s += "Connecting...\n"
	case phaseDownloading:
		ratio := 0.0
		if m.total > 0 {
			ratio = float64(m.downloaded) / float64(m.total)
		}
		s += fmt.Sprintf("Downloading\n%s %s / %s\n",
			m.bar.ViewAs(ratio),
			formatBytes(m.downloaded), formatBytes(m.total))
	case phaseExtracting:
		s += fmt.Sprintf("Extracting %d files\n%s\n",
			m.extracted, fileStyle.Render(truncatePath(m.current, 60)))
	case phaseDone:
		if m.err != nil {
			s += errorStyle.Render("Failed: "+m.err.Error()) + "\n"
		} else {
			s += doneStyle.Render(fmt.Sprintf("Done, %d files extracted", m.extracted)) + "\n"
		}
	}
	return s
}

func formatBytes(n int64) string {
	switch {
	case n < 0:
		return "unknown size"
	case n < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	}
}

func truncatePath(path string, max int) string {
	if len(path) <= max {
		return path
	}
	return "..." + path[len(path)-max+3:]
}
