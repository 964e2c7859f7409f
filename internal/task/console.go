package task

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Console reports task progress to a terminal: a running marker per task,
// then a green check or red cross with two-decimal elapsed seconds. Writes
// are serialized so parallel dispatch does not shred lines mid-marker.
type Console struct {
	mu  sync.Mutex
	Out io.Writer
}

func NewConsole() *Console {
	return &Console{Out: os.Stdout}
}

func (c *Console) TaskStarted(label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out(), "[%s] Running...", label)
}

func (c *Console) TaskSucceeded(label string, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out(), okStyle.Render(fmt.Sprintf(" ✅ %.2fs", elapsed.Seconds())))
}

func (c *Console) TaskFailed(label string, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out(), failStyle.Render(fmt.Sprintf(" ❌ %.2fs", elapsed.Seconds())))
}

func (c *Console) NodeError(host string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out(), failStyle.Render(fmt.Sprintf("Error processing %s: %v", host, err)))
}

func (c *Console) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}
