package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MaximVlas/gcheap/gc"
)

type tickMsg time.Time

type model struct {
	statsCh <-chan gc.Stats
	stats   gc.Stats
	haveOne bool
	width   int
}

func newModel(statsCh <-chan gc.Stats) model {
	return model{statsCh: statsCh}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		select {
		case s := <-m.statsCh:
			m.stats = s
			m.haveOne = true
		default:
		}
		return m, tick()
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("heapmon"))
	b.WriteString("\n\n")

	if !m.haveOne {
		b.WriteString(dimStyle.Render("waiting for first stats snapshot..."))
		b.WriteString("\n")
		return b.String()
	}

	s := m.stats
	b.WriteString(renderGauge(s.UsedPercent(), gaugeWidth(m.width)))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Heap size", fmt.Sprintf("%d bytes", s.HeapSize)},
		{"Heap used", fmt.Sprintf("%d bytes (%.1f%%)", s.HeapUsed, s.UsedPercent())},
		{"Live objects", fmt.Sprintf("%d", s.Objects)},
		{"Free blocks", fmt.Sprintf("%d (%d bytes)", s.FreeBlocks, s.FreeBytes)},
		{"Collections", fmt.Sprintf("%d", s.Collections)},
		{"Allocations", fmt.Sprintf("%d", s.Allocations)},
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r.label))
		b.WriteString(valueStyle.Render(r.value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("q to quit"))
	b.WriteString("\n")
	return panelStyle.Render(b.String())
}

func gaugeWidth(total int) int {
	w := total - 12
	if w < 10 {
		w = 40
	}
	if w > 60 {
		w = 60
	}
	return w
}

// renderGauge draws a heap-occupancy bar.
func renderGauge(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := gaugeOKStyle
	if percent >= 80 {
		style = gaugeHotStyle
	}
	return style.Render(bar) + fmt.Sprintf(" %5.1f%%", percent)
}
