package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bourse/internal/market"
	"bourse/internal/sim"
)

type tradeMode int

const (
	modeBrowse tradeMode = iota
	modeBuy
	modeSell
)

type minuteMsg struct{}

type model struct {
	session *sim.Session
	every   time.Duration

	instruments []market.Stock
	selected    int

	feedView viewport.Model
	input    textinput.Model
	mode     tradeMode

	statusMsg string
	width     int
	height    int
	ready     bool
}

func newModel(session *sim.Session) *model {
	input := textinput.New()
	input.Placeholder = "shares"
	input.CharLimit = 12
	input.Width = 12

	m := &model{
		session:  session,
		every:    session.Cfg.MinuteEvery,
		feedView: viewport.New(40, 8),
		input:    input,
	}
	m.refresh()
	return m
}

func (m *model) Init() tea.Cmd {
	return m.tickMinute()
}

func (m *model) tickMinute() tea.Cmd {
	return tea.Tick(m.every, func(time.Time) tea.Msg {
		return minuteMsg{}
	})
}

// refresh rebuilds the instrument table from the store: stocks first, then
// index funds.
func (m *model) refresh() {
	stocks := m.session.Store.GetStocks()
	funds := m.session.Store.GetIndexFunds()
	m.instruments = m.instruments[:0]
	m.instruments = append(m.instruments, stocks...)
	for _, f := range funds {
		m.instruments = append(m.instruments, f.Stock)
	}
	if m.selected >= len(m.instruments) {
		m.selected = len(m.instruments) - 1
	}
	m.feedView.SetContent(m.renderFeed())
	m.feedView.GotoBottom()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateTradeInput(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.instruments)-1 {
				m.selected++
			}
		case "b":
			if !m.session.Clock.Ended() {
				m.mode = modeBuy
				m.input.SetValue("")
				m.input.Focus()
			}
		case "s":
			if !m.session.Clock.Ended() {
				m.mode = modeSell
				m.input.SetValue("")
				m.input.Focus()
			}
		case "d":
			m.session.Clock.SkipDays(1)
			m.refresh()
		case "w":
			m.session.Clock.SkipDays(7)
			m.refresh()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case minuteMsg:
		if m.session.Clock.Ended() {
			m.statusMsg = "Game over. Press q to quit."
			return m, nil
		}
		m.session.Clock.AdvanceMinutes(1)
		m.refresh()
		return m, m.tickMinute()
	}

	var cmd tea.Cmd
	m.feedView, cmd = m.feedView.Update(msg)
	return m, cmd
}

func (m *model) updateTradeInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		m.executeTrade()
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) executeTrade() {
	if m.selected < 0 || m.selected >= len(m.instruments) {
		return
	}
	name := m.instruments[m.selected].Name
	qty, err := strconv.ParseFloat(strings.TrimSpace(m.input.Value()), 64)
	if err != nil || qty <= 0 {
		m.statusMsg = "Enter a positive number of shares."
		return
	}
	if m.mode == modeBuy {
		cost, err := m.session.Ledger.Buy(name, qty)
		if err != nil {
			m.statusMsg = "Buy failed: " + err.Error()
			return
		}
		m.statusMsg = fmt.Sprintf("Bought %.2f %s for $%.2f.", qty, name, cost)
	} else {
		proceeds, err := m.session.Ledger.Sell(name, qty)
		if err != nil {
			m.statusMsg = "Sell failed: " + err.Error()
			return
		}
		m.statusMsg = fmt.Sprintf("Sold %.2f %s for $%.2f.", qty, name, proceeds)
	}
	m.refresh()
}

func (m *model) View() string {
	if !m.ready {
		return "Loading..."
	}

	leftWidth := m.width * 3 / 5
	rightWidth := m.width - leftWidth
	topHeight := (m.height - 3) * 3 / 5
	bottomHeight := m.height - topHeight - 3

	marketPanel := m.renderMarket(leftWidth, topHeight)
	portfolioPanel := m.renderPortfolio(rightWidth, topHeight)
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, marketPanel, portfolioPanel)

	m.feedView.Width = m.width - 4
	m.feedView.Height = bottomHeight - 3
	feedPanel := panelStyle.Width(m.width - 2).Height(bottomHeight - 1).Render(
		lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Market Feed"), m.feedView.View()))

	return lipgloss.JoinVertical(lipgloss.Left, topRow, feedPanel, m.renderStatusBar())
}

func (m *model) renderMarket(width, height int) string {
	var content strings.Builder
	content.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %-22s %10s %8s", "SYM", "SECTOR", "PRICE", "TREND")))
	content.WriteString("\n")

	visible := height - 5
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	for i := start; i < len(m.instruments) && i < start+visible; i++ {
		inst := m.instruments[i]
		trend := fmt.Sprintf("%+.2f%%", inst.Trend)
		trendStyled := priceUpStyle.Render(trend)
		if inst.Trend < 0 {
			trendStyled = priceDownStyle.Render(trend)
		}
		row := fmt.Sprintf("%-6s %-22s %10.2f ", inst.Name, truncate(inst.Field, 22), inst.Price)
		style := rowStyle
		if i == m.selected {
			style = selectedRowStyle
		}
		content.WriteString(style.Render(row) + trendStyled)
		content.WriteString("\n")
	}

	style := focusedPanelStyle
	if m.mode != modeBrowse {
		style = panelStyle
	}
	title := titleStyle.Render("Market")
	if m.mode == modeBuy {
		title = titleStyle.Render("Buy " + m.instruments[m.selected].Name + ": " + m.input.View())
	} else if m.mode == modeSell {
		title = titleStyle.Render("Sell " + m.instruments[m.selected].Name + ": " + m.input.View())
	}
	return style.Width(width - 2).Height(height).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content.String()))
}

func (m *model) renderPortfolio(width, height int) string {
	now := m.session.Clock.Now()
	var content strings.Builder
	content.WriteString(fmt.Sprintf("Day %d  %02d:%02d\n\n", now.Day, now.Hour, now.Minute))
	content.WriteString(fmt.Sprintf("Cash:      $%.2f\n", m.session.Ledger.LiquidBalance()))
	content.WriteString(fmt.Sprintf("Net worth: $%.2f\n\n", m.session.Ledger.NetWorth()))

	assets := m.session.Ledger.Assets()
	if len(assets) == 0 {
		content.WriteString(headerStyle.Render("No holdings yet."))
	} else {
		content.WriteString(headerStyle.Render(fmt.Sprintf("%-6s %10s %12s", "SYM", "QTY", "VALUE")))
		content.WriteString("\n")
		for _, a := range assets {
			value := 0.0
			if inst, ok := m.session.Store.GetInstrumentByName(a.Name); ok {
				value = inst.Price * a.Quantity
			}
			content.WriteString(fmt.Sprintf("%-6s %10.2f %12.2f\n", a.Name, a.Quantity, value))
		}
	}

	return panelStyle.Width(width - 2).Height(height).Render(
		lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Portfolio"), content.String()))
}

func (m *model) renderFeed() string {
	var content strings.Builder
	for _, a := range m.session.Feed.Recent(30) {
		title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(a.TitleColor)).Render(a.Title)
		desc := lipgloss.NewStyle().Foreground(lipgloss.Color(a.DescriptionColor)).Render(a.Description)
		content.WriteString(title + " " + desc + "\n")
	}
	return content.String()
}

func (m *model) renderStatusBar() string {
	help := strings.Join([]string{
		statusKeyStyle.Render("↑↓") + " select",
		statusKeyStyle.Render("b") + " buy",
		statusKeyStyle.Render("s") + " sell",
		statusKeyStyle.Render("d") + " next day",
		statusKeyStyle.Render("w") + " next week",
		statusKeyStyle.Render("q") + " quit",
	}, " │ ")
	status := ""
	if m.statusMsg != "" {
		status = " │ " + m.statusMsg
	}
	return statusBarStyle.Width(m.width).Render(help + status)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
