package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/routerchat/internal/chat"
	"github.com/diogo/routerchat/internal/config"
	"github.com/diogo/routerchat/internal/models"
	"github.com/diogo/routerchat/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// Typing-effect tick message
type typingTickMsg time.Time

// Message types for the TUI
type (
	replyMsg struct {
		reply *models.ChatReply
	}
	errMsg struct {
		err error
	}
)

// ChatClient defines the client operations needed by the TUI
type ChatClient interface {
	Generate(modelID string, window []models.Message) (*models.ChatReply, error)
}

// Model represents the chat TUI state
type Model struct {
	client  ChatClient
	session *chat.Session
	cfg     config.Config
	keyHint string // masked API key for the stats line

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	loading        bool
	ready          bool
	err            error
	animationFrame int // Frame counter for loading animation

	// Typing-effect state. The reply is fully received before the reveal
	// starts; the assistant turn is committed to the session only after
	// the reveal completes.
	revealing   bool
	pending     *models.ChatReply
	revealRunes []rune
	revealed    int

	// Model selection state
	selectingModel bool
	modelCursor    int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model
func NewChatModel(client ChatClient, session *chat.Session, cfg config.Config, keyHint string) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		client:  client,
		session: session,
		cfg:     cfg,
		keyHint: keyHint,
		textarea: ta,
		spinner: s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// typingTick schedules the next character of the typing effect
func (m Model) typingTick() tea.Cmd {
	delay := time.Duration(m.cfg.TypingDelayMS) * time.Millisecond
	if delay <= 0 {
		delay = 3 * time.Millisecond
	}
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return typingTickMsg(t)
	})
}

// busy reports whether a turn is in flight (request pending or reveal
// running); input is blocked while busy
func (m Model) busy() bool {
	return m.loading || m.revealing
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.selectingModel {
		return m.updateModelSelection(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Header panel with border
		inputHeight := 6  // Input panel with border
		statsHeight := 1  // Stats line
		statusHeight := 1 // Status bar
		padding := 2      // Extra spacing

		vpHeight := m.height - headerHeight - inputHeight - statsHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.textarea.SetWidth(contentWidth - 4)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
			m.textarea.SetWidth(contentWidth - 4)
		}
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if !m.busy() {
				return m, tea.Quit
			}

		case "enter":
			if !m.busy() && strings.TrimSpace(m.textarea.Value()) != "" {
				input := strings.TrimSpace(m.textarea.Value())
				if input == "exit" || input == "quit" || input == "/exit" || input == "/quit" {
					return m, tea.Quit
				}

				// Clear history resets the whole session
				if input == "/clear" {
					m.textarea.Reset()
					m.session.Reset()
					m.err = nil
					m.updateViewport()
					return m, nil
				}

				if input == "/model" || input == "/models" {
					m.textarea.Reset()
					m.selectingModel = true
					m.modelCursor = m.currentModelIndex()
					return m, nil
				}

				// Record the user turn; it stays recorded even when the
				// request fails
				m.session.AppendUser(input)
				m.updateViewport()
				m.viewport.GotoBottom()

				m.loading = true
				m.err = nil
				m.animationFrame = 0
				m.textarea.Reset()

				cmd = m.sendMessage()

				return m, tea.Batch(
					cmd,
					m.spinner.Tick,
					animationTick(),
				)
			}
		}

	case replyMsg:
		m.loading = false
		if m.cfg.TypingEffect {
			m.pending = msg.reply
			m.revealRunes = []rune(msg.reply.Text)
			m.revealed = 0
			m.revealing = true
			m.updateViewport()
			m.viewport.GotoBottom()
			return m, m.typingTick()
		}
		m.commitReply(msg.reply)

	case errMsg:
		m.loading = false
		m.err = msg.err

	case typingTickMsg:
		if m.revealing {
			m.revealed++
			if m.revealed >= len(m.revealRunes) {
				m.commitReply(m.pending)
			} else {
				m.updateViewport()
				m.viewport.GotoBottom()
				cmds = append(cmds, m.typingTick())
			}
		}

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Update child components - only pass KeyMsg to textarea to prevent escape sequence leaks
	if !m.busy() {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// commitReply appends the assistant turn and leaves the reveal state
func (m *Model) commitReply(reply *models.ChatReply) {
	if reply != nil {
		m.session.AppendAssistant(reply.Text, reply.TotalTokens)
	}
	m.revealing = false
	m.pending = nil
	m.revealRunes = nil
	m.revealed = 0
	m.updateViewport()
	m.viewport.GotoBottom()
}

// sendMessage creates a command that issues the chat-completion request
// with the current context window
func (m Model) sendMessage() tea.Cmd {
	modelID := m.session.Model()
	window := m.session.Window(chat.ContextWindow)
	return func() tea.Msg {
		reply, err := m.client.Generate(modelID, window)
		if err != nil {
			return errMsg{err: err}
		}
		return replyMsg{reply: reply}
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	if m.selectingModel {
		return m.renderModelSelector()
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerParts := []string{
		titleStyle.Render("✦ AI Chat"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.session.Model()),
	}
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center, headerParts...)
	header := headerStyle.Width(contentWidth).Render(headerContent)
	sections = append(sections, header)

	// Messages area
	var messagesContent string
	if m.session.Len() == 0 && !m.revealing {
		messagesContent = m.renderWelcome()
	} else {
		messagesContent = m.viewport.View()
	}

	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent)
	sections = append(sections, messagesPanel)

	// Input area
	var inputContent string
	if m.loading {
		inputContent = m.renderLoadingAnimation()
	} else if m.revealing {
		inputContent = hintStyle.Render("  Receiving response...")
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}

	inputPanel := inputPanelStyle.Width(contentWidth).Render(inputContent)
	sections = append(sections, inputPanel)

	// Stats line
	sections = append(sections, m.renderStats(contentWidth))

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	// Error display
	if m.err != nil {
		sections = append(sections, FormatError(m.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStats renders credential status, message count, and token usage
func (m Model) renderStats(width int) string {
	var keyStatus string
	if m.keyHint != "" {
		keyStatus = statsOkStyle.Render("✓ "+m.keyHint)
	} else {
		keyStatus = statsErrStyle.Render("✗ no key")
	}

	items := []string{
		statsLabelStyle.Render("Key ") + keyStatus,
		statsLabelStyle.Render("Messages ") + statsValueStyle.Render(fmt.Sprintf("%d", m.session.Len())),
		statsLabelStyle.Render("Tokens ") + statsValueStyle.Render(fmt.Sprintf("%d", m.session.TotalTokens())),
	}

	return statsBarStyle.Width(width).Render(strings.Join(items, "  │  "))
}

// renderWelcome renders the welcome screen when no messages exist
func (m Model) renderWelcome() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	icon := welcomeIconStyle.Width(width).Render("✦")
	title := welcomeTitleStyle.Width(width).Render("Welcome to AI Chat")
	subtitle := welcomeStyle.Width(width).Render(
		"Chat with hosted models through OpenRouter\n" +
			"Type a message below, /model to switch models, /clear to reset")

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		"",
		icon,
		"",
		title,
		"",
		subtitle,
		"",
	)

	contentHeight := lipgloss.Height(content)
	topPadding := (height - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders a colorful animated loading indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	frame := m.animationFrame

	spinIdx := frame % len(chars)
	spinColor := gradientColors[frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)

		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	dots := ""
	numDots := (frame / 3) % 4
	for i := 0; i < numDots; i++ {
		dotColor := gradientColors[(frame+i)%len(gradientColors)]
		dots += lipgloss.NewStyle().Foreground(dotColor).Render("●")
	}
	for i := numDots; i < 3; i++ {
		dots += lipgloss.NewStyle().Foreground(colorTextMute).Render("○")
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Thinking ")

	return fmt.Sprintf("%s %s %s %s", spinnerChar, bar.String(), text, dots)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"/model", "Switch model"},
		{"/clear", "Reset"},
		{"Esc", "Quit"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(items, "  │  "))
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6

	turns := m.session.Turns()
	for i, turn := range turns {
		if i > 0 {
			content.WriteString("\n")
		}
		m.writeTurn(&content, turn.Role, turn.Content, turn.Tokens, bubbleWidth)
		content.WriteString("\n")
	}

	// Partially revealed reply in progress
	if m.revealing && m.pending != nil {
		if len(turns) > 0 {
			content.WriteString("\n")
		}
		partial := string(m.revealRunes[:m.revealed]) + "▌"
		label := assistantLabelStyle.Render("✦ Assistant")
		bubble := assistantBubbleStyle.Width(bubbleWidth).Render(partial)
		content.WriteString(label + "\n" + bubble + "\n")
	}

	m.viewport.SetContent(content.String())
}

// writeTurn renders a single committed turn into the transcript
func (m *Model) writeTurn(content *strings.Builder, role, text string, tokens, bubbleWidth int) {
	if role == models.RoleUser {
		label := userLabelStyle.Render("⬤ You")
		bubble := userBubbleStyle.Width(bubbleWidth).Render(text)
		content.WriteString(label + "\n" + bubble)
		return
	}

	label := assistantLabelStyle.Render("✦ Assistant")
	content.WriteString(label + "\n")

	rendered, err := render.MarkdownWithWidth(text, bubbleWidth-4)
	if err != nil {
		rendered = text
	}
	rendered = strings.TrimRight(rendered, "\n")

	bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
	content.WriteString(bubble)

	if tokens > 0 {
		content.WriteString("\n" + tokenCaptionStyle.Render(fmt.Sprintf("⚡ Tokens: %d", tokens)))
	}
}

// currentModelIndex returns the catalogue index of the session's model
func (m Model) currentModelIndex() int {
	for i, mod := range models.AllModels() {
		if mod.ID == m.session.Model() {
			return i
		}
	}
	return 0
}

// updateModelSelection handles updates when in model selection mode
func (m Model) updateModelSelection(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		catalogue := models.AllModels()
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			m.selectingModel = false

		case "up", "k":
			m.modelCursor--
			if m.modelCursor < 0 {
				m.modelCursor = len(catalogue) - 1
			}

		case "down", "j":
			m.modelCursor++
			if m.modelCursor >= len(catalogue) {
				m.modelCursor = 0
			}

		case "enter":
			if m.modelCursor < len(catalogue) {
				m.session.SetModel(catalogue[m.modelCursor].ID)
				m.selectingModel = false
			}
		}
	}

	return m, nil
}

// renderModelSelector renders the model selection overlay
func (m Model) renderModelSelector() string {
	width := m.width - 8
	if width < 40 {
		width = 40
	}

	var content strings.Builder

	title := configTitleStyle.Render("⇄ Select a Model")
	title += hintStyle.Render(fmt.Sprintf("  (current: %s)", m.session.Model()))
	content.WriteString(title)
	content.WriteString("\n\n")

	for i, mod := range models.AllModels() {
		cursor := "  "
		nameStyle := configMenuItemStyle
		if i == m.modelCursor {
			cursor = configCursorStyle.Render("▸ ")
			nameStyle = configMenuSelectedStyle
		}

		tag := ""
		if mod.Free {
			tag = configEnabledStyle.Render(" [free]")
		}

		line := fmt.Sprintf("%s%s%s %s", cursor, nameStyle.Render(mod.Name), tag,
			configValueStyle.Render(mod.ID))
		content.WriteString(line)
		content.WriteString("\n")
	}

	content.WriteString("\n")

	shortcuts := []string{
		statusKeyStyle.Render("↑↓") + statusDescStyle.Render(" Navigate"),
		statusKeyStyle.Render("Enter") + statusDescStyle.Render(" Select"),
		statusKeyStyle.Render("Esc") + statusDescStyle.Render(" Cancel"),
	}
	content.WriteString(strings.Join(shortcuts, "  │  "))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2).
		Width(width)

	return boxStyle.Render(content.String())
}

// RunChat starts the chat TUI
func RunChat(client ChatClient, session *chat.Session, cfg config.Config, keyHint string) error {
	m := NewChatModel(client, session, cfg, keyHint)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
