package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/routerchat/internal/config"
	"github.com/diogo/routerchat/internal/models"
	"github.com/diogo/routerchat/internal/render"
)

// configView represents the current view in the config menu
type configView int

const (
	viewMain configView = iota
	viewModelSelect
	viewThemeSelect    // Markdown theme
	viewTUIThemeSelect // TUI color theme
)

// Menu item indices for main view
const (
	menuDefaultModel = iota
	menuTypingEffect
	menuVerbose
	menuCopyToClipboard
	menuTheme    // Markdown theme
	menuTUITheme // TUI color theme
	menuExit
	menuItemCount
)

// feedbackClearMsg is sent to clear feedback messages
type feedbackClearMsg struct{}

// ConfigModel represents the config TUI state
type ConfigModel struct {
	config    config.Config
	configDir string
	keyHint   string // masked API key, empty when no credential is set

	// Navigation
	view           configView
	cursor         int
	modelCursor    int
	themeCursor    int // Markdown theme cursor
	tuiThemeCursor int // TUI theme cursor

	// Feedback
	feedback        string
	feedbackTimeout time.Duration

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewConfigModel creates a new config TUI model
func NewConfigModel() ConfigModel {
	cfg, err := config.LoadConfig()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	configDir, _ := config.GetConfigDir()

	keyHint := ""
	if key, err := config.LoadAPIKey(); err == nil {
		keyHint = config.MaskKey(key)
	}

	// Find current model index
	modelCursor := 0
	for i, m := range models.AllModels() {
		if m.ID == cfg.DefaultModel {
			modelCursor = i
			break
		}
	}

	// Find current markdown theme index
	themeCursor := 0
	themes := render.ThemeNames()
	currentTheme := cfg.Markdown.Style
	if currentTheme == "" {
		currentTheme = render.ThemeDark
	}
	for i, t := range themes {
		if t == currentTheme {
			themeCursor = i
			break
		}
	}

	// Find current TUI theme index
	tuiThemeCursor := 0
	tuiThemes := render.TUIThemeNames()
	currentTUITheme := cfg.TUITheme
	if currentTUITheme == "" {
		currentTUITheme = "tokyonight"
	}
	for i, t := range tuiThemes {
		if t == currentTUITheme {
			tuiThemeCursor = i
			break
		}
	}

	// Apply the configured TUI theme at startup
	if currentTUITheme != "" {
		render.SetTUITheme(currentTUITheme)
		UpdateTheme()
	}

	return ConfigModel{
		config:          cfg,
		configDir:       configDir,
		keyHint:         keyHint,
		view:            viewMain,
		cursor:          0,
		modelCursor:     modelCursor,
		themeCursor:     themeCursor,
		tuiThemeCursor:  tuiThemeCursor,
		feedbackTimeout: 2 * time.Second,
	}
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

// clearFeedback returns a command that clears the feedback message after a delay
func clearFeedback(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return feedbackClearMsg{}
	})
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		m.feedback = ""

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.view == viewModelSelect || m.view == viewThemeSelect || m.view == viewTUIThemeSelect {
				m.view = viewMain
			} else {
				return m, tea.Quit
			}

		case "up", "k":
			if m.view == viewMain {
				m.cursor--
				if m.cursor < 0 {
					m.cursor = menuItemCount - 1
				}
			} else if m.view == viewModelSelect {
				m.modelCursor--
				if m.modelCursor < 0 {
					m.modelCursor = len(models.AllModels()) - 1
				}
			} else if m.view == viewThemeSelect {
				m.themeCursor--
				if m.themeCursor < 0 {
					m.themeCursor = len(render.ThemeNames()) - 1
				}
			} else if m.view == viewTUIThemeSelect {
				m.tuiThemeCursor--
				if m.tuiThemeCursor < 0 {
					m.tuiThemeCursor = len(render.TUIThemeNames()) - 1
				}
			}

		case "down", "j":
			if m.view == viewMain {
				m.cursor++
				if m.cursor >= menuItemCount {
					m.cursor = 0
				}
			} else if m.view == viewModelSelect {
				m.modelCursor++
				if m.modelCursor >= len(models.AllModels()) {
					m.modelCursor = 0
				}
			} else if m.view == viewThemeSelect {
				m.themeCursor++
				if m.themeCursor >= len(render.ThemeNames()) {
					m.themeCursor = 0
				}
			} else if m.view == viewTUIThemeSelect {
				m.tuiThemeCursor++
				if m.tuiThemeCursor >= len(render.TUIThemeNames()) {
					m.tuiThemeCursor = 0
				}
			}

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

// toggleSetting flips a boolean setting, saves, and reports the result
func (m *ConfigModel) toggleSetting(name string, value *bool) {
	*value = !*value
	if err := config.SaveConfig(m.config); err != nil {
		m.feedback = fmt.Sprintf("Error: %v", err)
		return
	}
	state := "disabled"
	if *value {
		state = "enabled"
	}
	m.feedback = fmt.Sprintf("%s %s", name, state)
}

// handleSelect handles menu item selection
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	if m.view == viewMain {
		switch m.cursor {
		case menuDefaultModel:
			m.view = viewModelSelect
			return m, nil

		case menuTypingEffect:
			m.toggleSetting("Typing effect", &m.config.TypingEffect)
			return m, clearFeedback(m.feedbackTimeout)

		case menuVerbose:
			m.toggleSetting("Verbose logging", &m.config.Verbose)
			return m, clearFeedback(m.feedbackTimeout)

		case menuCopyToClipboard:
			m.toggleSetting("Copy to clipboard", &m.config.CopyToClipboard)
			return m, clearFeedback(m.feedbackTimeout)

		case menuTheme:
			m.view = viewThemeSelect
			return m, nil

		case menuTUITheme:
			m.view = viewTUIThemeSelect
			return m, nil

		case menuExit:
			return m, tea.Quit
		}
	} else if m.view == viewModelSelect {
		catalogue := models.AllModels()
		m.config.DefaultModel = catalogue[m.modelCursor].ID
		if err := config.SaveConfig(m.config); err != nil {
			m.feedback = fmt.Sprintf("Error: %v", err)
		} else {
			m.feedback = fmt.Sprintf("Model set to %s", m.config.DefaultModel)
		}
		m.view = viewMain
		return m, clearFeedback(m.feedbackTimeout)
	} else if m.view == viewThemeSelect {
		themes := render.ThemeNames()
		m.config.Markdown.Style = themes[m.themeCursor]
		if err := config.SaveConfig(m.config); err != nil {
			m.feedback = fmt.Sprintf("Error: %v", err)
		} else {
			m.feedback = fmt.Sprintf("Markdown theme set to %s", m.config.Markdown.Style)
		}
		m.view = viewMain
		return m, clearFeedback(m.feedbackTimeout)
	} else if m.view == viewTUIThemeSelect {
		tuiThemes := render.TUIThemeNames()
		selectedTheme := tuiThemes[m.tuiThemeCursor]
		m.config.TUITheme = selectedTheme

		// Apply the new TUI theme immediately
		render.SetTUITheme(selectedTheme)
		UpdateTheme()

		if err := config.SaveConfig(m.config); err != nil {
			m.feedback = fmt.Sprintf("Error: %v", err)
		} else {
			m.feedback = fmt.Sprintf("TUI theme set to %s", selectedTheme)
		}
		m.view = viewMain
		return m, clearFeedback(m.feedbackTimeout)
	}

	return m, nil
}

// View renders the TUI
func (m ConfigModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	headerContent := configTitleStyle.Render("✦ Configuration")
	header := configHeaderStyle.Width(contentWidth).Render(headerContent)
	sections = append(sections, header)

	// Paths and credential status
	pathsTitle := configSectionTitleStyle.Render("📁 Paths")

	configPath := configPathStyle.Render(m.configDir + "/config.json")
	credentialsPath, _ := config.GetCredentialsPath()

	var keyStatus string
	if m.keyHint != "" {
		keyStatus = configStatusOkStyle.Render("✓ " + m.keyHint)
	} else {
		keyStatus = configStatusErrorStyle.Render("✗ not set")
	}

	pathsContent := lipgloss.JoinVertical(lipgloss.Left,
		pathsTitle,
		fmt.Sprintf("   Config:   %s", configPath),
		fmt.Sprintf("   API key:  %s  %s", configPathStyle.Render(credentialsPath), keyStatus),
	)
	pathsPanel := configPanelStyle.Width(contentWidth).Render(pathsContent)
	sections = append(sections, pathsPanel)

	// Settings menu
	var settingsContent string
	switch m.view {
	case viewMain:
		settingsContent = m.renderMainMenu(contentWidth)
	case viewModelSelect:
		settingsContent = m.renderModelSelect(contentWidth)
	case viewThemeSelect:
		settingsContent = m.renderThemeSelect(contentWidth)
	case viewTUIThemeSelect:
		settingsContent = m.renderTUIThemeSelect(contentWidth)
	}

	settingsPanel := configPanelStyle.Width(contentWidth).Render(settingsContent)
	sections = append(sections, settingsPanel)

	if m.feedback != "" {
		feedbackMsg := configFeedbackStyle.Render("✓ " + m.feedback)
		sections = append(sections, feedbackMsg)
	}

	statusBar := m.renderConfigStatusBar(contentWidth)
	sections = append(sections, statusBar)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// menuLine renders a single main-menu row with aligned value column
func (m ConfigModel) menuLine(index int, label, value string) string {
	cursor := "  "
	style := configMenuItemStyle
	if m.cursor == index {
		cursor = configCursorStyle.Render("▸ ")
		style = configMenuSelectedStyle
	}
	pad := 22 - len(label)
	if pad < 1 {
		pad = 1
	}
	return fmt.Sprintf("%s%s%s%s", cursor, style.Render(label), strings.Repeat(" ", pad), value)
}

// renderMainMenu renders the main settings menu
func (m ConfigModel) renderMainMenu(width int) string {
	title := configSectionTitleStyle.Render("⚙ Settings")

	items := []string{
		m.menuLine(menuDefaultModel, "Default Model", configValueStyle.Render(m.config.DefaultModel)),
		m.menuLine(menuTypingEffect, "Typing Effect", m.renderBoolValue(m.config.TypingEffect)),
		m.menuLine(menuVerbose, "Verbose Logging", m.renderBoolValue(m.config.Verbose)),
		m.menuLine(menuCopyToClipboard, "Copy to Clipboard", m.renderBoolValue(m.config.CopyToClipboard)),
	}

	currentTheme := m.config.Markdown.Style
	if currentTheme == "" {
		currentTheme = render.ThemeDark
	}
	items = append(items, m.menuLine(menuTheme, "Markdown Theme", configValueStyle.Render(currentTheme)))

	currentTUITheme := m.config.TUITheme
	if currentTUITheme == "" {
		currentTUITheme = "tokyonight"
	}
	items = append(items, m.menuLine(menuTUITheme, "TUI Theme", configValueStyle.Render(currentTUITheme)))

	// Separator
	items = append(items, "")

	cursor := "  "
	style := configMenuItemStyle
	if m.cursor == menuExit {
		cursor = configCursorStyle.Render("▸ ")
		style = configMenuSelectedStyle
	}
	items = append(items, cursor+style.Render("Exit"))

	return lipgloss.JoinVertical(lipgloss.Left,
		append([]string{title, ""}, items...)...,
	)
}

// renderModelSelect renders the model selection sub-menu
func (m ConfigModel) renderModelSelect(width int) string {
	title := configSectionTitleStyle.Render("⇄ Select Default Model")

	var items []string
	for i, model := range models.AllModels() {
		cursor := "  "
		style := configMenuItemStyle
		if m.modelCursor == i {
			cursor = configCursorStyle.Render("▸ ")
			style = configMenuSelectedStyle
		}

		current := ""
		if model.ID == m.config.DefaultModel {
			current = configStatusOkStyle.Render(" (current)")
		}
		tag := ""
		if model.Free {
			tag = configEnabledStyle.Render(" [free]")
		}

		items = append(items, cursor+style.Render(model.ID)+tag+current)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		append([]string{title, ""}, items...)...,
	)
}

// renderThemeSelect renders the markdown theme selection sub-menu
func (m ConfigModel) renderThemeSelect(width int) string {
	title := configSectionTitleStyle.Render("🎨 Select Markdown Theme")

	themes := render.AvailableThemes()
	var items []string

	currentTheme := m.config.Markdown.Style
	if currentTheme == "" {
		currentTheme = render.ThemeDark
	}

	for i, theme := range themes {
		cursor := "  "
		style := configMenuItemStyle
		if m.themeCursor == i {
			cursor = configCursorStyle.Render("▸ ")
			style = configMenuSelectedStyle
		}

		current := ""
		if theme.Name == currentTheme {
			current = configStatusOkStyle.Render(" (current)")
		}

		themeText := fmt.Sprintf("%s - %s", theme.Name, theme.Description)
		items = append(items, cursor+style.Render(themeText)+current)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		append([]string{title, ""}, items...)...,
	)
}

// renderTUIThemeSelect renders the TUI color theme selection sub-menu
func (m ConfigModel) renderTUIThemeSelect(width int) string {
	title := configSectionTitleStyle.Render("🎨 Select TUI Theme")

	themes := render.AvailableTUIThemes()
	var items []string

	currentTUITheme := m.config.TUITheme
	if currentTUITheme == "" {
		currentTUITheme = "tokyonight"
	}

	for i, theme := range themes {
		cursor := "  "
		style := configMenuItemStyle
		if m.tuiThemeCursor == i {
			cursor = configCursorStyle.Render("▸ ")
			style = configMenuSelectedStyle
		}

		current := ""
		if theme.Name == currentTUITheme {
			current = configStatusOkStyle.Render(" (current)")
		}

		themeText := fmt.Sprintf("%s - %s", theme.Name, theme.Description)
		items = append(items, cursor+style.Render(themeText)+current)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		append([]string{title, ""}, items...)...,
	)
}

// renderBoolValue renders a boolean value with appropriate styling
func (m ConfigModel) renderBoolValue(value bool) string {
	if value {
		return configEnabledStyle.Render("enabled")
	}
	return configDisabledStyle.Render("disabled")
}

// renderConfigStatusBar renders the bottom status bar
func (m ConfigModel) renderConfigStatusBar(width int) string {
	escDesc := "Exit"
	if m.view != viewMain {
		escDesc = "Back"
	}

	shortcuts := []struct {
		key  string
		desc string
	}{
		{"↑↓", "Navigate"},
		{"Enter", "Select"},
		{"Esc", escDesc},
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
	return configStatusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// RunConfig starts the config TUI
func RunConfig() error {
	m := NewConfigModel()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
