/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nakachan-ing/expert-notes/internal/model"
	"github.com/nakachan-ing/expert-notes/internal/store"
	"github.com/spf13/cobra"
)

type configModel struct {
	cursor    int
	fields    []string
	config    model.Config
	path      string
	textInput textinput.Model
	editMode  bool
	status    string
	saved     bool
}

func newConfigModel(config model.Config, path string) *configModel {
	return &configModel{
		cursor:    0,
		fields:    generateFieldList(),
		config:    config,
		path:      path,
		textInput: textinput.New(),
		editMode:  false,
	}
}

const saveAndExit = "Save & Exit"

func generateFieldList() []string {
	return []string{
		"DataDir", "StorageKey", "Editor",
		"Dictation.Command", "Dictation.Args", "Dictation.Language",
		"Dictation.Continuous", "Dictation.InterimResults",
		"Dictation.MaxAlternatives", "Dictation.StopOnError",
		"Notify.SuccessDuration", "Notify.WarningDuration",
		"Log.Level", "Log.Format", "Log.File",
		saveAndExit,
	}
}

func (m *configModel) Init() tea.Cmd {
	return nil
}

func (m *configModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editMode {
			switch msg.String() {
			case "enter":
				if err := m.setFieldValue(m.fields[m.cursor], m.textInput.Value()); err != nil {
					m.status = "⚠️ " + err.Error()
				} else {
					m.status = ""
				}
				m.editMode = false
				m.textInput.Blur()
			case "esc":
				m.editMode = false
				m.textInput.Blur()
			default:
				var cmd tea.Cmd
				m.textInput, cmd = m.textInput.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down":
			if m.cursor < len(m.fields)-1 {
				m.cursor++
			}
		case "enter":
			if m.fields[m.cursor] == saveAndExit {
				if err := store.SaveConfigTo(m.path, m.config); err != nil {
					m.status = "⚠️ " + err.Error()
					return m, nil
				}
				m.saved = true
				return m, tea.Quit
			}
			m.editMode = true
			m.textInput.SetValue(m.getFieldValue(m.fields[m.cursor]))
			return m, m.textInput.Focus()
		}
	}

	return m, nil
}

func (m *configModel) View() string {
	var s strings.Builder
	s.WriteString("📄 Configure notes\n")
	s.WriteString(m.path + "\n\n")

	for i, field := range m.fields {
		cursor := "  "
		if m.cursor == i {
			cursor = "👉"
		}
		if field == saveAndExit {
			s.WriteString(fmt.Sprintf("%s %s\n", cursor, field))
			continue
		}
		s.WriteString(fmt.Sprintf("%s %s: %s\n", cursor, field, m.getFieldValue(field)))
	}

	if m.status != "" {
		s.WriteString("\n" + m.status + "\n")
	}

	if m.editMode {
		s.WriteString("\n✏️  Editing: " + m.fields[m.cursor] + "\n")
		s.WriteString(m.textInput.View() + "\n")
		s.WriteString("(Enter to apply, ESC to cancel)\n")
	} else {
		s.WriteString("\n↑/↓ to move, Enter to edit, Q to quit without saving\n")
	}

	return s.String()
}

func (m *configModel) getFieldValue(field string) string {
	c := m.config
	switch field {
	case "DataDir":
		return c.DataDir
	case "StorageKey":
		return c.StorageKey
	case "Editor":
		return c.Editor
	case "Dictation.Command":
		return c.Dictation.Command
	case "Dictation.Args":
		return strings.Join(c.Dictation.Args, " ")
	case "Dictation.Language":
		return c.Dictation.Language
	case "Dictation.Continuous":
		return strconv.FormatBool(c.Dictation.Continuous)
	case "Dictation.InterimResults":
		return strconv.FormatBool(c.Dictation.InterimResults)
	case "Dictation.MaxAlternatives":
		return strconv.Itoa(c.Dictation.MaxAlternatives)
	case "Dictation.StopOnError":
		return strconv.FormatBool(c.Dictation.StopOnError)
	case "Notify.SuccessDuration":
		return c.Notify.SuccessDuration.String()
	case "Notify.WarningDuration":
		return c.Notify.WarningDuration.String()
	case "Log.Level":
		return c.Log.Level
	case "Log.Format":
		return c.Log.Format
	case "Log.File":
		return c.Log.File
	default:
		return "UNKNOWN"
	}
}

// setFieldValue parses value into field. Values that fail to parse leave the
// config unchanged.
func (m *configModel) setFieldValue(field, value string) error {
	c := &m.config
	value = strings.TrimSpace(value)

	switch field {
	case "DataDir":
		c.DataDir = value
	case "StorageKey":
		c.StorageKey = value
	case "Editor":
		c.Editor = value
	case "Dictation.Command":
		c.Dictation.Command = value
	case "Dictation.Args":
		c.Dictation.Args = strings.Fields(value)
	case "Dictation.Language":
		c.Dictation.Language = value
	case "Dictation.Continuous", "Dictation.InterimResults", "Dictation.StopOnError":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false", field)
		}
		switch field {
		case "Dictation.Continuous":
			c.Dictation.Continuous = b
		case "Dictation.InterimResults":
			c.Dictation.InterimResults = b
		default:
			c.Dictation.StopOnError = b
		}
	case "Dictation.MaxAlternatives":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be a number", field)
		}
		c.Dictation.MaxAlternatives = n
	case "Notify.SuccessDuration", "Notify.WarningDuration":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s must be a duration such as 4s", field)
		}
		if field == "Notify.SuccessDuration" {
			c.Notify.SuccessDuration = d
		} else {
			c.Notify.WarningDuration = d
		}
	case "Log.Level":
		c.Log.Level = value
	case "Log.Format":
		c.Log.Format = value
	case "Log.File":
		c.Log.File = value
	default:
		return fmt.Errorf("unknown field %s", field)
	}
	return nil
}

// newConfigCmd builds the interactive config command.
func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Configure config.yaml interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.configPath()
			if err != nil {
				return fmt.Errorf("failed to get config path: %w", err)
			}

			config, err := opts.loadConfig()
			if err != nil {
				return fmt.Errorf("❌ Error loading config: %w", err)
			}

			m := newConfigModel(*config, path)
			if _, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run(); err != nil {
				return fmt.Errorf("❌ Error running TUI: %w", err)
			}
			if m.saved {
				fmt.Fprintln(cmd.OutOrStdout(), "✅ Config saved to", path)
			}
			return nil
		},
	}
}
