package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/openparlor/parlor-ctl/internal/config"
)

// DeployOptions holds the values collected by the deploy wizard.
// AppPort and DBPort are zero when the allocator should pick.
type DeployOptions struct {
	Name        string
	CompanyName string
	AdminEmail  string
	AppPort     int
	DBPort      int
}

// wizardStep identifies the current step.
type wizardStep int

const (
	stepName wizardStep = iota
	stepCompany
	stepEmail
	stepPorts
	stepConfirm
)

// portField identifies a field in the ports step.
type portField int

const (
	portApp portField = iota
	portDB
	portFieldCount
)

// wizardModel drives the multi-step deploy wizard.
type wizardModel struct {
	step wizardStep

	nameInput    textinput.Model
	companyInput textinput.Model
	emailInput   textinput.Model

	// Ports step, reached with Ctrl+A from the email step.
	portCursor   portField
	appPortInput textinput.Model
	dbPortInput  textinput.Model

	selectedName    string
	selectedCompany string
	selectedEmail   string
}

// wizardStyles
var (
	wizardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginBottom(1)

	wizardStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardActiveStepStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	wizardLabelStyle = lipgloss.NewStyle().
				Bold(true).
				MarginBottom(1)

	wizardValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	wizardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

func newWizardModel() wizardModel {
	ni := textinput.New()
	ni.Placeholder = "instance-name"
	ni.Focus()
	ni.CharLimit = 63
	ni.Width = 40

	ci := textinput.New()
	ci.Placeholder = "Acme Corp"
	ci.CharLimit = 128
	ci.Width = 50

	ei := textinput.New()
	ei.Placeholder = "admin@example.com"
	ei.CharLimit = 128
	ei.Width = 50

	api := textinput.New()
	api.Placeholder = "auto"
	api.CharLimit = 5
	api.Width = 10

	dpi := textinput.New()
	dpi.Placeholder = "auto"
	dpi.CharLimit = 5
	dpi.Width = 10

	return wizardModel{
		step:         stepName,
		nameInput:    ni,
		companyInput: ci,
		emailInput:   ei,
		appPortInput: api,
		dbPortInput:  dpi,
	}
}

func (w *wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update processes a message and returns (done, deployOptions, cmd).
// done=true with non-nil opts means wizard completed successfully.
// done=true with nil opts means wizard was cancelled.
func (w *wizardModel) Update(msg tea.Msg) (bool, *DeployOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			return true, nil, nil
		case tea.KeyEsc:
			return w.handleBack()
		}
	}

	switch w.step {
	case stepName:
		return w.updateName(msg)
	case stepCompany:
		return w.updateCompany(msg)
	case stepEmail:
		return w.updateEmail(msg)
	case stepPorts:
		return w.updatePorts(msg)
	case stepConfirm:
		return w.updateConfirm(msg)
	}

	return false, nil, nil
}

func (w *wizardModel) handleBack() (bool, *DeployOptions, tea.Cmd) {
	switch w.step {
	case stepName:
		// Esc at first step cancels wizard
		return true, nil, nil
	case stepCompany:
		w.step = stepName
		w.companyInput.Blur()
		w.nameInput.Focus()
		return false, nil, textinput.Blink
	case stepEmail:
		w.step = stepCompany
		w.emailInput.Blur()
		w.companyInput.Focus()
		return false, nil, textinput.Blink
	case stepPorts:
		w.step = stepEmail
		w.blurPortInputs()
		w.emailInput.Focus()
		return false, nil, textinput.Blink
	case stepConfirm:
		w.step = stepEmail
		w.emailInput.Focus()
		return false, nil, textinput.Blink
	}
	return false, nil, nil
}

func (w *wizardModel) updateName(msg tea.Msg) (bool, *DeployOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		name := strings.TrimSpace(w.nameInput.Value())
		if name == "" {
			return false, nil, nil
		}
		if err := config.ValidateInstanceName(name); err != nil {
			return false, nil, nil
		}
		w.selectedName = name
		w.step = stepCompany
		w.nameInput.Blur()
		w.companyInput.Focus()
		return false, nil, textinput.Blink
	}

	var cmd tea.Cmd
	w.nameInput, cmd = w.nameInput.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) updateCompany(msg tea.Msg) (bool, *DeployOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		company := strings.TrimSpace(w.companyInput.Value())
		if company == "" {
			return false, nil, nil
		}
		w.selectedCompany = company
		w.step = stepEmail
		w.companyInput.Blur()
		w.emailInput.Focus()
		return false, nil, textinput.Blink
	}

	var cmd tea.Cmd
	w.companyInput, cmd = w.companyInput.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) updateEmail(msg tea.Msg) (bool, *DeployOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			email := strings.TrimSpace(w.emailInput.Value())
			if !validEmail(email) {
				return false, nil, nil
			}
			w.selectedEmail = email
			w.step = stepConfirm
			w.emailInput.Blur()
			return false, nil, nil
		case tea.KeyCtrlA:
			email := strings.TrimSpace(w.emailInput.Value())
			if !validEmail(email) {
				return false, nil, nil
			}
			w.selectedEmail = email
			w.step = stepPorts
			w.emailInput.Blur()
			w.portCursor = portApp
			return false, nil, w.focusCurrentPortInput()
		}
	}

	var cmd tea.Cmd
	w.emailInput, cmd = w.emailInput.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) activePortInput() *textinput.Model {
	if w.portCursor == portDB {
		return &w.dbPortInput
	}
	return &w.appPortInput
}

func (w *wizardModel) blurPortInputs() {
	w.appPortInput.Blur()
	w.dbPortInput.Blur()
}

func (w *wizardModel) focusCurrentPortInput() tea.Cmd {
	w.blurPortInputs()
	w.activePortInput().Focus()
	return textinput.Blink
}

func (w *wizardModel) updatePorts(msg tea.Msg) (bool, *DeployOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			w.blurPortInputs()
			w.step = stepConfirm
			return false, nil, nil
		case tea.KeyUp:
			w.portCursor = (w.portCursor - 1 + portFieldCount) % portFieldCount
			return false, nil, w.focusCurrentPortInput()
		case tea.KeyDown, tea.KeyTab:
			w.portCursor = (w.portCursor + 1) % portFieldCount
			return false, nil, w.focusCurrentPortInput()
		}
	}

	ti := w.activePortInput()
	var cmd tea.Cmd
	*ti, cmd = ti.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) updateConfirm(msg tea.Msg) (bool, *DeployOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "y":
			return true, &DeployOptions{
				Name:        w.selectedName,
				CompanyName: w.selectedCompany,
				AdminEmail:  w.selectedEmail,
				AppPort:     parsePort(w.appPortInput.Value()),
				DBPort:      parsePort(w.dbPortInput.Value()),
			}, nil
		case "n":
			// Restart wizard
			w.step = stepName
			w.nameInput.SetValue("")
			w.nameInput.Focus()
			w.companyInput.SetValue("")
			w.emailInput.SetValue("")
			w.appPortInput.SetValue("")
			w.dbPortInput.SetValue("")
			w.selectedName = ""
			w.selectedCompany = ""
			w.selectedEmail = ""
			return false, nil, textinput.Blink
		}
	}
	return false, nil, nil
}

func (w *wizardModel) View() string {
	var b strings.Builder

	b.WriteString(wizardTitleStyle.Render("Deploy New Instance"))
	b.WriteString("\n")
	b.WriteString(w.progressBar())
	b.WriteString("\n\n")

	switch w.step {
	case stepName:
		b.WriteString(wizardLabelStyle.Render("Instance name:"))
		b.WriteString("\n")
		b.WriteString(w.nameInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Lowercase letters, digits, and hyphens. Used for the directory and container names."))
	case stepCompany:
		b.WriteString(wizardLabelStyle.Render("Company name:"))
		b.WriteString("\n")
		b.WriteString(w.companyInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Shown to the instance's users."))
	case stepEmail:
		b.WriteString(wizardLabelStyle.Render("Admin email:"))
		b.WriteString("\n")
		b.WriteString(w.emailInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Enter to confirm, Ctrl+A to choose ports manually."))
	case stepPorts:
		b.WriteString(wizardLabelStyle.Render("Ports:"))
		b.WriteString("\n\n")
		b.WriteString(w.renderPortInput(portApp, "App port", "Host port for the web app, blank for automatic", &w.appPortInput))
		b.WriteString("\n")
		b.WriteString(w.renderPortInput(portDB, "DB port", "Host port for PostgreSQL, blank for automatic", &w.dbPortInput))
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Tab to switch, Enter to continue, Esc to go back."))
	case stepConfirm:
		b.WriteString(wizardLabelStyle.Render("Confirm:"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  Name:    %s\n", wizardValueStyle.Render(w.selectedName)))
		b.WriteString(fmt.Sprintf("  Company: %s\n", wizardValueStyle.Render(w.selectedCompany)))
		b.WriteString(fmt.Sprintf("  Email:   %s\n", wizardValueStyle.Render(w.selectedEmail)))
		if p := parsePort(w.appPortInput.Value()); p != 0 {
			b.WriteString(fmt.Sprintf("  App port:%s\n", wizardValueStyle.Render(fmt.Sprintf(" %d", p))))
		}
		if p := parsePort(w.dbPortInput.Value()); p != 0 {
			b.WriteString(fmt.Sprintf("  DB port: %s\n", wizardValueStyle.Render(fmt.Sprintf("%d", p))))
		}
		b.WriteString("\n")
		b.WriteString(wizardDimStyle.Render("Enter to deploy, n to restart, Esc to go back."))
	}

	return b.String()
}

func (w *wizardModel) progressBar() string {
	steps := []struct {
		num  int
		name string
	}{
		{1, "Name"},
		{2, "Company"},
		{3, "Email"},
		{4, "Confirm"},
	}

	var parts []string
	for _, s := range steps {
		label := fmt.Sprintf("%d. %s", s.num, s.name)
		currentStep := int(w.step) + 1
		// Map stepPorts to stepEmail for progress display
		if w.step == stepPorts {
			currentStep = int(stepEmail) + 1
		}
		if s.num == currentStep {
			parts = append(parts, wizardActiveStepStyle.Render(label))
		} else {
			parts = append(parts, wizardStepStyle.Render(label))
		}
	}

	return strings.Join(parts, wizardDimStyle.Render(" > "))
}

func (w *wizardModel) renderPortInput(field portField, name, desc string, ti *textinput.Model) string {
	cursor := " "
	if w.portCursor == field {
		cursor = ">"
	}

	if w.portCursor == field {
		line := fmt.Sprintf("  %s %s: %s", cursor, name, ti.View())
		return selectedStyle.Render(line) + "\n" + wizardDimStyle.Render("      "+desc)
	}

	val := strings.TrimSpace(ti.Value())
	if val == "" {
		val = "(auto)"
	}
	line := fmt.Sprintf("  %s %s: %s", cursor, name, val)
	return line + "\n" + wizardDimStyle.Render("      "+desc)
}

// validEmail is a plausibility check, not full address validation.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

func parsePort(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		return 0
	}
	return p
}

// programModel adapts wizardModel to the tea.Model interface.
type programModel struct {
	wizard *wizardModel
	result *DeployOptions
	done   bool
}

func (m programModel) Init() tea.Cmd {
	return m.wizard.Init()
}

func (m programModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	done, opts, cmd := m.wizard.Update(msg)
	if done {
		m.done = true
		m.result = opts
		return m, tea.Quit
	}
	return m, cmd
}

func (m programModel) View() string {
	if m.done {
		return ""
	}
	return m.wizard.View()
}

// RunDeployWizard runs the interactive deploy wizard. A nil result with
// a nil error means the wizard was cancelled.
func RunDeployWizard() (*DeployOptions, error) {
	w := newWizardModel()
	p := tea.NewProgram(programModel{wizard: &w})

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	return finalModel.(programModel).result, nil
}
