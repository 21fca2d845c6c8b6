// Command cerata-explore is an interactive TUI for browsing a built
// Component's instance hierarchy: step through instances, inspect the
// flattened type view of the selected instance's ports, and preview the VHDL declaration
// text for the instance under the cursor. Its model/Init/Update/View shape
// and pane-composition style are grounded directly on the teacher's
// cpu.Debug/model (cpu/debugger.go): a bubbletea model wrapping the domain
// state (here, a Component and TypeRegistry instead of a Cpu and program
// counter), rendered with lipgloss.JoinHorizontal/JoinVertical.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	core "cerata/cerata"
	"cerata/examples"
	"cerata/vhdl"
)

type model struct {
	ctx  *core.Context
	top  *core.Component
	reg  *vhdl.TypeRegistry
	cursor int
	err    error
}

// Init performs no asynchronous setup; the Component is already built by
// the time the model is constructed.
func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "j", "down", " ":
			if m.cursor < len(m.top.Instances())-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

// instanceList renders the instance names, highlighting the one under the
// cursor -- the same "current row marked, rest plain" convention as
// renderPage's PC-highlight bracket.
func (m model) instanceList() string {
	s := fmt.Sprintf("%s (%d instances)\n", m.top.Name(), len(m.top.Instances()))
	for i, inst := range m.top.Instances() {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		s += fmt.Sprintf("%s%s : %s\n", marker, inst.Name(), inst.Component().Name())
	}
	return s
}

func (m model) selected() (*core.Instance, bool) {
	insts := m.top.Instances()
	if m.cursor < 0 || m.cursor >= len(insts) {
		return nil, false
	}
	return insts[m.cursor], true
}

// portTypes renders the flattened, VHDL-filtered type view of every port on
// the selected instance.
func (m model) portTypes() string {
	inst, ok := m.selected()
	if !ok {
		return "(no instance selected)"
	}
	s := fmt.Sprintf("ports of %s:\n", inst.Name())
	for _, p := range inst.Ports() {
		s += fmt.Sprintf("  %s (%s)\n", p.Name(), p.Dir)
		for _, f := range core.FilterForVHDL(core.Flatten(p.Type())) {
			s += fmt.Sprintf("    %s : %s\n", f.Name(p.Name()), f.Type.Kind())
		}
	}
	return s
}

// vhdlPreview renders the selected instance's component declaration text.
func (m model) vhdlPreview() string {
	inst, ok := m.selected()
	if !ok {
		return ""
	}
	decl, err := vhdl.DeclComponent(inst.Component(), false, m.reg)
	if err != nil {
		return "error: " + err.Error()
	}
	return decl
}

func (m model) View() string {
	top := lipgloss.JoinHorizontal(lipgloss.Top, m.instanceList(), "    ", m.portTypes())
	bottom := m.vhdlPreview()
	if m.err != nil {
		bottom = "error: " + m.err.Error()
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, "", bottom, "", "(j/k move, q quit)")
}

func main() {
	ctx := core.NewContext()
	top, err := examples.BuildPipeline(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "build design:", err)
		os.Exit(1)
	}
	if err := core.ResolveAllPortToPort(top); err != nil {
		fmt.Fprintln(os.Stderr, "resolve port-to-port:", err)
		os.Exit(1)
	}
	if err := core.ExpandStreams(top); err != nil {
		fmt.Fprintln(os.Stderr, "expand streams:", err)
		os.Exit(1)
	}

	reg := vhdl.NewTypeRegistry()
	m, err := tea.NewProgram(model{ctx: ctx, top: top, reg: reg}).Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "run TUI:", err)
		os.Exit(1)
	}
	if fm, ok := m.(model); ok && fm.err != nil {
		fmt.Fprintln(os.Stderr, "error:", fm.err)
		os.Exit(1)
	}
}
