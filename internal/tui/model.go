// Package tui runs the Bubble Tea program. It translates keys into reducer
// events and turns save requests into commands; all state lives in app.State.
package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todolists/internal/app"
	"github.com/idilsaglam/todolists/internal/model"
	"github.com/idilsaglam/todolists/internal/ui"
)

// Saver persists a snapshot of the lists. It is called off the UI goroutine.
type Saver interface {
	Save(lists []model.List) error
}

type mode int

const (
	modeBrowse mode = iota
	modeNewList
	modeRenameList
	modeNewItem
	modeRenameItem
)

// Model implements tea.Model on top of app.State.
type Model struct {
	state *app.State
	saver Saver
	theme ui.Theme
	help  help.Model
	log   *log.Logger

	focus      ui.Focus
	mode       mode
	listCursor int
	itemCursor int         // position in the filtered items
	target     app.ItemRef // what the input edits; Item is unset for list inputs
	input      textinput.Model

	title         string
	width, height int
}

func New(s *app.State, saver Saver, theme ui.Theme, logger *log.Logger) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		state: s,
		saver: saver,
		theme: theme,
		help:  help.New(),
		log:   logger,
		input: ti,
	}
}

// State exposes the application state, for the final save on exit.
func (m Model) State() *app.State { return m.state }

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.state.Title())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case app.Saved:
		return m.dispatch(msg)

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.mode != modeBrowse {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// dispatch applies events in order and schedules whatever the reducer asks for.
func (m Model) dispatch(evs ...app.Event) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, ev := range evs {
		if req := m.state.Apply(ev); req != nil {
			cmds = append(cmds, m.save(req))
		}
	}
	m.clamp()

	if t := m.state.Title(); t != m.title {
		m.title = t
		cmds = append(cmds, tea.SetWindowTitle(t))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) save(req *app.SaveRequest) tea.Cmd {
	saver := m.saver
	return func() tea.Msg {
		return app.Saved{Revision: req.Revision, Err: saver.Save(req.Lists)}
	}
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.log.Info("quit", "dirty", m.state.Dirty, "saving", m.state.Saving())
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, keys.Filter):
		return m.dispatch(app.SetFilter{Filter: m.state.Filter.Next()})

	case key.Matches(msg, keys.AddList):
		m.focus = ui.FocusLists
		focus := m.startInput(modeNewList, app.ItemRef{}, m.state.NewListInput, "New list name...")
		var cmd tea.Cmd
		m, cmd = m.dispatch(app.AddingList{})
		return m, tea.Batch(focus, cmd)

	case key.Matches(msg, keys.Switch):
		if m.focus == ui.FocusLists {
			if _, ok := m.state.CurrentList(); ok {
				m.focus = ui.FocusItems
			}
		} else {
			m.focus = ui.FocusLists
		}
		return m, nil
	}

	if m.focus == ui.FocusLists {
		return m.browseLists(msg)
	}
	return m.browseItems(msg)
}

func (m Model) browseLists(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.listCursor > 0 {
			m.listCursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.listCursor < len(m.state.Lists)-1 {
			m.listCursor++
		}
		return m, nil
	}

	l, ok := m.cursorList()
	if !ok {
		return m, nil
	}
	ref := app.ListRef{List: l.ID}

	switch {
	case key.Matches(msg, keys.Select):
		m.focus = ui.FocusItems
		m.itemCursor = 0
		return m.dispatch(app.SelectList{ListRef: ref})

	case key.Matches(msg, keys.Edit):
		focus := m.startInput(modeRenameList, app.ItemRef{List: l.ID}, l.Name, "List name...")
		var cmd tea.Cmd
		m, cmd = m.dispatch(app.StartEditList{ListRef: ref})
		return m, tea.Batch(focus, cmd)

	case key.Matches(msg, keys.Delete):
		return m.dispatch(app.DeleteList{ListRef: ref})
	}
	return m, nil
}

func (m Model) browseItems(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l, ok := m.state.CurrentList()
	if !ok {
		m.focus = ui.FocusLists
		return m, nil
	}
	visible := m.state.Filter.Apply(l.Items)

	switch {
	case key.Matches(msg, keys.Up):
		if m.itemCursor > 0 {
			m.itemCursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.itemCursor < len(visible)-1 {
			m.itemCursor++
		}
		return m, nil

	case key.Matches(msg, keys.Cancel):
		m.focus = ui.FocusLists
		return m, nil

	case key.Matches(msg, keys.AddItem):
		focus := m.startInput(modeNewItem, app.ItemRef{List: l.ID}, l.Input, "Input Todo")
		return m, focus
	}

	if m.itemCursor >= len(visible) {
		return m, nil
	}
	it := visible[m.itemCursor]
	ref := app.ItemRef{List: l.ID, Item: it.ID}

	switch {
	case key.Matches(msg, keys.Toggle):
		return m.dispatch(app.SetCompleted{ItemRef: ref, Completed: !it.Completed})

	case key.Matches(msg, keys.Edit):
		focus := m.startInput(modeRenameItem, ref, it.Name, "Item name...")
		var cmd tea.Cmd
		m, cmd = m.dispatch(app.StartEditItem{ItemRef: ref})
		return m, tea.Batch(focus, cmd)

	case key.Matches(msg, keys.Delete):
		return m.dispatch(app.DeleteItem{ItemRef: ref})
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.log.Info("quit", "dirty", m.state.Dirty, "saving", m.state.Saving())
		return m, tea.Quit

	case key.Matches(msg, keys.Submit):
		return m.submitInput()

	case key.Matches(msg, keys.Cancel):
		return m.leaveInput(m.doneEvent())

	case key.Matches(msg, keys.EditDel):
		switch m.mode {
		case modeRenameList:
			return m.leaveInput(app.DeleteList{ListRef: app.ListRef{List: m.target.List}})
		case modeRenameItem:
			return m.leaveInput(app.DeleteItem{ItemRef: m.target})
		}
	}

	var cmd, ecmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m, ecmd = m.dispatch(m.inputEvent(m.input.Value()))
	return m, tea.Batch(cmd, ecmd)
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modeNewList:
		m, cmd = m.dispatch(app.NewListSubmit{})
		if !m.state.AddingList {
			m.listCursor = len(m.state.Lists) - 1
			m.stopInput()
		}
		return m, cmd

	case modeNewItem:
		// stay in the input so several items can be typed in a row
		m, cmd = m.dispatch(app.SubmitItem{ListRef: app.ListRef{List: m.target.List}})
		m.input.SetValue("")
		return m, cmd
	}
	return m.leaveInput(m.doneEvent())
}

// doneEvent closes the current input. The new item buffer is kept on the list.
func (m Model) doneEvent() app.Event {
	switch m.mode {
	case modeNewList:
		return app.CancelAddingList{}
	case modeRenameList:
		return app.DoneEditList{ListRef: app.ListRef{List: m.target.List}}
	case modeRenameItem:
		return app.DoneEditItem{ItemRef: m.target}
	}
	return nil
}

func (m Model) inputEvent(text string) app.Event {
	list := app.ListRef{List: m.target.List}
	switch m.mode {
	case modeNewList:
		return app.NewListInput{Text: text}
	case modeRenameList:
		return app.RenameList{ListRef: list, Name: text}
	case modeNewItem:
		return app.ListInput{ListRef: list, Text: text}
	default:
		return app.RenameItem{ItemRef: m.target, Name: text}
	}
}

func (m Model) leaveInput(ev app.Event) (tea.Model, tea.Cmd) {
	m.stopInput()
	if ev == nil {
		return m, nil
	}
	return m.dispatch(ev)
}

func (m *Model) startInput(md mode, target app.ItemRef, value, placeholder string) tea.Cmd {
	m.mode = md
	m.target = target
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) stopInput() {
	m.mode = modeBrowse
	m.target = app.ItemRef{}
	m.input.SetValue("")
	m.input.Blur()
}

func (m Model) cursorList() (model.List, bool) {
	if m.listCursor < 0 || m.listCursor >= len(m.state.Lists) {
		return model.List{}, false
	}
	return m.state.Lists[m.listCursor], true
}

// clamp keeps cursors inside what is currently visible.
func (m *Model) clamp() {
	m.listCursor = clampIndex(m.listCursor, len(m.state.Lists))
	l, ok := m.state.CurrentList()
	if !ok {
		m.itemCursor = 0
		m.focus = ui.FocusLists
		return
	}
	m.itemCursor = clampIndex(m.itemCursor, len(m.state.Filter.Apply(l.Items)))
}

func clampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m Model) View() string {
	v := ui.View{
		State:      m.state,
		Theme:      m.theme,
		Focus:      m.focus,
		ListCursor: m.listCursor,
		ItemCursor: m.itemCursor,
		Help:       m.help.View(keys),
		Width:      m.width,
		Height:     m.height,
	}
	switch m.mode {
	case modeNewList:
		v.NewListInput = m.input.View()
	case modeRenameList:
		v.ListEdit = m.input.View()
	case modeNewItem:
		v.ItemInput = m.input.View()
	case modeRenameItem:
		v.ItemEdit = m.input.View()
	}
	if v.ItemInput == "" {
		if l, ok := m.state.CurrentList(); ok && l.Input != "" {
			v.ItemInput = m.theme.Muted.Render("> " + l.Input)
		}
	}
	return ui.Render(v)
}
