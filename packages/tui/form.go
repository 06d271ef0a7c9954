package tui

import (
	"strings"

	"github.com/abdul-hamid-achik/pathpick/packages/request"
	"github.com/abdul-hamid-achik/pathpick/packages/wizard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	inputMethod = iota
	inputURL
	inputBody
	firstHeaderInput
)

// form holds one input per scalar field followed by one "Key: Value" input
// per header row. Header inputs map to config header rows by position.
type form struct {
	inputs []textinput.Model
	focus  int
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 4096
	ti.SetValue(value)
	return ti
}

func newForm(cfg *request.Config) form {
	f := form{
		inputs: []textinput.Model{
			newInput("GET", string(cfg.Method)),
			newInput("https://api.example.com/price", cfg.URL),
			newInput(`{"symbol":"BTC"}`, cfg.Body),
		},
	}
	for _, h := range cfg.Headers {
		f.inputs = append(f.inputs, newInput("Header: value", formatHeader(h)))
	}
	f.inputs[0].Focus()
	return f
}

func formatHeader(h request.Header) string {
	if h.Key == "" && h.Value == "" {
		return ""
	}
	return h.Key + ": " + h.Value
}

// parseHeader splits "Key: Value". A row without a colon is all key.
func parseHeader(s string) (string, string) {
	key, value, _ := strings.Cut(s, ":")
	return strings.TrimSpace(key), strings.TrimSpace(value)
}

func (f form) label(i int) string {
	switch i {
	case inputMethod:
		return "Method"
	case inputURL:
		return "URL"
	case inputBody:
		return "Body"
	default:
		return "Header"
	}
}

func (f *form) setFocus(i int) {
	if len(f.inputs) == 0 {
		return
	}
	i = (i + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f *form) addHeader(w *wizard.Wizard) error {
	if err := w.AddHeader("", ""); err != nil {
		return err
	}
	f.inputs = append(f.inputs, newInput("Header: value", ""))
	f.setFocus(len(f.inputs) - 1)
	return nil
}

func (f *form) removeHeader(w *wizard.Wizard) error {
	if f.focus < firstHeaderInput {
		return nil
	}
	if err := w.RemoveHeader(f.focus - firstHeaderInput); err != nil {
		return err
	}
	f.inputs = append(f.inputs[:f.focus:f.focus], f.inputs[f.focus+1:]...)
	f.focus--
	f.setFocus(f.focus)
	return nil
}

// update feeds msg to the focused input and writes its value back to the wizard.
func (f *form) update(msg tea.Msg, w *wizard.Wizard) (tea.Cmd, error) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	value := f.inputs[f.focus].Value()

	var err error
	switch f.focus {
	case inputMethod:
		err = w.SetField(request.FieldMethod, value)
	case inputURL:
		err = w.SetField(request.FieldURL, value)
	case inputBody:
		err = w.SetField(request.FieldBody, value)
	default:
		key, val := parseHeader(value)
		err = w.SetHeader(f.focus-firstHeaderInput, key, val)
	}
	return cmd, err
}
