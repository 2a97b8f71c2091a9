package dashboard

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	togglePause key.Binding
	split       key.Binding
	clear       key.Binding
	zoomIn      key.Binding
	zoomOut     key.Binding
	quit        key.Binding
}

var defaultKeymap = keymap{
	togglePause: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "pause/resume"),
	),
	split: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "split"),
	),
	clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear trace"),
	),
	zoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	zoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "stop and save"),
	),
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.togglePause,
		k.split,
		k.clear,
		k.zoomIn,
		k.zoomOut,
		k.quit,
	}
}
