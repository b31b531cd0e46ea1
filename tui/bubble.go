package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/vidmeta/vidmeta/internal/ui"
	"github.com/vidmeta/vidmeta/key"
	"github.com/vidmeta/vidmeta/lifecycle"
	"github.com/vidmeta/vidmeta/lookup"
	"github.com/vidmeta/vidmeta/metadata"
	"github.com/vidmeta/vidmeta/playback"
	"github.com/vidmeta/vidmeta/query"
	"github.com/vidmeta/vidmeta/style"
	"github.com/vidmeta/vidmeta/util"
)

type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	// components
	spinnerC spinner.Model
	inputC   textinput.Model
	menuC    list.Model
	titlesC  list.Model
	tracksC  list.Model
	helpC    help.Model

	scope *lifecycle.Scope

	lookup        *lookup.Model
	lookupState   lookup.State
	lookupUpdates <-chan lookup.State

	// session owns the playback model and its engine while the player
	// screen is open.
	session         *lifecycle.Scope
	playback        *playback.Model
	playbackState   playback.State
	playbackUpdates <-chan playback.State
	stream          stream

	lastError        error
	searchSuggestion mo.Option[string]
	notifier         *ui.Model

	width, height int

	options *Options
}

// stream is the media of a player session.
type stream struct {
	manifestURL, licenseURL string
}

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != errorState {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

func (b *statefulBubble) previousState() {
	if b.state == playerState {
		b.stopPlayback()
	}

	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	for _, l := range []*list.Model{&b.menuC, &b.titlesC, &b.tracksC} {
		l.SetSize(listWidth, listHeight)
		l.Help.Width = listWidth
	}

	b.inputC.Width = util.Max(listWidth-len(b.inputC.Prompt)-1, 0)
	b.width = util.Max(width-x, 0)
	b.height = util.Max(height-y, 0)
	b.helpC.Width = listWidth
}

func newBubble(scope *lifecycle.Scope, options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		scope:         scope,
		notifier:      &ui.Model{},
		options:       options,
	}

	bubble.lookup = lookup.New(
		scope,
		options.Repository,
		lookup.WithSamples(options.Samples...),
		lookup.WithHistory(func(id string) error {
			return query.Remember(id, 1)
		}),
	)
	bubble.lookupState = bubble.lookup.State().Value()
	bubble.lookupUpdates = bubble.lookup.State().Subscribe()

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
	}

	makeList := func(title string, options *listOptions) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.StatusMessageLifetime = time.Second * 3
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.Mauve)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = "Video ID"
	bubble.inputC.CharLimit = 64
	bubble.inputC.Prompt = viper.GetString(key.TUIInputPrompt)

	bubble.menuC = makeList("vidmeta", &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Surface).Background(style.AccentColor).Padding(0, 1),
		),
	})
	bubble.menuC.SetFilteringEnabled(false)
	bubble.menuC.SetItems([]list.Item{
		&listItem{internal: &menuEntry{name: "Look up metadata", description: "Fetch a video record by ID from " + options.Repository.Name(), target: lookupState}},
		&listItem{internal: &menuEntry{name: "Browse titles", description: "Pick a known title to look up", target: titlesState}},
		&listItem{internal: &menuEntry{name: "Play stream", description: "Load the configured manifest and choose a quality", target: playerState}},
	})

	bubble.titlesC = makeList("Titles", &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Surface).Background(style.Lavender).Padding(0, 1),
		),
	})
	bubble.titlesC.SetItems(lo.Map(options.Titles, func(t metadata.Title, _ int) list.Item {
		return &listItem{internal: t}
	}))
	bubble.titlesC.SetStatusBarItemName("title", "titles")

	bubble.tracksC = makeList("Quality", &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Surface).Background(style.Peach).Padding(0, 1),
		),
	})
	bubble.tracksC.SetFilteringEnabled(false)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(menuState)
	return &bubble
}
