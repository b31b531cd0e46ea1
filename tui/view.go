package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/vidmeta/vidmeta/icon"
	"github.com/vidmeta/vidmeta/metadata"
	"github.com/vidmeta/vidmeta/style"
	"github.com/vidmeta/vidmeta/util"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case menuState:
		output = listExtraPaddingStyle.Render(b.menuC.View())
	case lookupState:
		output = b.viewLookup()
	case titlesState:
		output = listExtraPaddingStyle.Render(b.titlesC.View())
	case playerState:
		output = b.viewPlayer()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLookup() string {
	lines := []string{
		style.Title("Video Metadata"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok && suggestion != b.inputC.Value() {
		lines = append(lines, style.Faint(fmt.Sprintf("tab → %s", suggestion)))
	}

	if samples := b.lookup.Samples(); len(samples) > 0 {
		labels := lo.Map(samples, func(id string, i int) string {
			return fmt.Sprintf("%s %s", style.Fg(style.Mauve)(fmt.Sprintf("alt+%d", i+1)), id)
		})
		lines = append(lines, "", style.Faint("Samples: ")+strings.Join(labels, "  "))
	}

	lines = append(lines, "")

	switch s := b.lookupState; {
	case s.IsLoading():
		lines = append(lines, b.spinnerC.View()+" Fetching metadata from "+b.lookup.Repository().Name())
	case s.IsError():
		lines = append(lines,
			style.Fg(style.ErrorColor)(icon.Get(icon.Fail)+" "+wrap.String(s.Message(), b.width)),
			style.Faint("esc to dismiss"),
		)
	case s.IsSuccess():
		record, _ := s.Payload()
		lines = append(lines, b.recordLines(record)...)
	default:
		lines = append(lines, style.Faint("Enter a video ID and press enter"))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) recordLines(r *metadata.Record) []string {
	lines := []string{
		fmt.Sprintf("%s %s", icon.Get(icon.Video), style.Bold(r.Title)),
	}

	var facts []string
	if r.ReleaseDate != "" {
		facts = append(facts, r.ReleaseDate)
	}
	if r.Duration > 0 {
		facts = append(facts, util.FormatDuration(r.Duration))
	}
	if genre := r.Genre(); genre != "" {
		facts = append(facts, genre)
	}
	if len(facts) > 0 {
		lines = append(lines, style.Faint(strings.Join(facts, " • ")))
	}

	if cast := r.ContributorsOf("actor"); len(cast) > 0 {
		lines = append(lines, style.Fg(style.Mauve)("Cast: ")+strings.Join(cast, ", "))
	}

	if r.Description != "" {
		lines = append(lines, "", util.Wrap(r.Description, b.width))
	}

	if len(r.Tracks) > 0 {
		tags := lo.Map(r.Tracks, func(t metadata.TrackOption, _ int) string {
			return style.Tag(style.Surface, style.Teal)(t.Resolution)
		})
		lines = append(lines, "", strings.Join(tags, " "))
	}

	return lines
}

func (b *statefulBubble) viewPlayer() string {
	s := b.playbackState

	switch {
	case s.IsSuccess():
		payload, _ := s.Payload()
		header := fmt.Sprintf("Aspect ratio %.2f", payload.AspectRatio)
		if b.playback != nil {
			if active, ok := b.playback.Active(b.options.Bandwidth); ok {
				header += fmt.Sprintf(" • selected %s at %s", active.Label(), util.FormatBitrate(active.Bitrate))
			}
		}
		if b.playback != nil && b.playback.Buffering().Value() {
			header += " " + b.spinnerC.View() + " buffering"
		}

		if len(payload.Tracks) == 0 {
			return b.renderLines(true, []string{
				style.Title("Player"),
				"",
				style.Faint(header),
				"",
				style.Faint("No video tracks available"),
			})
		}

		return listExtraPaddingStyle.Render(
			lipgloss.JoinVertical(lipgloss.Left, b.tracksC.View(), style.Faint("  "+header)),
		)
	case s.IsError():
		return b.renderLines(true, []string{
			style.ErrorTitle("Player"),
			"",
			style.Fg(style.ErrorColor)(icon.Get(icon.Fail) + " " + wrap.String(s.Message(), b.width)),
		})
	default:
		return b.renderLines(true, []string{
			style.Title("Player"),
			"",
			style.Truncate(b.width)(b.spinnerC.View() + " Loading " + b.options.ManifestURL),
		})
	}
}

func (b *statefulBubble) viewError() string {
	errorMsg := wrap.String(style.Fg(style.ErrorColor)(b.lastError.Error()), b.width)
	return b.renderLines(
		true,
		[]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
			errorMsg,
		},
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	l := strings.Join(lines, "\n")
	h := lipgloss.Height(l)
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
