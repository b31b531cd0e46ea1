// Package inline implements the non-interactive lookup and play commands.
package inline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/vidmeta/vidmeta/icon"
	"github.com/vidmeta/vidmeta/lifecycle"
	"github.com/vidmeta/vidmeta/log"
	"github.com/vidmeta/vidmeta/lookup"
	"github.com/vidmeta/vidmeta/open"
	"github.com/vidmeta/vidmeta/playback"
	"github.com/vidmeta/vidmeta/query"
	"github.com/vidmeta/vidmeta/state"
	"github.com/vidmeta/vidmeta/style"
	"github.com/vidmeta/vidmeta/track"
	"github.com/vidmeta/vidmeta/util"
	"golang.org/x/sync/errgroup"
)

// maxDescriptionWidth bounds wrapped descriptions on wide terminals.
const maxDescriptionWidth = 100

// Lookup fetches the IDs concurrently and prints the results in argument
// order. It fails if any lookup failed, after printing all of them.
func Lookup(ctx context.Context, options *LookupOptions) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	scope := lifecycle.New(ctx)
	defer scope.Close()

	output := &LookupOutput{
		Repository: options.Repository.Name(),
		Results:    make([]*Result, len(options.IDs)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(util.Max(options.Concurrency, 1))

	for i, id := range options.IDs {
		i, id := i, id
		g.Go(func() error {
			model := lookup.New(scope, options.Repository, lookup.WithHistory(func(id string) error {
				return query.Remember(id, 1)
			}))

			final, err := await(ctx, model.State(), func() { model.FetchID(id) })
			if err != nil {
				return err
			}

			result := &Result{ID: strings.TrimSpace(id)}
			if record, ok := final.Payload(); ok {
				result.Record = record
				if options.Thumbnail && record.ThumbnailURL != "" {
					if err := open.URL(record.ThumbnailURL); err != nil {
						log.Warnf("failed to open thumbnail: %s", err)
					}
				}
			} else {
				result.Error = final.Message()
			}

			output.Results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if options.Json {
		if err := writeJson(options.Out, output); err != nil {
			return err
		}
	} else {
		for i, result := range output.Results {
			if i > 0 {
				fmt.Fprintln(options.Out)
			}
			if err := renderResult(options.Out, result, options); err != nil {
				return err
			}
		}
	}

	failed := lo.CountBy(output.Results, func(r *Result) bool { return r.Error != "" })
	if failed > 0 {
		return fmt.Errorf("%s failed", util.Quantify(failed, "lookup", "lookups"))
	}

	return nil
}

// Play loads a manifest, optionally caps the selection and prints the
// presented renditions.
func Play(ctx context.Context, options *PlayOptions) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	scope := lifecycle.New(ctx)
	defer scope.Close()

	model := playback.New(scope, options.Engine, options.Settle)

	final, err := await(ctx, model.State(), func() {
		model.Load(options.ManifestURL, options.LicenseURL)
	})
	if err != nil {
		return err
	}

	output := &PlayOutput{Manifest: options.ManifestURL}

	payload, ok := final.Payload()
	if !ok {
		output.Error = final.Message()
		output.Constraint = model.Constraint()
		if options.Json {
			_ = writeJson(options.Out, output)
		}
		return errors.New(final.Message())
	}

	if label, ok := options.MaxHeight.Get(); ok {
		if !model.SelectResolution(label) {
			return fmt.Errorf("invalid height: %q", label)
		}
	}

	if filter, ok := options.Tracks.Get(); ok {
		payload.Tracks, err = filter(payload.Tracks)
		if err != nil {
			return err
		}
	}

	output.Playback = &payload
	output.Constraint = model.Constraint()
	if active, ok := model.Active(options.Bandwidth); ok {
		output.Active = &active
	}

	if options.Json {
		err = writeJson(options.Out, output)
	} else {
		err = renderPlayback(options.Out, output)
	}
	if err != nil {
		return err
	}

	if options.Hold {
		<-ctx.Done()
	}

	return nil
}

// await runs start and blocks until holder reaches a terminal state.
func await[T any](ctx context.Context, holder *state.Holder[state.State[T]], start func()) (state.State[T], error) {
	states := holder.Subscribe()
	start()

	for {
		select {
		case <-ctx.Done():
			return state.State[T]{}, ctx.Err()
		case s, ok := <-states:
			if !ok {
				return holder.Value(), nil
			}
			if s.IsTerminal() {
				return s, nil
			}
		}
	}
}

func renderResult(out io.Writer, result *Result, options *LookupOptions) error {
	if result.Record == nil {
		_, err := fmt.Fprintf(out, "%s %s %s\n", style.Fg(style.Red)(icon.Get(icon.Fail)), style.Bold(result.ID), result.Error)
		return err
	}

	r := result.Record
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %s\n", icon.Get(icon.Video), style.Bold(r.Title), style.Faint("("+r.ID+")"))

	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s %s\n", style.Fg(style.Mauve)(name+":"), value)
		}
	}

	field("Released", r.ReleaseDate)
	if r.Duration > 0 {
		field("Duration", util.FormatDuration(r.Duration))
	}
	field("Genres", strings.Join(r.Genres, ", "))
	field("Languages", strings.Join(r.Languages, ", "))
	field("Tags", strings.Join(r.Tags, ", "))
	field("Cast", strings.Join(r.ContributorsOf("actor"), ", "))
	field("Director", strings.Join(r.ContributorsOf("director"), ", "))
	field("Thumbnail", r.ThumbnailURL)

	if r.Description != "" {
		b.WriteString("\n")
		b.WriteString(util.Wrap(r.Description, util.Min(options.Width, maxDescriptionWidth)))
		b.WriteString("\n")
	}

	tracks := optionRenditions(r.Tracks)
	if filter, ok := options.Tracks.Get(); ok {
		filtered, err := filter(tracks)
		if err != nil {
			return err
		}
		tracks = filtered
	}

	if len(tracks) > 0 {
		b.WriteString("\n")
		for _, t := range tracks {
			fmt.Fprintf(&b, "%s %s %s\n", icon.Get(icon.Resolution), style.Bold(t.Label()), style.Faint(util.FormatBitrate(t.Bitrate)))
		}
	}

	_, err := io.WriteString(out, b.String())
	return err
}

func renderPlayback(out io.Writer, output *PlayOutput) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", icon.Get(icon.Video), style.Bold(output.Manifest))
	fmt.Fprintf(&b, "%s %.2f\n", style.Fg(style.Mauve)("Aspect ratio:"), output.Playback.AspectRatio)

	if output.Constraint.IsCapped() {
		fmt.Fprintf(&b, "%s %s\n", style.Fg(style.Mauve)("Capped at:"), track.Rendition{Height: output.Constraint.MaxHeight}.Label())
	}

	if len(output.Playback.Tracks) == 0 {
		b.WriteString(style.Faint("no video tracks") + "\n")
	}

	for _, t := range output.Playback.Tracks {
		marker := " "
		if output.Active != nil && output.Active.ID == t.ID {
			marker = style.Fg(style.Green)("▶")
		}
		fmt.Fprintf(&b, "%s %s %s %s\n", marker, style.Bold(t.Label()), style.Faint(fmt.Sprintf("%dx%d", t.Width, t.Height)), util.FormatBitrate(t.Bitrate))
	}

	_, err := io.WriteString(out, b.String())
	return err
}
