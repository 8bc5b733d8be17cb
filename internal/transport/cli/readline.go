package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sandevgo/motivate/internal/core"
	"github.com/sandevgo/motivate/internal/service/ui"
	"github.com/sandevgo/motivate/pkg/log"
)

const cmdExit = "exit"

type ReadLine struct {
	chat     core.ChatService
	commands core.CmdRouter
	key      string
	renderer Renderer
	rl       *readline.Instance
}

func NewReadLine(
	chat core.ChatService,
	commands core.CmdRouter,
	key, historyFile string,
	renderer Renderer,
) (*ReadLine, error) {
	if historyFile != "" {
		if err := os.MkdirAll(filepath.Dir(historyFile), 0755); err != nil {
			return nil, fmt.Errorf("failed to create runtime directory: %w", err)
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       cmdExit,
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		chat:     chat,
		commands: commands,
		key:      key,
		renderer: renderer,
		rl:       rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Str("session", r.key).Msg("chat started. Type 'exit' to quit, '/help' for commands.")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		out, quit, err := r.process(ctx, line)
		if quit {
			return nil
		}
		if err != nil {
			logger.Error().Err(err).Msg("chat turn failed")
			fmt.Fprintf(r.rl.Stderr(), "%s %v\n", ui.ErrorStyle.Render("Error:"), err)
			continue
		}
		if out != "" {
			fmt.Fprintln(r.rl.Stdout(), out)
		}
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

// process handles one input line and returns what to print.
func (r *ReadLine) process(ctx context.Context, line string) (string, bool, error) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return "", false, nil
	case cmdExit:
		return "", true, nil
	}

	if r.commands != nil {
		if out, ok := r.commands.Execute(ctx, r.key, line); ok {
			return r.renderer.Render(out), false, nil
		}
	}

	reply, err := r.chat.HandleTurn(ctx, r.key, line)
	if err != nil {
		return "", false, err
	}
	return r.renderer.Render(reply), false, nil
}

// OneShot runs a single turn and writes the rendered reply to w.
func OneShot(ctx context.Context, chat core.ChatService, key, message string, renderer Renderer, w io.Writer) error {
	if err := core.ValidateMessage(message); err != nil {
		return err
	}
	reply, err := chat.HandleTurn(ctx, key, message)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, renderer.Render(reply))
	return err
}

// FormatTranscript prints one "[role] content" block per turn.
func FormatTranscript(turns core.Transcript) string {
	var sb strings.Builder
	for i, t := range turns {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "[%s] %s", t.Role, t.Content)
	}
	return sb.String()
}
