package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tbxark/talentscout/agent"
	"github.com/tbxark/talentscout/config"
	"github.com/tbxark/talentscout/language"
	"github.com/tbxark/talentscout/oracle"
	"github.com/tbxark/talentscout/store"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive intake conversation",
	Long:  "Starts an interactive intake conversation on the terminal. Slash commands: /finish ends the conversation, /save stores the current candidate, /new starts a new candidate, /lang <code> pins the reply language, /quit leaves.",
	RunE:  runChat,
}

var chatHistoryLimit int

func init() {
	chatCmd.Flags().IntVar(&chatHistoryLimit, "history", 50, "Number of recent messages sent for open-ended replies (0 keeps everything)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	flow, err := newFlow(ctx, appConfig)
	if err != nil {
		return err
	}
	repl := newChatREPL(flow, cmd.OutOrStdout())
	if lang, ok := appConfig.FixedLanguage(); ok {
		flow.OverrideLanguage(repl.session, lang)
	}
	return repl.Run(ctx, cmd.InOrStdin())
}

func newFlow(ctx context.Context, conf *config.Config) (*agent.IntakeFlow, error) {
	chatModel, err := oracle.NewOpenAIChatModel(ctx, oracle.ModelConfig{
		APIKey:  conf.APIKey,
		BaseURL: conf.BaseURL,
		Model:   conf.Model,
	})
	if err != nil {
		return nil, err
	}
	opts := []agent.FlowOption{}
	if chatHistoryLimit > 0 {
		opts = append(opts, agent.WithHistoryTrimmer(agent.KeepSystemLastNTrimmer{N: chatHistoryLimit}))
	}
	if conf.Save {
		opts = append(opts, agent.WithStore(store.NewCSVStore(conf.CandidatesPath()), hasherFor(conf)))
	}
	return agent.NewOracleIntakeFlow(oracle.NewChatModelOracle(chatModel), opts...)
}

func hasherFor(conf *config.Config) store.Hasher {
	if conf.HashPII {
		return store.DigestHasher{}
	}
	return store.PlainHasher{}
}

type chatREPL struct {
	flow    *agent.IntakeFlow
	session *agent.Session
	out     io.Writer
}

func newChatREPL(flow *agent.IntakeFlow, out io.Writer) *chatREPL {
	return &chatREPL{flow: flow, session: flow.NewSession(), out: out}
}

func (r *chatREPL) Run(ctx context.Context, in io.Reader) error {
	r.printAssistant(r.session.Greeting())
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		quit, err := r.HandleLine(ctx, scanner.Text())
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// HandleLine runs one line of input and reports whether the REPL should stop.
func (r *chatREPL) HandleLine(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if strings.HasPrefix(line, "/") {
		return r.handleSlash(ctx, line)
	}
	if r.session.Ended() {
		fmt.Fprintln(r.out, "The conversation has ended. Type /new to start again or /quit to leave.")
		return false, nil
	}
	result, err := r.flow.HandleTurn(ctx, r.session, line, r.streamHandler())
	if err != nil {
		return false, err
	}
	r.printWarnings(result.Warnings)
	return false, nil
}

func (r *chatREPL) handleSlash(ctx context.Context, line string) (bool, error) {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "/quit", "/exit":
		return true, nil
	case "/finish":
		if r.session.Ended() {
			fmt.Fprintln(r.out, "The conversation has already ended.")
			return false, nil
		}
		result := r.flow.Finish(ctx, r.session, r.streamHandler())
		r.printWarnings(result.Warnings)
	case "/save":
		err := r.flow.Save(ctx, r.session)
		switch {
		case errors.Is(err, agent.ErrPersistenceDisabled):
			fmt.Fprintln(r.out, "Saving is disabled. Set TALENTSCOUT_SAVE=true to enable it.")
		case errors.Is(err, store.ErrEmptyName):
			fmt.Fprintln(r.out, "Nothing to save yet: the candidate has no name.")
		case err != nil:
			fmt.Fprintf(r.out, "Save failed: %v\n", err)
		default:
			fmt.Fprintf(r.out, "Saved candidate (%d row(s) this session).\n", r.session.SavedRows)
		}
	case "/new":
		r.flow.Reset(r.session)
		r.printAssistant(r.session.Greeting())
	case "/lang":
		if arg == "" {
			fmt.Fprintf(r.out, "Current language: %s (%s)\n", r.session.Language.Name(), r.session.Language.Active())
			return false, nil
		}
		r.flow.OverrideLanguage(r.session, arg)
		fmt.Fprintf(r.out, "Replies will now be in %s.\n", language.Name(r.session.Language.Active()))
	default:
		fmt.Fprintf(r.out, "Unknown command %s. Available: /finish, /save, /new, /lang <code>, /quit\n", name)
	}
	return false, nil
}

func (r *chatREPL) streamHandler() agent.StreamHandler {
	started := false
	return func(event agent.StreamEvent) {
		if !started {
			fmt.Fprint(r.out, "Assistant: ")
			started = true
		}
		fmt.Fprint(r.out, event.Text)
		if event.Done {
			fmt.Fprintln(r.out)
			started = false
		}
	}
}

func (r *chatREPL) printAssistant(text string) {
	fmt.Fprintf(r.out, "Assistant: %s\n", text)
}

func (r *chatREPL) printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(r.out, "Warning: %s\n", w)
	}
}
