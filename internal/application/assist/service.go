// Package assist runs the huh pipeline: capture, assemble, complete, and for
// write mode diff and apply.
package assist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/doeshing/huh-go/internal/application/contextwin"
	"github.com/doeshing/huh-go/internal/application/diff"
	"github.com/doeshing/huh-go/internal/application/prompt"
	"github.com/doeshing/huh-go/internal/domain"
	"github.com/doeshing/huh-go/internal/ports"
)

// ErrEmptyResponse is returned when write mode receives no file content.
var ErrEmptyResponse = errors.New("model returned no file content")

// APIKeyResolver picks the credential for a model given an explicit override.
type APIKeyResolver func(model domain.ModelDefinition, override string) string

// Service orchestrates one invocation end-to-end.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	PaneCapturer    ports.PaneCapturer
	HistoryReader   ports.ShellHistoryReader
	ProviderFactory ports.ProviderFactory
	FileEditor      ports.FileEditor
	SecurityService ports.SecurityService
	Cache           ports.CacheRepository
	Store           ports.InvocationStore
	Logger          ports.Logger
	ResolveAPIKey   APIKeyResolver
	Now             func() time.Time
}

// Options are the per-invocation overrides shared by every mode.
type Options struct {
	ModelOverride string
	APIKey        string
	// Timeout overrides preferences.api_timeout when positive.
	Timeout time.Duration
	NoCache bool
}

// AnalyzeRequest asks for an explanation of the last command.
type AnalyzeRequest struct {
	Note string
	Options
}

// QueryRequest is a freeform question, optionally about one file.
type QueryRequest struct {
	Query    string
	FilePath string
	Options
}

// EditRequest asks for a rewrite of Path following Instructions.
type EditRequest struct {
	Path         string
	Instructions string
	Options
}

// Answer is the result of Analyze and Query.
type Answer struct {
	Analysis domain.Analysis
	Window   domain.ContextWindow
	Model    string
	Warnings []string
}

// EditProposal is a computed but unapplied file change.
type EditProposal struct {
	Path         string
	Exists       bool
	Instructions string
	Diff         domain.Diff
	Summary      domain.ChangeSummary
	Model        string
	started      time.Time
}

// NoChanges reports whether the proposal leaves the file as it is.
func (p EditProposal) NoChanges() bool {
	return !p.Diff.HasChanges()
}

// Analyze explains the most recent command using the tmux pane and shell
// history. Outside tmux it fails with domain.ErrNoMultiplexerSession before
// any provider call.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (Answer, error) {
	if err := s.check(); err != nil {
		return Answer{}, err
	}
	started := s.now()
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return Answer{}, fmt.Errorf("load config: %w", err)
	}

	window, warnings, err := s.capture(ctx, cfg, true)
	if err != nil {
		return Answer{}, err
	}

	creq := prompt.NewBuilder(cfg).Build(window, req.Note, domain.ModeAnalyze)
	answer, err := s.answer(ctx, cfg, req.Options, creq, window)
	answer.Warnings = warnings

	s.record(cfg, domain.InvocationRecord{
		Mode:       domain.ModeAnalyze,
		Query:      window.LastCommand(),
		Model:      answer.Model,
		Suggestion: answer.Analysis.Suggestion,
		Success:    err == nil,
		Error:      errString(err),
		DurationMS: s.now().Sub(started).Milliseconds(),
		Timestamp:  started,
	})
	return answer, err
}

// Query answers a freeform question. Terminal context is attached when it
// is available and silently omitted otherwise.
func (s *Service) Query(ctx context.Context, req QueryRequest) (Answer, error) {
	if err := s.check(); err != nil {
		return Answer{}, err
	}
	started := s.now()
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return Answer{}, fmt.Errorf("load config: %w", err)
	}

	question := req.Query
	if req.FilePath != "" {
		if s.FileEditor == nil {
			return Answer{}, errors.New("assist.Service: file reader not configured")
		}
		content, exists, err := s.FileEditor.ReadFile(req.FilePath)
		if err != nil {
			return Answer{}, err
		}
		if !exists {
			return Answer{}, fmt.Errorf("read %s: %w", req.FilePath, errFileNotFound)
		}
		question = prompt.WithFile(question, req.FilePath, content)
	}

	window, warnings, err := s.capture(ctx, cfg, false)
	if err != nil {
		return Answer{}, err
	}

	creq := prompt.NewBuilder(cfg).Build(window, question, domain.ModeQuery)
	answer, err := s.answer(ctx, cfg, req.Options, creq, window)
	answer.Warnings = warnings

	s.record(cfg, domain.InvocationRecord{
		Mode:       domain.ModeQuery,
		Query:      req.Query,
		Model:      answer.Model,
		Path:       req.FilePath,
		Suggestion: answer.Analysis.Suggestion,
		Success:    err == nil,
		Error:      errString(err),
		DurationMS: s.now().Sub(started).Milliseconds(),
		Timestamp:  started,
	})
	return answer, err
}

// ProposeEdit asks the model for the complete new content of req.Path and
// diffs it against the current content. Nothing is written.
func (s *Service) ProposeEdit(ctx context.Context, req EditRequest) (EditProposal, error) {
	if err := s.check(); err != nil {
		return EditProposal{}, err
	}
	if s.FileEditor == nil {
		return EditProposal{}, errors.New("assist.Service: file editor not configured")
	}
	started := s.now()
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return EditProposal{}, fmt.Errorf("load config: %w", err)
	}

	original, exists, err := s.FileEditor.ReadFile(req.Path)
	if err != nil {
		return EditProposal{}, err
	}
	creq := prompt.NewBuilder(cfg).BuildEdit(domain.FileEditRequest{
		Path:            req.Path,
		OriginalContent: original,
		Exists:          exists,
	}, req.Instructions)

	opts := req.Options
	opts.NoCache = true
	text, model, _, err := s.complete(ctx, cfg, opts, creq)
	proposal := EditProposal{Path: req.Path, Exists: exists, Instructions: req.Instructions, Model: model, started: started}
	if err != nil {
		s.recordEdit(cfg, proposal, false, err)
		return proposal, err
	}

	proposed := prompt.CleanFileContent(text, original)
	if proposed == "" {
		s.recordEdit(cfg, proposal, false, ErrEmptyResponse)
		return proposal, ErrEmptyResponse
	}
	if err := diff.CheckSize(original, proposed); err != nil {
		s.recordEdit(cfg, proposal, false, err)
		return proposal, err
	}
	proposal.Diff = diff.Compute(original, proposed)
	proposal.Summary = diff.Summarize(proposal.Diff, cfg.GetDiffPreviewLines())
	s.Logger.Debug("edit proposed", map[string]interface{}{
		"path":      req.Path,
		"additions": proposal.Summary.Additions,
		"deletions": proposal.Summary.Deletions,
	})
	return proposal, nil
}

// ApplyEdit writes an accepted proposal. The file must still hold the
// content the diff was computed from.
func (s *Service) ApplyEdit(ctx context.Context, p EditProposal) error {
	if s.FileEditor == nil {
		return errors.New("assist.Service: file editor not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if p.NoChanges() {
		s.recordEdit(cfg, p, false, nil)
		return nil
	}
	err = s.FileEditor.ApplyEdit(p.Path, p.Diff)
	if err != nil {
		s.Logger.Error("apply edit failed", err, map[string]interface{}{"path": p.Path})
	} else {
		s.Logger.Info("edit applied", map[string]interface{}{"path": p.Path})
	}
	s.recordEdit(cfg, p, err == nil, err)
	return err
}

// Discard records a proposal the user declined.
func (s *Service) Discard(ctx context.Context, p EditProposal) {
	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return
	}
	s.recordEdit(cfg, p, false, nil)
}

func (s *Service) check() error {
	if s.ConfigProvider == nil || s.ProviderFactory == nil || s.Logger == nil {
		return errors.New("assist.Service dependencies not satisfied")
	}
	return nil
}

// capture reads the pane and the shell history concurrently. A missing tmux
// session is fatal only when the pane is required; history problems are
// always downgraded to warnings.
func (s *Service) capture(ctx context.Context, cfg domain.Config, paneRequired bool) (domain.ContextWindow, []string, error) {
	var (
		pane     domain.CapturedPane
		history  []domain.HistoryEntry
		warnings []string
	)
	scrollback := cfg.GetScrollback()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if s.PaneCapturer == nil {
			if paneRequired {
				return &domain.CaptureError{Source: "tmux", Err: domain.ErrNoMultiplexerSession}
			}
			return nil
		}
		captured, err := s.PaneCapturer.CapturePane(gctx)
		if err != nil {
			if paneRequired {
				return err
			}
			s.Logger.Debug("pane capture skipped", map[string]interface{}{"error": err.Error()})
			return nil
		}
		pane = captured
		return nil
	})
	var historyErr error
	g.Go(func() error {
		if s.HistoryReader == nil {
			return nil
		}
		entries, err := s.HistoryReader.ReadHistory(gctx, scrollback)
		if err != nil {
			historyErr = err
			return nil
		}
		history = entries
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.ContextWindow{}, nil, err
	}

	if historyErr != nil {
		switch {
		case errors.Is(historyErr, domain.ErrHistoryUnavailable), errors.Is(historyErr, domain.ErrUnsupportedShell):
			if paneRequired {
				warnings = append(warnings, historyErr.Error())
			}
			s.Logger.Warn("continuing without shell history", map[string]interface{}{"error": historyErr.Error()})
		case ctx.Err() != nil:
			return domain.ContextWindow{}, nil, ctx.Err()
		default:
			s.Logger.Warn("history read failed", map[string]interface{}{"error": historyErr.Error()})
		}
	}

	window := contextwin.Assembler{MaxChars: cfg.GetContextMaxChars()}.Assemble(pane.Raw, history, scrollback)
	s.Logger.Debug("context assembled", map[string]interface{}{
		"pane_bytes":      len(window.Pane),
		"history":         len(window.History),
		"pane_truncated":  window.PaneTruncated,
		"dropped_history": window.DroppedHistory,
	})
	return window, warnings, nil
}

func (s *Service) answer(ctx context.Context, cfg domain.Config, opts Options, creq domain.CompletionRequest, window domain.ContextWindow) (Answer, error) {
	text, model, fromCache, err := s.complete(ctx, cfg, opts, creq)
	answer := Answer{Window: window, Model: model}
	if err != nil {
		return answer, err
	}
	answer.Analysis = prompt.ParseAnalysis(text)
	answer.Analysis.FromCache = fromCache
	answer.Analysis.Risk = s.rate(cfg, answer.Analysis.Suggestion)
	return answer, nil
}

func (s *Service) rate(cfg domain.Config, suggestion string) *domain.RiskAssessment {
	if suggestion == "" || s.SecurityService == nil || !cfg.Security.Enabled {
		return nil
	}
	risk, err := s.SecurityService.Evaluate(suggestion)
	if err != nil {
		s.Logger.Warn("guardrail evaluation failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return &risk
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

var errFileNotFound = errors.New("file not found")
