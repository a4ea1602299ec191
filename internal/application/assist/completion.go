package assist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doeshing/huh-go/internal/domain"
)

// complete resolves the model, consults the cache and calls the provider
// under the configured deadline. It returns the raw text, the model name and
// whether the text came from the cache.
func (s *Service) complete(ctx context.Context, cfg domain.Config, opts Options, req domain.CompletionRequest) (string, string, bool, error) {
	model, err := cfg.ResolveModel(opts.ModelOverride)
	if err != nil {
		return "", "", false, err
	}

	useCache := s.Cache != nil && cfg.Cache.Enabled && !opts.NoCache
	key := domain.CacheKey(model.Name, req.Mode, req.System, req.Prompt)
	if useCache {
		if entry, ok, err := s.Cache.Get(key); err != nil {
			s.Logger.Warn("cache read failed", map[string]interface{}{"error": err.Error()})
		} else if ok {
			s.Logger.Debug("cache hit", map[string]interface{}{"model": model.Name, "mode": string(req.Mode)})
			return entry.Text, model.Name, true, nil
		}
	}

	apiKey := opts.APIKey
	if s.ResolveAPIKey != nil {
		apiKey = s.ResolveAPIKey(model, opts.APIKey)
	}
	provider, err := s.ProviderFactory.ForModel(model, apiKey)
	if err != nil {
		return "", model.Name, false, fmt.Errorf("provider init: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = cfg.GetTimeout()
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.Logger.Info("calling provider", map[string]interface{}{
		"provider": provider.Name(),
		"model":    model.Name,
		"mode":     string(req.Mode),
		"timeout":  timeout.String(),
	})
	started := s.now()
	resp, err := provider.Complete(callCtx, req)
	if err != nil {
		return "", model.Name, false, completionError(ctx, callCtx, err, model.Name, timeout)
	}
	s.Logger.Debug("provider replied", map[string]interface{}{
		"model":    model.Name,
		"bytes":    len(resp.Text),
		"duration": s.now().Sub(started).String(),
	})

	if useCache && resp.Text != "" {
		if err := s.Cache.Set(domain.CacheEntry{Key: key, Text: resp.Text, Model: model.Name, CreatedAt: s.now()}); err != nil {
			s.Logger.Warn("cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return resp.Text, model.Name, false, nil
}

// completionError separates caller cancellation, which is returned as is,
// from our own deadline, which becomes domain.ErrCompletionTimeout.
func completionError(parent, call context.Context, err error, model string, timeout time.Duration) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(call.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s gave no answer within %s", domain.ErrCompletionTimeout, model, timeout)
	}
	return fmt.Errorf("completion: %w", err)
}
