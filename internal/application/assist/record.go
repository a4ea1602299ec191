package assist

import (
	"github.com/doeshing/huh-go/internal/domain"
)

func (s *Service) record(cfg domain.Config, rec domain.InvocationRecord) {
	if s.Store == nil || !cfg.History.AutoSave {
		return
	}
	if err := s.Store.Save(rec); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
		return
	}
	if dropped, err := s.Store.Prune(cfg.GetHistoryRetentionDays()); err != nil {
		s.Logger.Warn("history prune failed", map[string]interface{}{"error": err.Error()})
	} else if dropped > 0 {
		s.Logger.Debug("history pruned", map[string]interface{}{"dropped": dropped})
	}
}

func (s *Service) recordEdit(cfg domain.Config, p EditProposal, applied bool, err error) {
	started := p.started
	if started.IsZero() {
		started = s.now()
	}
	s.record(cfg, domain.InvocationRecord{
		Timestamp:  started,
		Mode:       domain.ModeWriteFile,
		Query:      p.Instructions,
		Model:      p.Model,
		Path:       p.Path,
		Additions:  p.Summary.Additions,
		Deletions:  p.Summary.Deletions,
		Applied:    applied,
		Success:    err == nil,
		Error:      errString(err),
		DurationMS: s.now().Sub(started).Milliseconds(),
	})
}
