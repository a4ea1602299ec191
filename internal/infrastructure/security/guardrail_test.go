package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/huh-go/internal/domain"
)

func newDefaultGuardrail(t *testing.T) *Guardrail {
	t.Helper()
	guardrail, err := NewGuardrail(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("NewGuardrail error: %v", err)
	}
	return guardrail
}

func TestGuardrailBlocksCriticalCommands(t *testing.T) {
	guardrail := newDefaultGuardrail(t)

	result, err := guardrail.Evaluate("rm -rf /")
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}

	if result.Action != domain.ActionBlock || result.Level != domain.RiskCritical {
		t.Fatalf("expected critical block, got %+v", result)
	}
	if result.AllowsCopy() {
		t.Fatal("blocked suggestion must not be copyable")
	}
}

func TestGuardrailAllowsSafeCommand(t *testing.T) {
	guardrail := newDefaultGuardrail(t)

	for _, command := range []string{"ls -la", "git push origin main", "", "grep -rf patterns.txt ."} {
		result, err := guardrail.Evaluate(command)
		if err != nil {
			t.Fatalf("Evaluate error: %v", err)
		}
		if result.Level != domain.RiskSafe || result.Risky() {
			t.Fatalf("expected safe for %q, got %+v", command, result)
		}
	}
}

func TestGuardrailProtectedPath(t *testing.T) {
	guardrail := newDefaultGuardrail(t)

	result, err := guardrail.Evaluate("sudo rm -rf /etc/nginx")
	if err != nil {
		t.Fatalf("Evaluate error: %v", err)
	}
	if result.Level != domain.RiskHigh || result.Action != domain.ActionNoCopy {
		t.Fatalf("expected high risk for protected path, got %+v", result)
	}
	if len(result.ProtectedPaths) != 1 || result.ProtectedPaths[0] != "/etc" {
		t.Fatalf("unexpected protected paths %v", result.ProtectedPaths)
	}

	result, _ = guardrail.Evaluate("cat /etc/hosts")
	if len(result.ProtectedPaths) != 0 {
		t.Fatalf("reading a protected path is not destructive: %+v", result)
	}
}

func TestGuardrailWarnsOnForcePush(t *testing.T) {
	guardrail := newDefaultGuardrail(t)

	result, _ := guardrail.Evaluate("git push --force origin main")
	if result.Level != domain.RiskMedium || result.Action != domain.ActionWarn || !result.Risky() {
		t.Fatalf("expected medium warning, got %+v", result)
	}
	if len(result.Reasons) == 0 {
		t.Fatal("expected a reason")
	}
}

func TestGuardrailCustomRulesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guardrail.yaml")
	rules := "rules:\n  danger_patterns:\n    - pattern: 'kubectl\\s+delete'\n      level: high\n      message: Deletes cluster resources\n      action: no_copy\n  protected_paths: []\n"
	if err := os.WriteFile(path, []byte(rules), 0o600); err != nil {
		t.Fatal(err)
	}

	guardrail, err := NewGuardrail(path)
	if err != nil {
		t.Fatalf("NewGuardrail error: %v", err)
	}
	if guardrail.RuleCount() != 1 {
		t.Fatalf("expected 1 rule, got %d", guardrail.RuleCount())
	}
	result, _ := guardrail.Evaluate("kubectl delete pod web-1")
	if result.Action != domain.ActionNoCopy {
		t.Fatalf("expected no_copy, got %+v", result)
	}
	result, _ = guardrail.Evaluate("rm -rf /etc")
	if result.Level != domain.RiskSafe {
		t.Fatalf("custom rules replace the defaults, got %+v", result)
	}
}

func TestGuardrailRejectsBadPattern(t *testing.T) {
	if _, err := ParseRules([]byte("rules:\n  danger_patterns:\n    - pattern: '('\n")); err == nil {
		t.Fatal("expected compile error")
	}
}
