package explorer

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwiater/capdash/internal/capability"
)

func testDataset(t *testing.T) *capability.Dataset {
	t.Helper()
	ds, err := capability.NewDataset(
		capability.Record{Name: "code_generation", Category: "coding", Heights: map[string]float64{"2019": 0.2, "2025": 0.5}},
		capability.Record{Name: "physical_intuition", Category: "reasoning", Heights: map[string]float64{"2019": 0.1, "2025": 0.4}},
	)
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	return ds
}

func press(m *model, r rune) *model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return next.(*model)
}

// TestToggleRecomputesStats walks the checklist, toggling items on and off,
// and checks that the selection order and statistics follow.
func TestToggleRecomputesStats(t *testing.T) {
	m := initialModel(testDataset(t), []string{"physical_intuition", "unknown"})
	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	if got := m.Selected(); len(got) != 1 || got[0] != "physical_intuition" {
		t.Fatalf("expected known default only, got %v", got)
	}
	if m.stats.MaxCurrent != 40 {
		t.Fatalf("expected initial max 40, got %v", m.stats.MaxCurrent)
	}

	// cursor starts on code_generation
	m = press(m, 'x')
	if got := strings.Join(m.Selected(), ","); got != "physical_intuition,code_generation" {
		t.Fatalf("expected appended selection, got %s", got)
	}
	if m.stats.MaxCurrent != 50 || m.stats.MinCurrent != 40 {
		t.Fatalf("unexpected stats after toggle %+v", m.stats)
	}
	if it := m.list.Items()[0].(item); !it.checked {
		t.Fatalf("expected first item checked")
	}

	m = press(m, 'x')
	if got := strings.Join(m.Selected(), ","); got != "physical_intuition" {
		t.Fatalf("expected toggle off, got %s", got)
	}
}

func TestRepeatedDefaultsCountOnce(t *testing.T) {
	m := initialModel(testDataset(t), []string{"code_generation", "code_generation"})
	if got := m.Selected(); len(got) != 1 {
		t.Fatalf("expected one selected capability, got %v", got)
	}
	if !strings.Contains(m.View(), "Active Capabilities: 1/2") {
		t.Fatalf("expected a single active capability:\n%s", m.View())
	}
}

func TestSelectedNamesUseCategoryColours(t *testing.T) {
	if got := categoryStyle("reasoning").GetForeground(); got != lipgloss.Color("#EF553B") {
		t.Fatalf("expected reasoning colour, got %v", got)
	}
	if got := categoryStyle("mystery").GetForeground(); got != lipgloss.Color(capability.DefaultColor) {
		t.Fatalf("expected default colour, got %v", got)
	}

	m := initialModel(testDataset(t), []string{"physical_intuition"})
	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	if !strings.Contains(m.View(), "■ Physical Intuition") {
		t.Fatalf("expected the selected capability in the panel:\n%s", m.View())
	}
}

func TestEmptySelectionView(t *testing.T) {
	m := initialModel(testDataset(t), nil)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	if m.stats != (capability.Stats{}) {
		t.Fatalf("expected zero stats, got %+v", m.stats)
	}
	view := m.View()
	for _, want := range []string{"Active Capabilities: 0/2", "Score Range: 0.0% - 0.0%", "Code Generation"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestQuit(t *testing.T) {
	m := initialModel(testDataset(t), nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
