package cleaning

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// NormalizeStage rewrites column labels into canonical snake_case:
// lowercase, runs of non-alphanumerics collapsed to one underscore,
// leading and trailing underscores stripped. Names that collide after
// normalization are suffix-disambiguated in column order (age, age_2,
// age_3, ...) so the table never ends up with two identical labels.
type NormalizeStage struct{}

func (s *NormalizeStage) ID() string   { return StageIDNormalize }
func (s *NormalizeStage) Name() string { return StageNameNormalize }

func (s *NormalizeStage) Execute(ctx context.Context, state *RunState) error {
	seen := make(map[string]int, len(state.Table.Columns))
	renamed := 0

	for i, col := range state.Table.Columns {
		name := NormalizeName(col.OriginalName)
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		if name != col.OriginalName {
			renamed++
		}
		col.Name = name
		state.ColumnReport(i).Name = name
	}

	state.Logger.InfoContext(ctx, "column names normalized",
		slog.Int("columns", len(state.Table.Columns)),
		slog.Int("renamed", renamed))
	state.Report.AddStep("Column names cleaned (lowercase, underscores, no special chars)")
	return nil
}

// NormalizeName converts a single column label to snake_case. The result
// matches ^[a-z0-9_]+$ with no leading or trailing underscore, except for
// labels with no alphanumeric characters at all, which normalize to
// "column". NormalizeName is idempotent.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingSep := false

	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	if b.Len() == 0 {
		return "column"
	}
	return b.String()
}
