package notifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"RRGView/internal/collector"
	"RRGView/internal/model"
)

// FormatRotationAlert formats a quadrant-change alert for one symbol.
func FormatRotationAlert(symbol, from, to string, head model.Coordinate) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔄 <b>Rotation</b> | %s\n\n", strings.ToUpper(symbol)))
	b.WriteString(fmt.Sprintf("%s → <b>%s</b>\n", from, to))
	b.WriteString(fmt.Sprintf("RS-Ratio: %.2f | RS-Momentum: %.2f\n", head.RSRatio, head.RSMomentum))
	b.WriteString(fmt.Sprintf("As of %s", head.Date.Format("2006-01-02")))
	return b.String()
}

// FormatStatusTable formats the current quadrant of every symbol in a run,
// grouped Leading → Improving → Weakening → Lagging.
func FormatStatusTable(res *collector.Result) string {
	order := []model.Quadrant{model.Leading, model.Improving, model.Weakening, model.Lagging}
	icons := map[model.Quadrant]string{
		model.Leading:   "🟢",
		model.Improving: "🔵",
		model.Weakening: "🟡",
		model.Lagging:   "🔴",
	}

	groups := make(map[model.Quadrant][]model.Tail)
	for _, t := range res.Tails {
		q := model.QuadrantOf(t.Head())
		groups[q] = append(groups[q], t)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>RRG vs %s</b> | %s\n",
		strings.ToUpper(res.Benchmark), time.Now().Format("2006-01-02")))

	for _, q := range order {
		tails := groups[q]
		if len(tails) == 0 {
			continue
		}
		sort.Slice(tails, func(i, j int) bool { return tails[i].Symbol < tails[j].Symbol })
		b.WriteString(fmt.Sprintf("\n%s <b>%s</b>\n", icons[q], q))
		for _, t := range tails {
			head := t.Head()
			b.WriteString(fmt.Sprintf("  %s  %.2f / %.2f\n",
				strings.ToUpper(t.Symbol), head.RSRatio, head.RSMomentum))
		}
	}

	if len(res.Warnings) > 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ %d symbol(s) skipped\n", len(res.Warnings)))
	}
	return b.String()
}
