package ui

import (
	"fmt"
	"strings"

	"github.com/dsalens/dsalens/types"
)

// DisplayAlgorithmType maps a classification label to the bucket shown
// in summaries. Labels outside the known set are grouped under "other";
// the stored entry keeps the original label.
func DisplayAlgorithmType(label string) string {
	if types.KnownAlgorithmType(label) {
		return label
	}
	return types.AlgorithmOther
}

// RenderResult formats a full analysis for terminal output. Which
// complexity sections appear follows the requested analysis type.
func RenderResult(result types.AnalysisResult, analysisType types.AnalysisType) string {
	var sb strings.Builder

	sb.WriteString(StyleHeader.Render("Complexity Analysis"))
	sb.WriteString("\n\n")

	if analysisType != types.AnalysisSpace {
		sb.WriteString(renderEstimate("Time Complexity", result.TimeComplexity))
		sb.WriteString("\n")
	}
	if analysisType != types.AnalysisTime {
		sb.WriteString(renderEstimate("Space Complexity", result.SpaceComplexity))
		sb.WriteString("\n")
	}

	sb.WriteString(StyleSectionTitle.Render("Algorithm"))
	sb.WriteString("\n")
	sb.WriteString(StyleText.Render(DisplayAlgorithmType(result.AlgorithmType)))
	if display := DisplayAlgorithmType(result.AlgorithmType); display != result.AlgorithmType {
		sb.WriteString(StyleSubtle.Render(fmt.Sprintf(" (%s)", result.AlgorithmType)))
	}
	sb.WriteString("\n\n")

	sb.WriteString(StyleSectionTitle.Render("Explanation"))
	sb.WriteString("\n")
	sb.WriteString(StyleText.Render(result.Explanation))
	sb.WriteString("\n")

	if len(result.Suggestions) > 0 {
		sb.WriteString("\n")
		sb.WriteString(StyleSectionTitle.Render("Suggestions"))
		sb.WriteString("\n")
		for _, s := range result.Suggestions {
			sb.WriteString(StyleSuggestion.Render("• " + s))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func renderEstimate(title string, est types.ComplexityEstimate) string {
	var sb strings.Builder

	sb.WriteString(StyleSectionTitle.Render(title))
	sb.WriteString("  ")
	sb.WriteString(StyleBigO.Render(est.BigO))
	sb.WriteString("  ")
	sb.WriteString(ConfidenceStyle(est.Confidence).Render(fmt.Sprintf("%d%% confidence", est.Confidence)))
	sb.WriteString("\n")

	cases := fmt.Sprintf("best %s  avg %s  worst %s", est.BestCase, est.AverageCase, est.WorstCase)
	sb.WriteString(StyleSubtle.Render(cases))
	sb.WriteString("\n")
	sb.WriteString(StyleText.Render(est.Explanation))
	sb.WriteString("\n")

	for _, h := range est.CodeHighlights {
		lines := fmt.Sprintf("L%d", h.StartLine)
		if h.EndLine > h.StartLine {
			lines = fmt.Sprintf("L%d-%d", h.StartLine, h.EndLine)
		}
		sb.WriteString(StyleSubtle.Render(fmt.Sprintf("  %s %s: %s", lines, h.Complexity, h.Contribution)))
		sb.WriteString("\n")
	}

	return StyleEstimateBox.Render(strings.TrimRight(sb.String(), "\n")) + "\n"
}

// HistoryTable formats history entries as a compact table, newest first.
func HistoryTable(entries []types.HistoryEntry) string {
	table := Table{
		Headers:  []string{"ID", "When", "Lang", "Time", "Space", "Algorithm"},
		MaxWidth: 28,
	}
	for _, e := range entries {
		table.Rows = append(table.Rows, []string{
			TruncateID(e.ID),
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			e.Language,
			e.Result.TimeComplexity.BigO,
			e.Result.SpaceComplexity.BigO,
			DisplayAlgorithmType(e.Result.AlgorithmType),
		})
	}
	return table.Render()
}

// SnippetPreview collapses code to a single displayable line.
func SnippetPreview(code string, width int) string {
	line := strings.Join(strings.Fields(code), " ")
	if width >= 2 && len(line) > width {
		return line[:width-1] + "…"
	}
	return line
}
