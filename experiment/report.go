package experiment

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gorbms/gomor/mor"
	"github.com/gorbms/gomor/settings"
)

func formatGreedyReport(st *settings.Settings, data *mor.GreedyData) string {
	return fmt.Sprintf(`
Greedy basis generation:
    used estimator:        %t
    error norm:            %s
    extension method:      %s (%s)
    prescribed basis size: %d
    prescribed error:      %g
    actual basis size:     %s
    elapsed time:          %s
`,
		st.UseEstimator,
		st.GreedyErrorNorm,
		st.ExtensionAlgorithm, st.ExtensionAlgorithmProduct,
		st.MaxRBSize,
		st.TargetError,
		formatSizes(data.Sizes),
		data.Time)
}

func formatQualityReport(defs *mor.Defaults, strategy string, numSamples int,
	tracker *maxTracker, elapsed time.Duration) string {
	errFormat := "%g"
	if defs.Bool("compact_print", false) {
		errFormat = "%.2e"
	}
	return fmt.Sprintf(`
%s error estimation:
    number of samples:     %d
    maximal error:         `+errFormat+`  (for mu = %s)
    elapsed time:          %s
`,
		strategy,
		numSamples,
		tracker.err, tracker.mu,
		elapsed)
}

// formatSizes renders a scalar for a flat basis and a bracketed list for a
// block basis.
func formatSizes(sizes []int) string {
	if len(sizes) == 1 {
		return strconv.Itoa(sizes[0])
	}
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = strconv.Itoa(s)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
