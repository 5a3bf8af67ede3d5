package submit

import (
	"fmt"
	"math"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/imamik/stepform/internal/form"
)

const contentType = "application/yaml"

// encode renders values as YAML behind a comment header.
func encode(values form.Values, at time.Time) ([]byte, error) {
	body, err := yaml.Marshal(normalize(values))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal values: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# stepform submission\n# Submitted at: %s\n\n", at.UTC().Format(time.RFC3339))
	sb.Write(body)
	return []byte(sb.String()), nil
}

// normalize writes whole numbers as integers so 1500000 is not
// rendered as 1.5e+06.
func normalize(values form.Values) map[string]any {
	out := make(map[string]any, len(values))
	for k, v := range values {
		if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			v = int64(f)
		}
		out[k] = v
	}
	return out
}
