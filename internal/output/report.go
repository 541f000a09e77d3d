package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/capexplan/capex-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// Render formats a report in memory with the named formatter.
func Render(report *domain.PortfolioReport, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	return f.Format(report)
}

// GenerateReport writes the report to dir with the named formatter and returns the written paths.
// The special format "all" writes every registered formatter.
func GenerateReport(report *domain.PortfolioReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		paths := make([]string, 0, len(builtInFormatters))
		for _, f := range builtInFormatters {
			path, err := WriteFormatted(f, report, dir)
			if err != nil {
				return paths, fmt.Errorf("%s: %w", f.Name(), err)
			}
			paths = append(paths, path)
		}
		return paths, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	path, err := WriteFormatted(f, report, dir)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func unsupported(format string) error {
	return fmt.Errorf("%w: %q. Try one of: %s, all (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// SaveConfiguration writes a configuration back out as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
