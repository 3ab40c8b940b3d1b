package tmux

import (
	"fmt"
	"strconv"
	"strings"
)

// row maps requested format fields to the values tmux printed for them.
type row map[string]string

func formatString(fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = "#{" + f + "}"
	}
	return strings.Join(parts, "\t")
}

// parseRows zips every output line positionally against fields.
func parseRows(lines []string, fields []string) ([]row, error) {
	rows := make([]row, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) != len(fields) {
			return nil, fmt.Errorf("expected %d fields in %q, got %d", len(fields), line, len(parts))
		}
		r := make(row, len(fields))
		for i, f := range fields {
			r[f] = parts[i]
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func (r row) number(field string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(r[field]))
	if err != nil {
		return 0, fmt.Errorf("parsing %s %q: %w", field, r[field], err)
	}
	return v, nil
}

// query runs verb with -F over fields and converts every row with build.
func query[T any](c *Client, verb string, args []string, fields []string, build func(row) (T, error)) ([]T, error) {
	full := append(append([]string(nil), args...), "-F", formatString(fields))
	lines, err := c.Read(verb, full...)
	if err != nil {
		return nil, err
	}
	rows, err := parseRows(lines, fields)
	if err != nil {
		return nil, fmt.Errorf("tmux %s: %w", verb, err)
	}
	result := make([]T, 0, len(rows))
	for _, r := range rows {
		v, err := build(r)
		if err != nil {
			return nil, fmt.Errorf("tmux %s: %w", verb, err)
		}
		result = append(result, v)
	}
	return result, nil
}
