package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/vsivsi/nodelayout"
	"github.com/vsivsi/nodelayout/internal/config"
	"github.com/vsivsi/nodelayout/internal/logger"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func run(cfg *config.Config, w io.Writer) error {
	if cfg.Index >= 0 {
		return printOffsets(cfg, uint64(cfg.Index), w)
	}

	report, err := nodelayout.BuildReport(cfg.Params, cfg.Regions, cfg.Strategies...)
	if err != nil {
		return err
	}
	logger.Debug(fmt.Sprintf("report built: %d entries", len(report.Entries)))

	switch cfg.Format {
	case config.FormatJSON:
		return report.EncodeJSON(w)
	case config.FormatMsgpack:
		out, err := report.MarshalBinary()
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}

	rows := make([][]string, 0, len(report.Entries))
	for _, e := range report.Entries {
		height := "-"
		if e.Height > 0 {
			height = strconv.FormatUint(e.Height, 10)
		}
		rows = append(rows, []string{
			e.Strategy.String(),
			e.Region,
			strconv.FormatUint(e.RegionBits/8, 10),
			strconv.FormatUint(e.RegionBits, 10),
			strconv.FormatInt(e.MaxIndex, 10),
			height,
		})
	}
	_, err = fmt.Fprintf(w, "w = %d, S = %d\n%s\n", cfg.Params.WordBits, cfg.Params.EntryWidthBits,
		render([]string{"strategy", "region", "bytes", "bits", "max j", "C"}, rows))
	return err
}

// printOffsets prints where node j starts under each strategy.
func printOffsets(cfg *config.Config, j uint64, w io.Writer) error {
	rows := make([][]string, 0, len(cfg.Strategies))
	for _, s := range cfg.Strategies {
		l, err := nodelayout.New(s, cfg.Params)
		if err != nil {
			return err
		}
		byteIndex, shift := l.Position(j)
		rows = append(rows, []string{
			s.String(),
			strconv.FormatUint(l.Offset(j), 10),
			strconv.FormatUint(byteIndex, 10),
			strconv.FormatUint(shift, 10),
		})
	}
	width := "-"
	if n, err := nodelayout.EntryBitLength(j, cfg.Params.EntryWidthBits); err == nil {
		width = strconv.FormatUint(n, 10)
	}
	_, err := fmt.Fprintf(w, "j = %d, bit node width = %s\n%s\n", j, width,
		render([]string{"strategy", "offset bits", "byte", "shift"}, rows))
	return err
}

func render(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}
