package montecarlo

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

func WriteTrialsCSV(path string, trials []TrialRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return EncodeTrialsCSV(f, trials)
}

func EncodeTrialsCSV(out io.Writer, trials []TrialRow) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"index",
		"population_size",
		"wins",
		"draws",
		"losses",
		"mean_score",
		"cum_mean",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range trials {
		row := []string{
			strconv.Itoa(r.Index),
			strconv.Itoa(r.PopulationSize),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Draws),
			strconv.Itoa(r.Losses),
			fmtFloat(r.MeanScore),
			fmtFloat(r.CumMean),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
