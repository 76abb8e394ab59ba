package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/blackholes/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Steps  int         `json:"steps"`
	Times  []float64   `json:"times"`
	States [][]float64 `json:"states"`
}

func exportData(meta *RunMetadata, result *dynamo.Result) ExportData {
	data := ExportData{
		RunMetadata: *meta,
		Steps:       len(result.Times),
		Times:       result.Times,
		States:      make([][]float64, len(result.States)),
	}
	for i, s := range result.States {
		data.States[i] = s
	}
	return data
}

// WriteJSON encodes a run, metadata and trajectory, as indented JSON.
func WriteJSON(w io.Writer, meta *RunMetadata, result *dynamo.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData(meta, result))
}

func ExportJSON(path string, meta *RunMetadata, result *dynamo.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteJSON(file, meta, result); err != nil {
		return err
	}
	return file.Close()
}

// WriteCSV writes the trajectory with a time column and the run's column
// names as header.
func WriteCSV(w io.Writer, meta *RunMetadata, result *dynamo.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"time"}, columns(meta.Columns, result)...)); err != nil {
		return err
	}
	for i, s := range result.States {
		row := []string{formatFloat(result.Times[i])}
		for _, v := range s {
			row = append(row, formatFloat(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ExportCSV(path string, meta *RunMetadata, result *dynamo.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteCSV(file, meta, result); err != nil {
		return err
	}
	return file.Close()
}
