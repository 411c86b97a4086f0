package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/matzehuels/rootfront/pkg/pareto"
)

// SourceColumn is the first CSV column, naming the input of each row.
const SourceColumn = "file"

// WriteCSV writes one header row and one row per record. Columns follow the
// field order of the first record; later records are matched by name.
func WriteCSV(w io.Writer, unit string, records ...Record) error {
	cw := csv.NewWriter(w)
	if len(records) == 0 {
		cw.Flush()
		return cw.Error()
	}

	names := make([]string, len(records[0].Fields))
	header := []string{SourceColumn}
	for i, f := range records[0].Fields {
		names[i] = f.Name
		header = append(header, Header(f.Name, unit))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, rec := range records {
		row := []string{rec.Source}
		for _, n := range names {
			v, _ := rec.Get(n)
			row = append(row, formatValue(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

// MarshalJSON writes the record as an object with fields in order, the
// source first.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	key, _ := json.Marshal(SourceColumn)
	src, _ := json.Marshal(r.Source)
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(src)
	for _, f := range r.Fields {
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		if f.Value == nil {
			buf.WriteString("null")
		} else {
			buf.WriteString(strconv.FormatFloat(*f.Value, 'g', -1, 64))
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(w io.Writer, records ...Record) error {
	if records == nil {
		records = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// WriteFrontCSV writes a 2D front as alpha,length,distance rows with lengths
// multiplied by factor.
func WriteFrontCSV(w io.Writer, front pareto.Front2D, factor float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"alpha", "length", "distance"}); err != nil {
		return err
	}
	for _, p := range front {
		if err := cw.Write([]string{ftoa(p.Alpha), ftoa(p.Cost.Length * factor), ftoa(p.Cost.Distance * factor)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFront3DCSV writes a 3D front as alpha,beta,gamma,length,distance,tortuosity rows.
func WriteFront3DCSV(w io.Writer, front pareto.Front3D, factor float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"alpha", "beta", "gamma", "length", "distance", "tortuosity"}); err != nil {
		return err
	}
	for _, p := range front {
		row := []string{
			ftoa(p.Alpha), ftoa(p.Beta), ftoa(p.Gamma()),
			ftoa(p.Cost.Length * factor), ftoa(p.Cost.Distance * factor), ftoa(p.Cost.Tortuosity),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRandomCSV writes a random baseline as length,distance rows.
func WriteRandomCSV(w io.Writer, costs []pareto.Cost2D, factor float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"length", "distance"}); err != nil {
		return err
	}
	for _, c := range costs {
		if err := cw.Write([]string{ftoa(c.Length * factor), ftoa(c.Distance * factor)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// WriteRandom3DCSV writes a 3D random baseline as length,distance,tortuosity
// rows.
func WriteRandom3DCSV(w io.Writer, costs []pareto.Cost3D, factor float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"length", "distance", "tortuosity"}); err != nil {
		return err
	}
	for _, c := range costs {
		if err := cw.Write([]string{ftoa(c.Length * factor), ftoa(c.Distance * factor), ftoa(c.Tortuosity)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
