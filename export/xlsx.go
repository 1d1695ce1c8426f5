package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/modelfree/models"
)

// Sheet names of the workbook.
const (
	SpinSheet   = "Spins"
	TensorSheet = "Tensor"
)

// SpinHeader returns the header row of the spin sheet: identity columns,
// a value and an error column per model-free parameter, then statistics.
func SpinHeader() []string {
	head := []string{"spin", "select", "model", "equation"}
	for _, q := range models.AllParams {
		head = append(head, string(q), string(q)+"_err")
	}

	return append(head, "chi2", "iter", "f_count", "g_count", "h_count", "warning")
}

// WriteXLSX writes r to a workbook at path.
func WriteXLSX(path string, r Results) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err = f.SetSheetName("Sheet1", SpinSheet); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}
	if err = writeSpins(f, r); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}
	if r.Tensor != nil {
		if err = writeTensor(f, r.Tensor); err != nil {
			return fmt.Errorf("WriteXLSX: %w", err)
		}
	}
	if err = f.SaveAs(path); err != nil {
		return fmt.Errorf("WriteXLSX: %w", err)
	}

	return nil
}

func writeSpins(f *excelize.File, r Results) error {
	sw, err := f.NewStreamWriter(SpinSheet)
	if err != nil {
		return err
	}
	if err = sw.SetRow("A1", row(SpinHeader())); err != nil {
		return err
	}
	for i, s := range r.Spins {
		vals := []any{s.ID, s.Select, s.Model, s.Equation}
		for _, q := range models.AllParams {
			if p, ok := s.Param(string(q)); ok {
				vals = append(vals, p.Value, p.Err)
				continue
			}
			vals = append(vals, nil, nil)
		}
		if st := s.Stats; st != nil {
			vals = append(vals, st.Chi2, st.Iter, st.FCount, st.GCount, st.HCount, st.Warning)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err = sw.SetRow(cell, vals); err != nil {
			return err
		}
	}

	return sw.Flush()
}

func writeTensor(f *excelize.File, t *TensorResult) error {
	if _, err := f.NewSheet(TensorSheet); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(TensorSheet)
	if err != nil {
		return err
	}
	if err = sw.SetRow("A1", []any{"shape", t.Shape, "fixed", t.Fixed}); err != nil {
		return err
	}
	if err = sw.SetRow("A2", row([]string{"param", "value", "error"})); err != nil {
		return err
	}
	for i, p := range t.Params {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return err
		}
		if err = sw.SetRow(cell, []any{p.Name, p.Value, p.Err}); err != nil {
			return err
		}
	}

	return sw.Flush()
}

func row(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}

	return out
}
