// Package export renders the appointment book as an Excel workbook for
// the salon's bookkeeping.
package export

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/Luckywi/balzac-api/internal/models"
)

var headerColumns = []string{"Heure", "Fin", "Client", "Téléphone", "Service", "Durée (min)", "Coiffeur", "Prix", "Payé", "Source"}

// AppointmentBook builds a workbook with one sheet per calendar day,
// appointments sorted by start time.
func AppointmentBook(rdvs []models.Appointment) (*excelize.File, error) {
	byDay := make(map[string][]models.Appointment)
	for _, r := range rdvs {
		day := r.Start
		if len(day) >= len(models.DateLayout) {
			day = day[:len(models.DateLayout)]
		}
		byDay[day] = append(byDay[day], r)
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)

	f := excelize.NewFile()
	if len(days) == 0 {
		if err := writeSheet(f, "Rendez-vous", nil, true); err != nil {
			return nil, err
		}
		return f, nil
	}

	for i, day := range days {
		dayRdvs := byDay[day]
		sort.Slice(dayRdvs, func(a, b int) bool { return dayRdvs[a].Start < dayRdvs[b].Start })
		if err := writeSheet(f, day, dayRdvs, i == 0); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, name string, rdvs []models.Appointment, first bool) error {
	// Excel caps sheet names at 31 chars.
	if len(name) > 31 {
		name = name[:31]
	}
	if first {
		f.SetSheetName("Sheet1", name)
	} else {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	for i, col := range headerColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, col); err != nil {
			return err
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(headerColumns), 1)
		_ = f.SetCellStyle(name, startCell, endCell, style)
	}

	for rowIdx, r := range rdvs {
		paid := "non"
		if r.Paid {
			paid = "oui"
		}
		row := []interface{}{
			clockPart(r.Start), clockPart(r.End),
			r.ClientName, r.ClientPhone,
			r.ServiceTitle, r.ServiceDuration,
			r.StaffID, r.Price, paid, r.Source,
		}
		for colIdx, val := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cell, val); err != nil {
				return err
			}
		}
	}
	return nil
}

// clockPart extracts "HH:mm" from a stored local timestamp.
func clockPart(ts string) string {
	if t, err := models.ParseTimestamp(ts); err == nil {
		return t.Format(models.ClockLayout)
	}
	return ts
}
