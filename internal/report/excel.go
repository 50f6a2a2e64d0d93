package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/salon-bot/internal/domain/appointments"
)

// BuildAppointments собирает xlsx со списком записей для администратора.
func BuildAppointments(items []appointments.Appointment) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"id",
		"user_id",
		"master_id",
		"service_id",
		"starts_at",
		"ends_at",
		"status",
		"notes",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, a := range items {
		excelRow := []interface{}{
			a.ID,
			a.UserID,
			a.MasterID,
			a.ServiceID,
			a.StartsAt.Format("02.01.2006 15:04"),
			a.EndsAt.Format("02.01.2006 15:04"),
			string(a.Status),
			a.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
