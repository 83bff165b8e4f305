package services

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"shiptix/internal/domain"
	"shiptix/internal/repositories"
	"shiptix/internal/utils"
)

// ExportService dumps master data and bookings into one workbook.
type ExportService struct {
	Store     repositories.Store
	Now       func() time.Time
	RequestID string
}

type exportSheet struct {
	name string
	rows []any
	skip map[string]bool
}

// ExportWorkbook builds the xlsx file with one sheet per non-empty table.
func (s ExportService) ExportWorkbook(ctx context.Context) ([]byte, string, error) {
	sheets, err := s.collect(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	written := 0
	for _, sh := range sheets {
		if len(sh.rows) == 0 {
			continue
		}
		if err := writeSheet(f, sh); err != nil {
			return nil, "", fmt.Errorf("sheet %s: %w", sh.name, err)
		}
		written++
	}
	if written == 0 {
		return nil, "", domain.ValidationError{Msg: "tidak ada data untuk diekspor"}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	utils.LogEvent(s.RequestID, "export", "workbook", fmt.Sprintf("sheets=%d", written))
	return buf.Bytes(), fmt.Sprintf("shiptix-data-%s.xlsx", now.Format(utils.LayoutDate)), nil
}

func (s ExportService) collect(ctx context.Context) ([]exportSheet, error) {
	operators, err := s.Store.ListOperators(ctx)
	if err != nil {
		return nil, err
	}
	ports, err := s.Store.ListPorts(ctx)
	if err != nil {
		return nil, err
	}
	ships, err := s.Store.ListShips(ctx)
	if err != nil {
		return nil, err
	}
	schedules, err := s.Store.ListSchedules(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.Store.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	passengers, err := s.Store.ListBookingPassengers(ctx)
	if err != nil {
		return nil, err
	}

	return []exportSheet{
		{name: "operators", rows: toAny(operators)},
		{name: "ports", rows: toAny(ports)},
		{name: "ships", rows: toAny(ships)},
		{name: "schedules", rows: toAny(schedules)},
		{name: "bookings", rows: toAny(bookings), skip: map[string]bool{"passengers": true}},
		{name: "passengers", rows: toAny(passengers)},
	}, nil
}

func toAny[T any](list []T) []any {
	out := make([]any, len(list))
	for i := range list {
		out[i] = list[i]
	}
	return out
}

func writeSheet(f *excelize.File, sh exportSheet) error {
	if _, err := f.NewSheet(sh.name); err != nil {
		return err
	}

	var headers []string
	for i, rec := range sh.rows {
		cells := flattenRecord(rec, sh.skip)
		if i == 0 {
			headers = make([]string, len(cells))
			for j, c := range cells {
				headers[j] = c.key
			}
			if err := setRow(f, sh.name, 1, stringsToAny(headers)); err != nil {
				return err
			}
		}
		values := make([]any, len(cells))
		for j, c := range cells {
			values[j] = c.value
		}
		if err := setRow(f, sh.name, i+2, values); err != nil {
			return err
		}
	}

	last, err := excelize.ColumnNumberToName(max(len(headers), 1))
	if err != nil {
		return err
	}
	return f.SetColWidth(sh.name, "A", last, 15)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

type exportCell struct {
	key   string
	value any
}

// flattenRecord turns a struct into ordered cells: nested structs become
// parent_child columns, slices are JSON-encoded, times use RFC3339.
func flattenRecord(rec any, skip map[string]bool) []exportCell {
	var out []exportCell
	flattenValue("", reflect.ValueOf(rec), skip, &out)
	return out
}

var timeType = reflect.TypeOf(time.Time{})

func flattenValue(prefix string, v reflect.Value, skip map[string]bool, out *[]exportCell) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		fv := v.Field(i)
		if field.Anonymous && name == "" {
			flattenValue(prefix, fv, skip, out)
			continue
		}
		if name == "" {
			name = field.Name
		}
		key := name
		if prefix != "" {
			key = prefix + "_" + name
		}
		if skip[key] {
			continue
		}
		*out = append(*out, cellsFor(key, fv, skip)...)
	}
}

func cellsFor(key string, v reflect.Value, skip map[string]bool) []exportCell {
	if v.Type() == timeType {
		t := v.Interface().(time.Time)
		if t.IsZero() {
			return []exportCell{{key, ""}}
		}
		return []exportCell{{key, t.UTC().Format(time.RFC3339)}}
	}
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return []exportCell{{key, ""}}
		}
		return cellsFor(key, v.Elem(), skip)
	case reflect.Struct:
		var nested []exportCell
		flattenValue(key, v, skip, &nested)
		return nested
	case reflect.Slice, reflect.Map:
		if v.IsNil() {
			return []exportCell{{key, ""}}
		}
		raw, err := json.Marshal(v.Interface())
		if err != nil {
			return []exportCell{{key, ""}}
		}
		return []exportCell{{key, string(raw)}}
	case reflect.String:
		return []exportCell{{key, v.String()}}
	default:
		return []exportCell{{key, v.Interface()}}
	}
}
