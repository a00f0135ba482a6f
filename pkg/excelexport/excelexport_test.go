package excelexport

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWorkbookRoundTrip(t *testing.T) {
	header := []string{"ID", "Nome", "Déficit"}
	rows := [][]any{
		{int64(1), "Maria", 2},
		{int64(2), "Ana", 0, "coluna extra descartada"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, "Vagas", header, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows("Vagas")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("rows=%d", len(got))
	}
	if got[0][0] != "ID" || got[0][2] != "Déficit" {
		t.Fatalf("header=%v", got[0])
	}
	if got[1][1] != "Maria" || got[1][2] != "2" {
		t.Fatalf("row=%v", got[1])
	}
	if len(got[2]) > 3 {
		t.Fatalf("extra cell survived truncation: %v", got[2])
	}
}
