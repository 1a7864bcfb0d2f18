package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"go.uber.org/zap"

	"github.com/address-parser/internal/repository"
)

func buildZip(t *testing.T, rows [][]string) []byte {
	t.Helper()
	var csvBuf bytes.Buffer
	w := csv.NewWriter(&csvBuf)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			t.Fatalf("writing csv row: %v", err)
		}
	}
	w.Flush()

	var zipBuf bytes.Buffer
	zw := zip.NewWriter(&zipBuf)
	entry, err := zw.Create("utf_ken_all.csv")
	if err != nil {
		t.Fatalf("creating zip entry: %v", err)
	}
	if _, err := entry.Write(csvBuf.Bytes()); err != nil {
		t.Fatalf("writing zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}
	return zipBuf.Bytes()
}

func TestUsecase_Run(t *testing.T) {
	rows := [][]string{
		{
			"011105", "0000000", "0600000",
			"ホッカイドウ", "サッポロシチュウオウク", "イカニケイサイガナイバアイ",
			"北海道", "札幌市中央区", "以下に掲載がない場合",
			"0", "0", "0", "0", "0", "",
		},
		{
			"012011", "0000000", "0600061",
			"ホッカイドウ", "サッポロシチュウオウク", "ミツギ（１～３チョウメ）",
			"北海道", "札幌市中央区", "三ツ木（１～３丁目）",
			"0", "0", "1", "0", "0", "",
		},
	}
	src := buildZip(t, rows)

	repo := repository.NewMemoryRepository()
	uc := New(func(ctx context.Context) ([]byte, error) { return src, nil }, repo, nil, zap.NewNop())

	stats, err := uc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.RecordsParsed != 2 {
		t.Fatalf("RecordsParsed = %d, want 2", stats.RecordsParsed)
	}
	// Row 1 -> [""] (1), row 2 -> 3 chome entries + parent = 4.
	if stats.RecordsNormalized != 5 {
		t.Fatalf("RecordsNormalized = %d, want 5", stats.RecordsNormalized)
	}

	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 5 {
		t.Fatalf("Count = %d, want 5", count)
	}
}
